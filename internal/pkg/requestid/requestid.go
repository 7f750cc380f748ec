package requestid

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// Header is the HTTP header carrying the request id.
const Header = "X-Request-ID"

// MetadataKey is the gRPC metadata key carrying the request id.
const MetadataKey = "x-request-id"

type ctxKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored by WithContext, falling back to incoming gRPC metadata.
func FromContext(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(MetadataKey); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
