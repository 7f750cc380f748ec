package middleware

import (
	"context"
	"time"

	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/pkg/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// ContextInterceptor makes the request id available through requestid.FromContext,
// minting one when the caller sent none.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := requestid.FromContext(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		return handler(requestid.WithContext(ctx, id), req)
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestid.FromContext(ctx)),
		}
		if err != nil {
			log.Warn("gRPC request failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Info("gRPC request", fields...)
		return resp, nil
	}
}
