package handler

import (
	"context"
	"encoding/json"
	"math"

	"github.com/fekuna/stockintel-service/internal/pkg/logger"
	"github.com/fekuna/stockintel-service/internal/stock"
	"github.com/fekuna/stockintel-service/internal/stock/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type DashboardHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc stock.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DashboardHandler) GetOverview(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	res, err := h.uc.Overview(ctx)
	if err != nil {
		h.logger.Error("failed to compute overview", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}

	return toStruct(map[string]any{
		"stats":  res.Stats,
		"source": res.Source,
	})
}

// ListItems accepts the optional fields "search", "group" and "cluster_id".
func (h *DashboardHandler) ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	filters := &dto.ItemFilters{}
	fields := req.GetFields()

	var err error
	if filters.Search, err = stringField(fields, "search"); err != nil {
		return nil, err
	}
	if filters.Group, err = stringField(fields, "group"); err != nil {
		return nil, err
	}
	if v, ok := fields["cluster_id"]; ok {
		n, isNum := v.GetKind().(*structpb.Value_NumberValue)
		if !isNum || n.NumberValue != math.Trunc(n.NumberValue) {
			return nil, status.Error(codes.InvalidArgument, "cluster_id must be an integer")
		}
		id := int(n.NumberValue)
		filters.ClusterID = &id
	}

	res, err := h.uc.ListItems(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(res)
}

func (h *DashboardHandler) ListClusters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	group, err := stringField(req.GetFields(), "group")
	if err != nil {
		return nil, err
	}

	res, err := h.uc.Clusters(ctx, group)
	if err != nil {
		h.logger.Error("failed to list clusters", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(res)
}

func stringField(fields map[string]*structpb.Value, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return s.StringValue, nil
}

// toStruct goes through JSON so the response mirrors the HTTP API field names.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
