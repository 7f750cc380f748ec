package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "stockintel.v1.DashboardService"

// DashboardServiceServer answers with generic structs so the service needs no generated stubs.
type DashboardServiceServer interface {
	GetOverview(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListItems(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListClusters(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

// FullMethod returns the wire name of a DashboardService method.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOverview", Handler: getOverviewHandler},
		{MethodName: "ListItems", Handler: listItemsHandler},
		{MethodName: "ListClusters", Handler: listClustersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stockintel/v1/dashboard.proto",
}

func getOverviewHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetOverview(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("GetOverview")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServiceServer).GetOverview(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listItemsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListItems(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("ListItems")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServiceServer).ListItems(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listClustersHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListClusters(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("ListClusters")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServiceServer).ListClusters(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
