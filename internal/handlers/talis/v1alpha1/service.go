package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "talis.v1.TalisService"

// Full method names
const (
	MethodRoll            = "/" + ServiceName + "/Roll"
	MethodGetState        = "/" + ServiceName + "/GetState"
	MethodUpdateConfig    = "/" + ServiceName + "/UpdateConfig"
	MethodClearHistory    = "/" + ServiceName + "/ClearHistory"
	MethodClearAllStorage = "/" + ServiceName + "/ClearAllStorage"
)

// TalisServiceServer is the server API. Requests and responses are
// google.protobuf.Struct documents.
type TalisServiceServer interface {
	Roll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateConfig(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ClearHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ClearAllStorage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv TalisServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(TalisServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes TalisService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TalisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Roll",
			Handler:    unaryHandler(MethodRoll, TalisServiceServer.Roll),
		},
		{
			MethodName: "GetState",
			Handler:    unaryHandler(MethodGetState, TalisServiceServer.GetState),
		},
		{
			MethodName: "UpdateConfig",
			Handler:    unaryHandler(MethodUpdateConfig, TalisServiceServer.UpdateConfig),
		},
		{
			MethodName: "ClearHistory",
			Handler:    unaryHandler(MethodClearHistory, TalisServiceServer.ClearHistory),
		},
		{
			MethodName: "ClearAllStorage",
			Handler:    unaryHandler(MethodClearAllStorage, TalisServiceServer.ClearAllStorage),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "talis/v1/talis.proto",
}

// RegisterTalisServiceServer registers srv with s
func RegisterTalisServiceServer(s grpc.ServiceRegistrar, srv TalisServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// TalisServiceClient is the client API
type TalisServiceClient interface {
	Roll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearAllStorage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type talisServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTalisServiceClient creates a client on cc
func NewTalisServiceClient(cc grpc.ClientConnInterface) TalisServiceClient {
	return &talisServiceClient{cc: cc}
}

func (c *talisServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *talisServiceClient) Roll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRoll, in, opts)
}

func (c *talisServiceClient) GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetState, in, opts)
}

func (c *talisServiceClient) UpdateConfig(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateConfig, in, opts)
}

func (c *talisServiceClient) ClearHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodClearHistory, in, opts)
}

func (c *talisServiceClient) ClearAllStorage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodClearAllStorage, in, opts)
}
