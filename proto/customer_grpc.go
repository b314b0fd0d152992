package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CustomerServiceName is full name of customers service
const CustomerServiceName = "customers.CustomerService"

func fullMethod(method string) string {
	return "/" + CustomerServiceName + "/" + method
}

// CustomerServiceServer is the server API for CustomerService
type CustomerServiceServer interface {
	GetPage(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	Search(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetByID(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteByID(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedCustomerServiceServer must be embedded to have forward compatible implementations
type UnimplementedCustomerServiceServer struct{}

func (UnimplementedCustomerServiceServer) GetPage(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPage not implemented")
}

func (UnimplementedCustomerServiceServer) Search(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Search not implemented")
}

func (UnimplementedCustomerServiceServer) GetByID(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetByID not implemented")
}

func (UnimplementedCustomerServiceServer) Create(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedCustomerServiceServer) Update(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedCustomerServiceServer) DeleteByID(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteByID not implemented")
}

func unary[Req any, Res any](
	method string,
	newReq func() Req,
	call func(CustomerServiceServer, context.Context, Req) (Res, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}

			svc := srv.(CustomerServiceServer)
			handler := func(ctx context.Context, req any) (any, error) {
				res, err := call(svc, ctx, req.(Req))
				if err != nil {
					return nil, err
				}
				return res, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}, handler)
		},
	}
}

// CustomerServiceDesc is the grpc.ServiceDesc for CustomerService
var CustomerServiceDesc = grpc.ServiceDesc{
	ServiceName: CustomerServiceName,
	HandlerType: (*CustomerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetPage", func() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) }, CustomerServiceServer.GetPage),
		unary("Search", func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }, CustomerServiceServer.Search),
		unary("GetByID", func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }, CustomerServiceServer.GetByID),
		unary("Create", func() *structpb.Struct { return new(structpb.Struct) }, CustomerServiceServer.Create),
		unary("Update", func() *structpb.Struct { return new(structpb.Struct) }, CustomerServiceServer.Update),
		unary("DeleteByID", func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }, CustomerServiceServer.DeleteByID),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "customer.proto",
}

// RegisterCustomerServiceServer registers CustomerService implementation
func RegisterCustomerServiceServer(s grpc.ServiceRegistrar, srv CustomerServiceServer) {
	s.RegisterService(&CustomerServiceDesc, srv)
}

// CustomerServiceClient is the client API for CustomerService
type CustomerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCustomerServiceClient builds CustomerServiceClient
func NewCustomerServiceClient(cc grpc.ClientConnInterface) *CustomerServiceClient {
	return &CustomerServiceClient{cc: cc}
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, out *Res, opts ...grpc.CallOption) (*Res, error) {
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPage gets page of customers
func (c *CustomerServiceClient) GetPage(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, "GetPage", in, new(structpb.Struct), opts...)
}

// Search searches customers by name
func (c *CustomerServiceClient) Search(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke(ctx, c.cc, "Search", in, new(structpb.ListValue), opts...)
}

// GetByID gets customer by id
func (c *CustomerServiceClient) GetByID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, "GetByID", in, new(structpb.Struct), opts...)
}

// Create creates customer
func (c *CustomerServiceClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, "Create", in, new(structpb.Struct), opts...)
}

// Update replaces customer
func (c *CustomerServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, "Update", in, new(structpb.Struct), opts...)
}

// DeleteByID deletes customer by id
func (c *CustomerServiceClient) DeleteByID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke(ctx, c.cc, "DeleteByID", in, new(emptypb.Empty), opts...)
}
