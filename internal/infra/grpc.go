package infra

import (
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-records/internal/handlers"
	"github.com/umalmyha/customer-records/internal/interceptors"
	"github.com/umalmyha/customer-records/internal/service"
	"github.com/umalmyha/customer-records/proto"
	"google.golang.org/grpc"
)

// GrpcServer builds gRPC server exposing customers service
func GrpcServer(customerSvc service.CustomerService, validator echo.Validator) *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors.ErrorUnaryInterceptor()))
	proto.RegisterCustomerServiceServer(server, handlers.NewCustomerGrpcHandler(customerSvc, validator))
	return server
}
