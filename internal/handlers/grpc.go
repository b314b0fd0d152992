package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/service"
	"github.com/umalmyha/customer-records/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CustomerGrpcHandler is gRPC handler for customers service
type CustomerGrpcHandler struct {
	proto.UnimplementedCustomerServiceServer
	customerSvc service.CustomerService
	validator   echo.Validator
}

// NewCustomerGrpcHandler builds CustomerGrpcHandler
func NewCustomerGrpcHandler(customerSvc service.CustomerService, validator echo.Validator) *CustomerGrpcHandler {
	return &CustomerGrpcHandler{
		UnimplementedCustomerServiceServer: proto.UnimplementedCustomerServiceServer{},
		customerSvc:                        customerSvc,
		validator:                          validator,
	}
}

// GetPage gets page of customers
func (h *CustomerGrpcHandler) GetPage(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	q := pageQuery{Page: int(req.GetValue())}
	if err := h.validator.Validate(&q); err != nil {
		return nil, err
	}

	p, err := h.customerSvc.FindPage(ctx, q.Page)
	if err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{
		"customers": customerList(p.Customers),
		"current":   p.Current,
		"pages":     p.Pages,
	})
}

// Search searches customers by name
func (h *CustomerGrpcHandler) Search(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	q := searchQuery{Term: req.GetValue()}
	if err := h.validator.Validate(&q); err != nil {
		return nil, err
	}

	customers, err := h.customerSvc.Search(ctx, q.Term)
	if err != nil {
		return nil, err
	}
	return structpb.NewList(customerList(customers))
}

// GetByID gets customer by id
func (h *CustomerGrpcHandler) GetByID(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if err := h.validator.Validate(&identifier{ID: req.GetValue()}); err != nil {
		return nil, err
	}

	c, err := h.customerSvc.FindByID(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(customerFields(c))
}

// Create creates new customer
func (h *CustomerGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c, err := h.customerSvc.Create(ctx, newCustomer(req))
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(customerFields(c))
}

// Update replaces customer identified by id field
func (h *CustomerGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["id"].GetStringValue()
	if err := h.validator.Validate(&identifier{ID: id}); err != nil {
		return nil, err
	}

	c, err := h.customerSvc.Update(ctx, id, newCustomer(req))
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(customerFields(c))
}

// DeleteByID deletes customer by id
func (h *CustomerGrpcHandler) DeleteByID(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := h.validator.Validate(&identifier{ID: req.GetValue()}); err != nil {
		return nil, err
	}

	if err := h.customerSvc.DeleteByID(ctx, req.GetValue()); err != nil {
		return nil, err
	}
	return new(emptypb.Empty), nil
}

func newCustomer(req *structpb.Struct) *model.NewCustomer {
	fields := req.GetFields()
	return &model.NewCustomer{
		FirstName: fields["firstName"].GetStringValue(),
		LastName:  fields["lastName"].GetStringValue(),
		Telephone: fields["telephone"].GetStringValue(),
		Email:     fields["email"].GetStringValue(),
	}
}

func customerFields(c *model.Customer) map[string]any {
	return map[string]any{
		"id":        c.ID,
		"firstName": c.FirstName,
		"lastName":  c.LastName,
		"telephone": c.Telephone,
		"email":     c.Email,
		"createdAt": c.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt": c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func customerList(customers []*model.Customer) []any {
	res := make([]any, 0, len(customers))
	for _, c := range customers {
		res = append(res, customerFields(c))
	}
	return res
}
