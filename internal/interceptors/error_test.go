package interceptors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorUnaryInterceptor(t *testing.T) {
	interceptor := ErrorUnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/customers.CustomerService/Create"}

	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{
			name: "email in use",
			err:  fmt.Errorf("create - %w", apperrors.NewBusinessErr(apperrors.ReasonEmailInUse, "email", "Email already in use")),
			code: codes.AlreadyExists,
			msg:  "Email already in use",
		},
		{
			name: "invalid name",
			err:  apperrors.NewBusinessErr(apperrors.ReasonInvalidName, "name", "Name invalid"),
			code: codes.InvalidArgument,
			msg:  "Name invalid",
		},
		{
			name: "missing customer",
			err:  apperrors.NewEntryNotFoundErr("customer with id 1 doesn't exist"),
			code: codes.NotFound,
			msg:  "customer with id 1 doesn't exist",
		},
		{
			name: "echo http error",
			err:  echo.NewHTTPError(http.StatusBadRequest, "bad page"),
			code: codes.InvalidArgument,
			msg:  "bad page",
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			code: codes.DeadlineExceeded,
			msg:  context.DeadlineExceeded.Error(),
		},
		{
			name: "unexpected error is hidden",
			err:  errors.New("connection refused"),
			code: codes.Internal,
			msg:  internalErrMsg,
		},
		{
			name: "status error is passed as is",
			err:  status.Error(codes.Unimplemented, "not there"),
			code: codes.Unimplemented,
			msg:  "not there",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
				return nil, tc.err
			})
			require.Nil(t, res)

			st, ok := status.FromError(err)
			require.True(t, ok, "grpc status error expected")
			require.Equal(t, tc.code, st.Code())
			require.Equal(t, tc.msg, st.Message())
		})
	}

	res, err := interceptor(context.Background(), "req", info, func(_ context.Context, req any) (any, error) {
		return req, nil
	})
	require.NoError(t, err)
	require.Equal(t, "req", res)
}
