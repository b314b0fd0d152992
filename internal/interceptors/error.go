package interceptors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalErrMsg = "Internal server error"

func httpToGrpcCode(s int) codes.Code {
	switch s {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

func reasonToGrpcCode(r apperrors.Reason) codes.Code {
	if r == apperrors.ReasonEmailInUse {
		return codes.AlreadyExists
	}
	return codes.InvalidArgument
}

func grpcCode(err error) (codes.Code, string) {
	var (
		bErr        *apperrors.BusinessErr
		notFoundErr *apperrors.EntryNotFoundErr
		pldErr      *validation.PayloadError
		echoErr     *echo.HTTPError
	)

	switch {
	case errors.As(err, &bErr):
		return reasonToGrpcCode(bErr.Reason()), bErr.Error()
	case errors.As(err, &notFoundErr):
		return codes.NotFound, notFoundErr.Error()
	case errors.As(err, &pldErr):
		return codes.InvalidArgument, pldErr.Error()
	case errors.As(err, &echoErr):
		return httpToGrpcCode(echoErr.Code), fmt.Sprint(echoErr.Message)
	case errors.Is(err, context.Canceled):
		return codes.Canceled, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, err.Error()
	default:
		return codes.Internal, internalErrMsg
	}
}

// ErrorUnaryInterceptor converts error retrieved from handler to gRPC error with corresponding code
func ErrorUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		res, err := h(ctx, req)
		if err == nil {
			return res, nil
		}

		if _, ok := status.FromError(err); ok { // it is already grpc status error
			return nil, err
		}

		code, msg := grpcCode(err)
		if code == codes.Internal {
			logrus.WithField("method", info.FullMethod).Errorf("error occurred on grpc request processing - %v", err)
			return nil, status.Error(code, internalErrMsg)
		}

		logrus.WithFields(logrus.Fields{
			"method": info.FullMethod,
			"code":   code.String(),
		}).Debug(msg)
		return nil, status.Error(code, msg)
	}
}
