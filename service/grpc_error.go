package service

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorToGRPCStreamInterceptor returns a stream server interceptor: runs the handler and maps the returned error
// via errorToGRPC, logging it with the method for diagnostics.
//
// Parameter logger — logger for "stream handler error" with method and err.
//
// Returns: grpc.StreamServerInterceptor. The error it returns is already a gRPC status.
//
// Called from cmd/account main when creating the gRPC server (grpc.ChainStreamInterceptor).
func ErrorToGRPCStreamInterceptor(logger log.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			level.Info(logger).Log(
				"msg", "stream handler error",
				"method", info.FullMethod,
				"err", err,
			)
			err = errorToGRPC(err)
		}
		return err
	}
}

// errorToGRPC maps handler errors to gRPC status: nil → nil; MyError by code (bad_parameter → InvalidArgument,
// entity_not_found → NotFound, registry_unavailable/service_unavailable/connection_failed/stream_terminated →
// Unavailable, other codes → Internal) with the MyError message and never Inner; other errors carrying a gRPC status
// with code != Unknown as-is; context cancellation → Canceled; rest → Internal.
//
// Called from ErrorToGRPCStreamInterceptor after calling the handler.
func errorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if myErr := ToMyError(err); myErr != nil {
		switch myErr.Code {
		case ErrBadParameter:
			return status.Error(codes.InvalidArgument, myErr.Message)
		case ErrEntityNotFound:
			return status.Error(codes.NotFound, myErr.Message)
		case ErrRegistryUnavailable, ErrServiceUnavailable, ErrConnectionFailed, ErrStreamTerminated:
			return status.Error(codes.Unavailable, myErr.Message)
		default:
			return status.Error(codes.Internal, myErr.Message)
		}
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Err()
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "stream cancelled")
	}
	return status.Error(codes.Internal, "internal server error")
}
