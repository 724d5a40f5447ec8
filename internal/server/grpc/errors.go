package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status. Errors carrying a
// user-facing message keep it; anything else is logged and reported as
// "internal error".
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return status.Error(codeOf(svcErr.Kind), svcErr.Message)
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func codeOf(kind error) codes.Code {
	switch {
	case errors.Is(kind, common.ErrorValidation):
		return codes.InvalidArgument
	case errors.Is(kind, common.ErrorAlreadyExists):
		return codes.AlreadyExists
	case errors.Is(kind, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(kind, common.ErrorForbidden):
		return codes.PermissionDenied
	case errors.Is(kind, common.ErrorUnauthorized),
		errors.Is(kind, common.ErrRefreshTokenExpired),
		errors.Is(kind, common.ErrTokenExpired):
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}
