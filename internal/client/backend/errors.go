package backend

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
)

// APIError is a failed backend call. Message is what the server said and is
// safe to show to the user; Kind is one of the sentinels above.
type APIError struct {
	Kind    error
	Message string
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Unwrap() error { return e.Kind }

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	st, ok := status.FromError(err)
	if !ok {
		return &APIError{Kind: ErrServer, Message: err.Error()}
	}

	msg := st.Message()
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		if msg == "" {
			msg = "network request failed"
		}
		return &APIError{Kind: ErrUnavailable, Message: msg}
	case codes.Unauthenticated, codes.PermissionDenied:
		return &APIError{Kind: ErrUnauthorized, Message: msg}
	case codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition:
		return &APIError{Kind: ErrInvalidInput, Message: msg}
	case codes.NotFound:
		return &APIError{Kind: ErrNotFound, Message: msg}
	default:
		return &APIError{Kind: ErrServer, Message: msg}
	}
}

var offlineHints = []string{"network request failed", "connection", "offline"}

// IsOffline reports whether err looks like a connectivity failure rather
// than a rejection by the server.
func IsOffline(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range offlineHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
