package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeMissingToken = "MISSING_TOKEN"
	ErrCodeCatalogError = "CATALOG_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapCatalogError converts a catalog store or catalog client failure to a
// coded error. Unknown endpoint ids become NOT_FOUND.
func WrapCatalogError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var apiErr *client.APIError
	var netErr net.Error
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return &CodedError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		coded = &CodedError{Code: ErrCodeCatalogError, Message: "catalog route not found", Cause: err}
	case errors.As(err, &apiErr):
		coded = &CodedError{Code: ErrCodeCatalogError, Message: apiErr.Message, Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "catalog request timed out", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeCatalogError, Message: "catalog unavailable", Cause: err}
	}

	slog.Warn("catalog error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrMissingToken reports that no bearer token is stored for an endpoint.
func ErrMissingToken(endpointID string, cause error) error {
	return &CodedError{
		Code:    ErrCodeMissingToken,
		Message: fmt.Sprintf("no token stored for %s, call insightone_set_token first", endpointID),
		Cause:   cause,
	}
}
