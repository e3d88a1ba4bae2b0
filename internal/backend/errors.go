// File: internal/backend/errors.go
package backend

import "fmt"

type ErrorType string

const (
    ErrTypeConfig     ErrorType = "CONFIG"
    ErrTypeNetwork    ErrorType = "NETWORK"
    ErrTypeAuth       ErrorType = "AUTH"
    ErrTypeValidation ErrorType = "VALIDATION"
    ErrTypeNotFound   ErrorType = "NOT_FOUND"
    ErrTypeServer     ErrorType = "SERVER"
    ErrTypeDecode     ErrorType = "DECODE"
)

// APIError is the tagged result of a failed backend call. Handlers branch on
// Type instead of sniffing response bodies.
type APIError struct {
    Type       ErrorType
    Operation  string
    StatusCode int
    Message    string
    Cause      error
}

func (e *APIError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("backend %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("backend %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
    return e.Cause
}

// IsAuthError reports whether err is a 401-class backend failure.
func IsAuthError(err error) bool {
    apiErr, ok := err.(*APIError)
    return ok && apiErr.Type == ErrTypeAuth
}

// IsNotFound reports whether err is an entity-absent backend failure.
func IsNotFound(err error) bool {
    apiErr, ok := err.(*APIError)
    return ok && apiErr.Type == ErrTypeNotFound
}

func newNetworkError(operation string, cause error) *APIError {
    return &APIError{Type: ErrTypeNetwork, Operation: operation, Message: "request failed to complete", Cause: cause}
}

func newDecodeError(operation string, cause error) *APIError {
    return &APIError{Type: ErrTypeDecode, Operation: operation, Message: "invalid response payload", Cause: cause}
}
