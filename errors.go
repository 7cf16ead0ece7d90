package endpoint

import (
	"errors"
	"fmt"
	"net/http"
)

// Registration errors. A registration that fails with any of these appends
// nothing to the catalog.
var (
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")
	ErrUnsupportedTypeArgument  = errors.New("unsupported type argument")
	ErrMissingReturnType        = errors.New("missing return type")
	ErrUnsupportedHTTPMethod    = errors.New("unsupported http method")
	ErrMismatchedPathParameters = errors.New("mismatched path parameters")
	ErrNotHandler               = errors.New("handler is not a function")
	ErrUnresolvedType           = errors.New("unresolved type")
	ErrConflictingType          = errors.New("conflicting type registration")
)

// Dispatch errors.
var (
	ErrMissingState = errors.New("missing state")
	ErrBindPath     = errors.New("bind path")
	ErrBindQuery    = errors.New("bind query")
	ErrBindBody     = errors.New("bind body")
)

// RegistrationError reports a rejected registration.
type RegistrationError struct {
	Method   string
	Template string
	Err      error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s %s: %v", e.Method, e.Template, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// ParamError identifies the declared parameter that failed classification.
type ParamError struct {
	Index int
	Expr  string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %d (%s): %v", e.Index, e.Expr, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ProblemDetail is an RFC 9457 problem details response.
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorStatus extracts the HTTP status code from an error. Binding failures
// map to 400; errors without a StatusCoder map to 500.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	if errors.Is(err, ErrBindPath) || errors.Is(err, ErrBindQuery) || errors.Is(err, ErrBindBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
