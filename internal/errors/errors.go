package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// It deliberately does not say which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken covers missing, malformed, expired and forged tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Client facing messages.
const (
	MsgEmailTaken         = "Email já cadastrado"
	MsgInvalidCredentials = "Email ou senha inválidos"
	MsgInvalidToken       = "Token inválido ou expirado"
	MsgUserNotFound       = "Usuário não encontrado"
)

// FieldError is a single failed input rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every failed field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, ", ")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse. The status code is
// echoed in the body only for bad requests, the way validation failures have
// always been reported.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	resp := ErrorResponse{
		Error:   http.StatusText(e.StatusCode),
		Message: e.Message,
	}
	if resp.Error == "" {
		resp.Error = "Error"
	}
	if e.StatusCode == http.StatusBadRequest {
		resp.StatusCode = e.StatusCode
	}
	return resp
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown becomes
// a 500 without detail.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Error())
	}

	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, MsgEmailTaken)
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, MsgUserNotFound)
	default:
		return NewHTTPError(http.StatusInternalServerError, "")
	}
}
