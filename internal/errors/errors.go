package errors

import "fmt"

// ErrorCode identifies a class of load or request failure.
type ErrorCode string

const (
	ErrConfig         ErrorCode = "CONFIG"          // 500, endpoint missing
	ErrNetwork        ErrorCode = "NETWORK"         // 502, transport failure or bad status
	ErrParse          ErrorCode = "PARSE"           // 502, malformed CSV body
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// LoadError is a structured error with code, HTTP-ish status, and details.
// The three load failure classes are caught at the load boundary and shown
// to the user as a single message; none are fatal to the process.
type LoadError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes a wrapped cause, if any.
func (e *LoadError) Unwrap() error {
	if cause, ok := e.Details["cause"].(error); ok {
		return cause
	}
	return nil
}

// NewConfigMissing creates a CONFIG error for an unset CSV endpoint.
func NewConfigMissing() *LoadError {
	return &LoadError{
		Code:    ErrConfig,
		Status:  500,
		Message: "no CSV endpoint configured; set csv_url in config or the PETICIONES_CSV_URL environment variable",
	}
}

// NewNetwork creates a NETWORK error. statusCode is the HTTP status of a
// non-success response, or 0 for a transport failure described by err.
func NewNetwork(statusCode int, err error) *LoadError {
	if statusCode != 0 {
		return &LoadError{
			Code:    ErrNetwork,
			Status:  502,
			Message: fmt.Sprintf("endpoint returned HTTP %d", statusCode),
			Details: map[string]any{"status_code": statusCode},
		}
	}
	return &LoadError{
		Code:    ErrNetwork,
		Status:  502,
		Message: fmt.Sprintf("fetch failed: %v", err),
		Details: map[string]any{"cause": err},
	}
}

// NewParse creates a PARSE error wrapping the CSV parser's own error verbatim.
func NewParse(err error) *LoadError {
	return &LoadError{
		Code:    ErrParse,
		Status:  502,
		Message: fmt.Sprintf("malformed CSV: %v", err),
		Details: map[string]any{"cause": err},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LoadError {
	return &LoadError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing row.
func NewNotFound(what string) *LoadError {
	return &LoadError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", what),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LoadError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LoadError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a LoadError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LoadError); ok {
		return lErr.Code == code
	}
	return false
}
