package gambit

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure scenarios
var (
	// ErrNotConfigured is returned when no endpoint hostname has been set
	ErrNotConfigured = errors.New("gambit: endpoint hostname not configured")

	// ErrServiceShutDown is returned for submissions made after Shutdown
	ErrServiceShutDown = errors.New("gambit: service shut down")

	// ErrInvalidKey is returned when a signing key is not valid hex
	ErrInvalidKey = errors.New("gambit: invalid signing key")
)

// Error types carried by ClientError.Type.
const (
	ErrorTypeConfiguration = "Configuration"
	ErrorTypeTransport     = "Transport"
	ErrorTypeCrypto        = "Crypto"
	ErrorTypePoolRejected  = "PoolRejected"
	ErrorTypeValidation    = "Validation"
	ErrorTypeInternal      = "Internal"
)

// ClientError is the error a Future rejects with when no server payload could
// be obtained. Answers the server did give are never reported this way; see
// Response.
type ClientError struct {
	Type      string
	Message   string
	Cause     error
	RequestID string
	Endpoint  string
	URL       string
	Timestamp time.Time
	Duration  time.Duration
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Endpoint != "" {
		info += fmt.Sprintf("Endpoint: %s\n", e.Endpoint)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// ErrorType reports the ClientError type of err, or "" if err is not one.
func ErrorType(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ""
}

// IsRejection reports whether err is a ClientError, meaning the SDK never
// obtained a server payload for the request.
func IsRejection(err error) bool {
	return ErrorType(err) != ""
}

// IsConfigurationError reports whether err comes from missing or invalid
// service configuration.
func IsConfigurationError(err error) bool {
	return ErrorType(err) == ErrorTypeConfiguration
}

// IsTransportError reports whether err is a connection, DNS or body write
// failure.
func IsTransportError(err error) bool {
	return ErrorType(err) == ErrorTypeTransport
}

// IsCryptoError reports whether err was raised while signing.
func IsCryptoError(err error) bool {
	return ErrorType(err) == ErrorTypeCrypto
}

// IsValidationError reports whether a builder refused to produce a request.
func IsValidationError(err error) bool {
	return ErrorType(err) == ErrorTypeValidation
}

// IsPoolRejected reports whether err means the service refused the
// submission.
func IsPoolRejected(err error) bool {
	return ErrorType(err) == ErrorTypePoolRejected
}

func newClientError(errorType, message string, cause error) *ClientError {
	return &ClientError{
		Type:      errorType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}
