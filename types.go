package gambit

import (
	"net/http"
)

// Middleware wraps the transport call of every request. It may inspect or
// modify the outgoing *http.Request and must call next to reach the server.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Option represents a configuration option
type Option func(*Service)

// Logger receives debug output. Arguments after msg are alternating
// key / value pairs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// DebugConfig selects which lifecycle events are logged.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogResponses bool
	LogPool      bool
	RequestIDGen func() string
}
