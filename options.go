package gambit

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WithEndpointHostname sets the initial API hostname
func WithEndpointHostname(host string) Option {
	return func(s *Service) {
		s.hostname.Store(host)
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
		// Update timeout if it was set
		if client != nil && s.timeout != 0 {
			s.httpClient.Timeout = s.timeout
		}
	}
}

// WithTimeout sets the transport timeout. Zero, the default, leaves the
// http.Client without a timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
		if s.httpClient != nil {
			s.httpClient.Timeout = d
		}
	}
}

// WithIdleTimeout sets how long an idle pool worker waits before exiting
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.idleTimeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with every request
func WithUserAgent(userAgent string) Option {
	return func(s *Service) {
		s.userAgent = userAgent
	}
}

// WithMiddleware adds middleware around the transport call
func WithMiddleware(middleware ...Middleware) Option {
	return func(s *Service) {
		s.middleware = append(s.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(s *Service) {
		s.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(s *Service) {
		if s.debug == nil {
			s.debug = DefaultDebugConfig()
		}
		s.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(s *Service) {
		s.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger
func WithSimpleLogger() Option {
	return func(s *Service) {
		if s.debug == nil {
			s.debug = DefaultDebugConfig()
		}
		s.debug.Enabled = true
		s.logger = NewSimpleLogger()
	}
}

// WithZapLogger enables debug logging through logger
func WithZapLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if s.debug == nil {
			s.debug = DefaultDebugConfig()
		}
		s.debug.Enabled = true
		s.logger = NewZapLogger(logger)
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if s.debug == nil {
			s.debug = DefaultDebugConfig()
		}
		s.debug.RequestIDGen = gen
	}
}

// IsValid reports whether configuration validation passed at construction.
func (s *Service) IsValid() bool {
	return s.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (s *Service) ValidationError() error {
	return s.validationError
}

// ValidateConfiguration validates the service configuration and returns an
// error if invalid. The hostname is deliberately not checked here; a missing
// hostname fails the individual request instead.
func (s *Service) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, s.validateTransportConfig()...)
	errors = append(errors, s.validatePoolConfig()...)
	errors = append(errors, s.validateDebugConfig()...)
	errors = append(errors, s.validateMiddlewareConfig()...)

	if len(errors) > 0 {
		return &ClientError{
			Type:    ErrorTypeConfiguration,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

func (s *Service) validateTransportConfig() []string {
	var errors []string

	if s.httpClient == nil {
		errors = append(errors, "HTTP client cannot be nil")
	}
	if s.timeout < 0 {
		errors = append(errors, "timeout must be non-negative")
	}
	if s.timeout > 10*time.Minute {
		errors = append(errors, "timeout > 10m may cause requests to hang for too long")
	}
	if s.userAgent == "" {
		errors = append(errors, "user agent cannot be empty")
	}

	return errors
}

func (s *Service) validatePoolConfig() []string {
	var errors []string

	if s.idleTimeout <= 0 {
		errors = append(errors, "idleTimeout must be positive")
	}

	return errors
}

func (s *Service) validateDebugConfig() []string {
	var errors []string

	if s.debug != nil && s.debug.Enabled {
		if s.debug.RequestIDGen == nil {
			errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
		}
		if s.logger == nil {
			errors = append(errors, "logger must be set when debug is enabled")
		}
	}

	return errors
}

func (s *Service) validateMiddlewareConfig() []string {
	var errors []string

	for i, middleware := range s.middleware {
		if middleware == nil {
			errors = append(errors, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return errors
}
