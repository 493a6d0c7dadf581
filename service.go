package gambit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gambit-tools/gambit-go/internal/pool"
)

// ServiceState is the lifecycle state of a Service.
type ServiceState int

const (
	// StateUninitialized means no request has been submitted yet and the
	// worker pool does not exist.
	StateUninitialized ServiceState = iota
	// StateActive means the worker pool exists and accepts work.
	StateActive
	// StateShutDown means Shutdown was called; submissions are rejected.
	StateShutDown
)

func (s ServiceState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateShutDown:
		return "shut down"
	default:
		return fmt.Sprintf("ServiceState(%d)", int(s))
	}
}

// Service owns the endpoint hostname and the worker pool every request runs
// on. Create one per process with New (or use Default) and share it; it is
// safe for concurrent use.
type Service struct {
	hostname atomic.Value // string

	httpClient      *http.Client
	timeout         time.Duration
	idleTimeout     time.Duration
	userAgent       string
	middleware      []Middleware
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	validationError error

	mu    sync.Mutex
	state ServiceState
	pool  *pool.Pool
}

// New constructs a Service using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for errors.
// The worker pool is created on the first submission.
func New(options ...Option) *Service {
	s := &Service{
		httpClient:  &http.Client{},
		idleTimeout: pool.DefaultIdleTimeout,
		userAgent:   UserAgent,
		middleware:  []Middleware{},
		debug:       DefaultDebugConfig(),
	}
	s.hostname.Store("")

	for _, option := range options {
		option(s)
	}

	if err := s.ValidateConfiguration(); err != nil {
		s.validationError = err
	}

	return s
}

var (
	defaultService *Service
	defaultOnce    sync.Once
)

// Default returns the process-wide Service, creating it on first use.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = New()
	})
	return defaultService
}

// SetEndpointHostname sets the API hostname used by every later request.
// The value is not validated until a request URL is built.
func (s *Service) SetEndpointHostname(host string) {
	s.hostname.Store(host)
}

// EndpointHostname returns the configured API hostname.
func (s *Service) EndpointHostname() string {
	host, _ := s.hostname.Load().(string)
	return host
}

// State returns the lifecycle state.
func (s *Service) State() ServiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) buildURL(path string) (string, error) {
	host := s.EndpointHostname()
	if host == "" {
		return "", ErrNotConfigured
	}

	var builder strings.Builder
	builder.WriteString("https://")
	builder.WriteString(host)
	builder.WriteByte('/')
	builder.WriteString(strings.TrimPrefix(path, "/"))
	return builder.String(), nil
}

// acquirePool returns the worker pool, creating it on first use.
func (s *Service) acquirePool() (*pool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateShutDown:
		return nil, ErrServiceShutDown
	case StateUninitialized:
		s.pool = pool.New(s.idleTimeout, s.metrics.RecordPoolWorkers)
		s.state = StateActive
		if s.logEnabled() && s.debug.LogPool {
			s.logger.Info("Worker pool started", "idleTimeout", s.idleTimeout)
		}
	}
	return s.pool, nil
}

// Shutdown stops the Service from accepting new submissions. Requests already
// submitted run to completion. Calling Shutdown more than once is a no-op.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateShutDown {
		return
	}
	if s.pool != nil {
		s.pool.Shutdown()
	}
	s.state = StateShutDown

	if s.logEnabled() && s.debug.LogPool {
		s.logger.Info("Service shut down")
	}
}

// AwaitTermination blocks until every request submitted before Shutdown has
// finished, or ctx is done.
func (s *Service) AwaitTermination(ctx context.Context) error {
	s.mu.Lock()
	p := s.pool
	state := s.state
	s.mu.Unlock()

	if state != StateShutDown {
		return errors.New("gambit: AwaitTermination called before Shutdown")
	}
	if p == nil {
		return nil
	}
	return p.Wait(ctx)
}

// Submit hands req to the worker pool and returns immediately. The Future
// rejects with a PoolRejected ClientError if the Service is shut down, a
// Validation one for a nil req, and an Internal one if req panics.
//
// Adding an endpoint only takes a Request implementation and its Response;
// Submit runs any of them.
func Submit[R Response](s *Service, req Request[R]) *Future[R] {
	requestID := s.newRequestID()

	if req == nil {
		err := newClientError(ErrorTypeValidation, "request is nil", nil)
		err.RequestID = requestID
		return rejectedFuture[R](err)
	}
	endpoint, pathErr := requestPath(req)
	if pathErr != nil {
		pathErr.RequestID = requestID
		return rejectedFuture[R](pathErr)
	}

	p, err := s.acquirePool()
	if err != nil {
		return rejectSubmission[R](s, endpoint, requestID, err)
	}

	f := newFuture[R]()
	task := func() {
		// Only captured values are used here; req may be what panicked.
		defer func() {
			if r := recover(); r != nil {
				var zero R
				f.complete(zero, &ClientError{
					Type:      ErrorTypeInternal,
					Message:   fmt.Sprintf("request panicked: %v", r),
					RequestID: requestID,
					Endpoint:  endpoint,
					Timestamp: time.Now(),
				})
			}
		}()
		resp, err := execute(s, req, endpoint, requestID)
		f.complete(resp, err)
	}

	if err := p.Submit(task); err != nil {
		return rejectSubmission[R](s, endpoint, requestID, ErrServiceShutDown)
	}
	return f
}

// requestPath reads req.Path, turning a panic into an Internal error.
func requestPath[R Response](req Request[R]) (path string, clientErr *ClientError) {
	defer func() {
		if r := recover(); r != nil {
			clientErr = newClientError(ErrorTypeInternal, fmt.Sprintf("request path panicked: %v", r), nil)
		}
	}()
	return req.Path(), nil
}

func rejectSubmission[R Response](s *Service, endpoint, requestID string, cause error) *Future[R] {
	err := newClientError(ErrorTypePoolRejected, "submission rejected", cause)
	err.RequestID = requestID
	err.Endpoint = endpoint

	s.metrics.RecordPoolRejection(endpoint)
	if s.logEnabled() && s.debug.LogPool {
		s.logger.Warn("Submission rejected", "requestID", requestID, "endpoint", endpoint, "error", cause.Error())
	}
	return rejectedFuture[R](err)
}

// SubmitClientSecret requests the client salt and secret for the builder's
// key pair.
func (s *Service) SubmitClientSecret(builder *ClientSecretBuilder) *Future[*ClientSecretResponse] {
	if builder == nil {
		return rejectedFuture[*ClientSecretResponse](errNilBuilder())
	}
	req, err := builder.Build()
	if err != nil {
		return rejectedFuture[*ClientSecretResponse](err)
	}
	return Submit[*ClientSecretResponse](s, req)
}

// SubmitRandomUUID requests a random UUID for the builder's key pair.
func (s *Service) SubmitRandomUUID(builder *RandomUUIDBuilder) *Future[*RandomUUIDResponse] {
	if builder == nil {
		return rejectedFuture[*RandomUUIDResponse](errNilBuilder())
	}
	req, err := builder.Build()
	if err != nil {
		return rejectedFuture[*RandomUUIDResponse](err)
	}
	return Submit[*RandomUUIDResponse](s, req)
}

func errNilBuilder() error {
	return newClientError(ErrorTypeValidation, "builder is nil", nil)
}

func (s *Service) roundTrip(req *http.Request) (*http.Response, error) {
	if len(s.middleware) == 0 {
		return s.httpClient.Do(req)
	}

	current := RoundTripperFunc(s.httpClient.Do)

	for i := len(s.middleware) - 1; i >= 0; i-- {
		middleware := s.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}
