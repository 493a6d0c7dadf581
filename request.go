package gambit

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// transportFailureStatus replaces the status code whenever the server's body
// could not be read as a successful answer.
const transportFailureStatus = http.StatusBadRequest

// Request is one immutable pending call. Implementations must not be mutated
// once submitted: the value is handed to a worker goroutine and read there.
type Request[R Response] interface {
	// Path is appended to https://<hostname>/ to form the target URL.
	Path() string
	// Body is the JSON request body; it may be empty.
	Body() []byte
	// Prepare adds or overrides headers before the body is written,
	// typically signature headers.
	Prepare(header http.Header) error
	// NewResponse builds the typed response from the raw body and status.
	NewResponse(raw string, code int) R
}

// execute runs the one request algorithm shared by every endpoint; endpoint
// is req.Path(), read once by the caller. It returns
// an error only when no server payload could be obtained; every answer the
// server gave, including error statuses, becomes a Response.
func execute[R Response](s *Service, req Request[R], endpoint, requestID string) (R, error) {
	var zero R
	start := time.Now()

	s.metrics.RecordRequestStart(endpoint)
	defer s.metrics.RecordRequestEnd(endpoint)

	fail := func(err *ClientError) (R, error) {
		err.RequestID = requestID
		err.Endpoint = endpoint
		err.Duration = time.Since(start)
		s.metrics.RecordError(err.Type, endpoint)
		if s.logEnabled() {
			s.logger.Error("Request failed", "requestID", requestID, "endpoint", endpoint, "type", err.Type, "error", err.Error())
		}
		return zero, err
	}

	target, err := s.buildURL(endpoint)
	if err != nil {
		return fail(newClientError(ErrorTypeConfiguration, "cannot build request URL", err))
	}

	if s.logEnabled() && s.debug.LogRequests {
		s.logger.Debug("Starting request", "requestID", requestID, "url", target, "endpoint", endpoint)
	}

	httpReq, err := http.NewRequest(http.MethodPost, target, nil)
	if err != nil {
		return fail(withURL(newClientError(ErrorTypeConfiguration, "invalid request URL", err), target))
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if err := req.Prepare(httpReq.Header); err != nil {
		var clientErr *ClientError
		if !errors.As(err, &clientErr) {
			clientErr = newClientError(ErrorTypeCrypto, "cannot prepare request", err)
		}
		return fail(withURL(clientErr, target))
	}

	if body := req.Body(); len(body) > 0 {
		httpReq.Header.Set("Content-Length", strconv.Itoa(len(body)))
		httpReq.ContentLength = int64(len(body))
		httpReq.Body = io.NopCloser(bytes.NewReader(body))
		httpReq.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	resp, err := s.roundTrip(httpReq)
	if err != nil {
		return fail(withURL(newClientError(ErrorTypeTransport, "request failed", err), target))
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	raw, readErr := readBody(resp.Body)
	if code >= 400 || readErr != nil {
		if readErr != nil && s.logEnabled() {
			s.logger.Warn("Reading response body failed", "requestID", requestID, "endpoint", endpoint, "error", readErr.Error())
		}
		code = transportFailureStatus
	}

	response := req.NewResponse(raw, code)

	s.metrics.RecordRequest(endpoint, code, time.Since(start))
	if !response.IsSuccess() {
		s.metrics.RecordDeclined(endpoint, response.ErrorCode())
	}
	if s.logEnabled() && s.debug.LogResponses {
		s.logger.Debug("Request completed", "requestID", requestID, "endpoint", endpoint,
			"statusCode", code, "success", response.IsSuccess(), "errorCode", response.ErrorCode(),
			"duration", time.Since(start))
	}

	return response, nil
}

func withURL(err *ClientError, target string) *ClientError {
	err.URL = target
	return err
}

// readBody reads r line by line and concatenates the lines without their
// line terminators. A nil reader yields an empty body. On a read error the
// text read so far is returned with the error.
func readBody(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}

	var builder strings.Builder
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		builder.WriteString(line)
		if err == io.EOF {
			return builder.String(), nil
		}
		if err != nil {
			return builder.String(), err
		}
	}
}

// signedRequest is the common shape of endpoints that post a JSON body signed
// with the caller's secret key in the Authorization header.
type signedRequest struct {
	path      string
	body      []byte
	secretKey string
}

func (r *signedRequest) Path() string { return r.path }

func (r *signedRequest) Body() []byte { return r.body }

func (r *signedRequest) Prepare(header http.Header) error {
	signature, err := Sign(string(r.body), r.secretKey)
	if err != nil {
		return err
	}
	header.Set(SignatureHeader, signature)
	return nil
}

// SignatureHeader carries the HMAC of the request body.
const SignatureHeader = "Authorization"
