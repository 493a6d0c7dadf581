package gambit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestClientErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ClientError
		want string
	}{
		{"simple", &ClientError{Type: ErrorTypeConfiguration, Message: "no host"}, "Configuration: no host"},
		{"with cause", &ClientError{Type: ErrorTypeTransport, Message: "request failed", Cause: errors.New("dial")}, "Transport: request failed (dial)"},
		{"with request id", &ClientError{Type: ErrorTypeCrypto, Message: "bad key", RequestID: "req-1"}, "[req-1] Crypto: bad key"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClientErrorUnwrapAndIs(t *testing.T) {
	err := newClientError(ErrorTypeConfiguration, "cannot build request URL", ErrNotConfigured)

	if !errors.Is(err, ErrNotConfigured) {
		t.Error("Expected errors.Is to reach the cause")
	}
	if !errors.Is(err, &ClientError{Type: ErrorTypeConfiguration}) {
		t.Error("Expected errors.Is to match on type")
	}
	if errors.Is(err, &ClientError{Type: ErrorTypeTransport}) {
		t.Error("Expected errors.Is not to match a different type")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsConfigurationError(wrapped) {
		t.Error("Expected helpers to see through wrapping")
	}

	var nilErr *ClientError
	if nilErr.Unwrap() != nil || nilErr.Is(err) {
		t.Error("nil ClientError should neither unwrap nor match")
	}
}

func TestErrorTypeHelpers(t *testing.T) {
	tests := []struct {
		errorType string
		check     func(error) bool
	}{
		{ErrorTypeConfiguration, IsConfigurationError},
		{ErrorTypeTransport, IsTransportError},
		{ErrorTypeCrypto, IsCryptoError},
		{ErrorTypeValidation, IsValidationError},
		{ErrorTypePoolRejected, IsPoolRejected},
	}

	for _, tt := range tests {
		err := newClientError(tt.errorType, "msg", nil)
		if !tt.check(err) {
			t.Errorf("Expected helper for %s to match", tt.errorType)
		}
		if tt.check(errors.New("plain")) {
			t.Errorf("Helper for %s matched a plain error", tt.errorType)
		}
	}

	if !IsRejection(fmt.Errorf("wrapped: %w", newClientError(ErrorTypeTransport, "msg", nil))) {
		t.Error("Expected IsRejection to match a wrapped ClientError")
	}
	if IsRejection(errors.New("plain")) || IsRejection(nil) {
		t.Error("Expected IsRejection to ignore other errors")
	}

	if ErrorType(nil) != "" {
		t.Error("Expected empty type for nil error")
	}
}

func TestClientErrorDebugInfo(t *testing.T) {
	err := &ClientError{
		Type:      ErrorTypeTransport,
		Message:   "request failed",
		Cause:     errors.New("connection refused"),
		RequestID: "req-7",
		Endpoint:  RandomUUIDPath,
		URL:       "https://api.example.com/random_uuid",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  150 * time.Millisecond,
	}

	info := err.DebugInfo()
	for _, want := range []string{
		"Error Type: Transport",
		"Message: request failed",
		"Request ID: req-7",
		"URL: https://api.example.com/random_uuid",
		"Endpoint: random_uuid",
		"Timestamp: 2024-01-02T03:04:05Z",
		"Duration: 150ms",
		"Cause: connection refused",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected %q in debug info:\n%s", want, info)
		}
	}

	if strings.Contains(info, "Status Code") {
		t.Errorf("Rejections carry no server status:\n%s", info)
	}

	var nilErr *ClientError
	if nilErr.DebugInfo() != "Error: <nil>" {
		t.Errorf("Unexpected nil debug info %q", nilErr.DebugInfo())
	}
}
