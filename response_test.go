package gambit

import (
	"strings"
	"testing"
)

func TestRandomUUIDResponseSuccess(t *testing.T) {
	raw := `{"uuid":"3fa85f64-5717-4562-b3fc-2c963f66afa6"}`
	resp := NewRandomUUIDResponse(raw, 200)

	if !resp.IsSuccess() {
		t.Fatalf("Expected success, got error %s: %s", resp.ErrorCode(), resp.ErrorDetails())
	}
	if resp.UUID() != "3fa85f64-5717-4562-b3fc-2c963f66afa6" {
		t.Errorf("Unexpected UUID %q", resp.UUID())
	}
	if resp.ErrorCode() != "" || resp.ErrorDetails() != "" {
		t.Errorf("Expected empty error fields, got %q / %q", resp.ErrorCode(), resp.ErrorDetails())
	}
	if resp.StatusCode() != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode())
	}
	if resp.RawBody() != raw {
		t.Errorf("Expected raw body to be kept, got %q", resp.RawBody())
	}
}

func TestClientSecretResponseSuccess(t *testing.T) {
	resp := NewClientSecretResponse(`{"client_salt":"salt-1","client_secret":"secret-1","extra":3}`, 201)

	if !resp.IsSuccess() {
		t.Fatalf("Expected success, got error %s: %s", resp.ErrorCode(), resp.ErrorDetails())
	}
	if resp.ClientSalt() != "salt-1" {
		t.Errorf("Expected salt-1, got %q", resp.ClientSalt())
	}
	if resp.ClientSecret() != "secret-1" {
		t.Errorf("Expected secret-1, got %q", resp.ClientSecret())
	}
}

func TestResponseMissingRequiredKey(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		raw  string
	}{
		{"uuid empty object", NewRandomUUIDResponse(`{}`, 200), `{}`},
		{"uuid wrong key", NewRandomUUIDResponse(`{"id":"x"}`, 200), `{"id":"x"}`},
		{"uuid not a string", NewRandomUUIDResponse(`{"uuid":42}`, 200), `{"uuid":42}`},
		{"uuid null", NewRandomUUIDResponse(`{"uuid":null}`, 200), `{"uuid":null}`},
		{"secret missing salt", NewClientSecretResponse(`{"client_secret":"s"}`, 200), `{"client_secret":"s"}`},
		{"secret missing secret", NewClientSecretResponse(`{"client_salt":"s"}`, 200), `{"client_salt":"s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.resp.IsSuccess() {
				t.Fatal("Expected failure")
			}
			if tt.resp.ErrorCode() != UnknownErrorCode {
				t.Errorf("Expected error code %s, got %s", UnknownErrorCode, tt.resp.ErrorCode())
			}
			if !strings.Contains(tt.resp.ErrorDetails(), tt.raw) {
				t.Errorf("Expected details to contain %q, got %q", tt.raw, tt.resp.ErrorDetails())
			}
		})
	}
}

func TestFailedResponseGettersAreEmpty(t *testing.T) {
	secret := NewClientSecretResponse(`{"client_salt":"s"}`, 200)
	if secret.ClientSalt() != "" || secret.ClientSecret() != "" {
		t.Errorf("Expected empty getters on failure, got %q / %q", secret.ClientSalt(), secret.ClientSecret())
	}

	uuidResp := NewRandomUUIDResponse(`{"uuid":"abc"}`, 400)
	if uuidResp.UUID() != "" {
		t.Errorf("Expected empty UUID on failure, got %q", uuidResp.UUID())
	}
}

func TestResponseNotJSON(t *testing.T) {
	tests := []string{"", "not json", "[1,2,3]", "null", `"string"`}

	for _, raw := range tests {
		resp := NewRandomUUIDResponse(raw, 200)
		if resp.IsSuccess() {
			t.Errorf("Expected failure for body %q", raw)
		}
		if resp.ErrorCode() != UnknownErrorCode {
			t.Errorf("Expected %s for body %q, got %s", UnknownErrorCode, raw, resp.ErrorCode())
		}
		if resp.ErrorDetails() != "Unknown response: "+raw {
			t.Errorf("Unexpected details for body %q: %q", raw, resp.ErrorDetails())
		}
	}
}

func TestResponseServerError(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCode    string
		wantDetails string
	}{
		{
			name:        "error_code and error_message",
			raw:         `{"error_code":"INVALID_SIGNATURE","error_message":"signature mismatch"}`,
			wantCode:    "INVALID_SIGNATURE",
			wantDetails: "signature mismatch",
		},
		{
			name:        "code and message fallbacks",
			raw:         `{"code":"EXPIRED","message":"timestamp too old"}`,
			wantCode:    "EXPIRED",
			wantDetails: "timestamp too old",
		},
		{
			name:        "numeric code",
			raw:         `{"code":1042,"message":"unknown access key"}`,
			wantCode:    "1042",
			wantDetails: "unknown access key",
		},
		{
			name:        "no error fields",
			raw:         `{"uuid":"3fa85f64-5717-4562-b3fc-2c963f66afa6"}`,
			wantCode:    UnknownErrorCode,
			wantDetails: `Unknown response: {"uuid":"3fa85f64-5717-4562-b3fc-2c963f66afa6"}`,
		},
		{
			name:        "html error page",
			raw:         `<html><body>Bad Gateway</body></html>`,
			wantCode:    UnknownErrorCode,
			wantDetails: `Unknown response: <html><body>Bad Gateway</body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewRandomUUIDResponse(tt.raw, 400)
			if resp.IsSuccess() {
				t.Fatal("Expected failure for 400 status")
			}
			if resp.ErrorCode() != tt.wantCode {
				t.Errorf("Expected code %q, got %q", tt.wantCode, resp.ErrorCode())
			}
			if resp.ErrorDetails() != tt.wantDetails {
				t.Errorf("Expected details %q, got %q", tt.wantDetails, resp.ErrorDetails())
			}
			if resp.UUID() != "" {
				t.Errorf("Expected empty UUID, got %q", resp.UUID())
			}
		})
	}
}

func TestEnvelopeStatusClasses(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		if !NewRandomUUIDResponse(`{"uuid":"u"}`, code).IsSuccess() {
			t.Errorf("Expected status %d to be a success", code)
		}
	}
	for _, code := range []int{0, 199, 300, 302, 400, 404, 500} {
		if NewRandomUUIDResponse(`{"uuid":"u"}`, code).IsSuccess() {
			t.Errorf("Expected status %d to be a failure", code)
		}
	}
}

func TestEnvelopeAccessors(t *testing.T) {
	e := NewEnvelope(`{"name":"value","n":1}`, 200)

	if !e.Has("name") || !e.Has("n") || e.Has("missing") {
		t.Error("Has() returned unexpected results")
	}
	if v, ok := e.GetString("name"); !ok || v != "value" {
		t.Errorf("Expected value, got %q (%v)", v, ok)
	}
	if _, ok := e.GetString("n"); ok {
		t.Error("GetString() should reject non-string values")
	}

	values, ok := e.Require("name")
	if !ok || len(values) != 1 || values[0] != "value" {
		t.Errorf("Require() returned %v, %v", values, ok)
	}
	if !e.IsSuccess() {
		t.Error("Require() with present keys must not downgrade the envelope")
	}

	if _, ok := e.Require("name", "missing"); ok {
		t.Error("Require() should fail for missing key")
	}
	if e.IsSuccess() || e.ErrorCode() != UnknownErrorCode {
		t.Error("Require() should downgrade the envelope on a missing key")
	}
}
