package gambit

import (
	"bytes"
	"encoding/json"
)

// UnknownErrorCode is reported when the server's answer does not have the
// shape the endpoint expects.
const UnknownErrorCode = "UNKNOWN"

// Response is the envelope every endpoint answer shares.
//
// Typed getters on concrete responses are only meaningful when IsSuccess
// reports true; on a failed response they return the empty string.
type Response interface {
	IsSuccess() bool
	ErrorCode() string
	ErrorDetails() string
	StatusCode() int
	RawBody() string
}

// Envelope implements Response. Concrete responses embed it, construct it
// with NewEnvelope and then call Require for the keys they expose.
type Envelope struct {
	statusCode   int
	raw          string
	doc          map[string]json.RawMessage
	success      bool
	errorCode    string
	errorDetails string
}

// NewEnvelope parses raw as a JSON object. The envelope is successful only
// if code is 2xx and raw is a JSON object; otherwise the error code and
// details are taken from the error_code / error_message keys (code / message
// as fallbacks), or UNKNOWN and the raw body when those are absent.
func NewEnvelope(raw string, code int) Envelope {
	e := Envelope{statusCode: code, raw: raw}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err == nil && doc != nil {
		e.doc = doc
	}

	if code >= 200 && code < 300 && e.doc != nil {
		e.success = true
		return e
	}

	e.errorCode = e.firstScalar("error_code", "code")
	e.errorDetails = e.firstScalar("error_message", "message")
	if e.errorCode == "" {
		e.errorCode = UnknownErrorCode
	}
	if e.errorDetails == "" {
		e.errorDetails = unknownResponse(raw)
	}
	return e
}

// Require returns the string values of keys in order. If the envelope is
// already a failure it returns false. If any key is missing or not a JSON
// string, the envelope is downgraded to a failure with UNKNOWN as error code
// and the raw body in the details.
func (e *Envelope) Require(keys ...string) ([]string, bool) {
	if !e.success {
		return nil, false
	}

	values := make([]string, len(keys))
	for i, key := range keys {
		v, ok := e.GetString(key)
		if !ok {
			e.decline()
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func (e *Envelope) decline() {
	e.success = false
	e.errorCode = UnknownErrorCode
	e.errorDetails = unknownResponse(e.raw)
}

func unknownResponse(raw string) string {
	return "Unknown response: " + raw
}

// Has reports whether the parsed document contains key.
func (e *Envelope) Has(key string) bool {
	_, ok := e.doc[key]
	return ok
}

// GetString returns the value of key if it is a JSON string.
func (e *Envelope) GetString(key string) (string, bool) {
	raw, ok := e.doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// firstScalar returns the first of keys holding a string or number.
func (e *Envelope) firstScalar(keys ...string) string {
	for _, key := range keys {
		if s, ok := e.GetString(key); ok && s != "" {
			return s
		}
		raw, ok := e.doc[key]
		if !ok {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err == nil && n != "" {
			return n.String()
		}
	}
	return ""
}

// IsSuccess reports a 2xx answer holding every required key.
func (e *Envelope) IsSuccess() bool { return e.success }

// ErrorCode is empty on success, else the server code or UNKNOWN.
func (e *Envelope) ErrorCode() string { return e.errorCode }

// ErrorDetails is empty on success, else the server message or the raw body.
func (e *Envelope) ErrorDetails() string { return e.errorDetails }

// StatusCode is the HTTP status, forced to 400 when the body was an error
// stream.
func (e *Envelope) StatusCode() int { return e.statusCode }

// RawBody is the response text with line breaks removed.
func (e *Envelope) RawBody() string { return e.raw }

// ClientSecretResponse answers a client secret request.
type ClientSecretResponse struct {
	Envelope
	clientSalt   string
	clientSecret string
}

// NewClientSecretResponse builds the response from the raw body and status.
func NewClientSecretResponse(raw string, code int) *ClientSecretResponse {
	r := &ClientSecretResponse{Envelope: NewEnvelope(raw, code)}
	if values, ok := r.Require("client_salt", "client_secret"); ok {
		r.clientSalt = values[0]
		r.clientSecret = values[1]
	}
	return r
}

// ClientSalt is the salt used to make requests on behalf of the client.
// Empty unless IsSuccess.
func (r *ClientSecretResponse) ClientSalt() string { return r.clientSalt }

// ClientSecret is the secret used to make requests on behalf of the client.
// Empty unless IsSuccess.
func (r *ClientSecretResponse) ClientSecret() string { return r.clientSecret }

// RandomUUIDResponse answers a random UUID request.
type RandomUUIDResponse struct {
	Envelope
	uuid string
}

// NewRandomUUIDResponse builds the response from the raw body and status.
func NewRandomUUIDResponse(raw string, code int) *RandomUUIDResponse {
	r := &RandomUUIDResponse{Envelope: NewEnvelope(raw, code)}
	if values, ok := r.Require("uuid"); ok {
		r.uuid = values[0]
	}
	return r
}

// UUID is the server generated UUID. Empty unless IsSuccess.
func (r *RandomUUIDResponse) UUID() string { return r.uuid }
