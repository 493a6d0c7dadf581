package gambit

import (
	"encoding/json"
	"time"
)

// Endpoint paths, relative to https://<hostname>/.
const (
	ClientSecretPath = "client_secret"
	RandomUUIDPath   = "random_uuid"
)

// signedBody is the JSON payload of signed endpoints.
type signedBody struct {
	AccessKey string `json:"access_key"`
	Timestamp int64  `json:"timestamp"`
}

func buildSignedRequest(path, accessKey, secretKey string, timestamp time.Time) (signedRequest, error) {
	if accessKey == "" {
		return signedRequest{}, newClientError(ErrorTypeValidation, "access key is required", nil)
	}
	if secretKey == "" {
		return signedRequest{}, newClientError(ErrorTypeValidation, "secret key is required", nil)
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	body, err := json.Marshal(signedBody{AccessKey: accessKey, Timestamp: timestamp.Unix()})
	if err != nil {
		return signedRequest{}, newClientError(ErrorTypeValidation, "cannot encode request body", err)
	}

	return signedRequest{path: path, body: body, secretKey: secretKey}, nil
}

// ClientSecretBuilder collects the fields of a client secret request.
type ClientSecretBuilder struct {
	// AccessKey is the public API key.
	AccessKey string
	// SecretKey is the hex encoded private API key used to sign the body.
	SecretKey string
	// Timestamp defaults to the time Build is called.
	Timestamp time.Time
}

// Build freezes the builder into an immutable request.
func (b *ClientSecretBuilder) Build() (*ClientSecretRequest, error) {
	req, err := buildSignedRequest(ClientSecretPath, b.AccessKey, b.SecretKey, b.Timestamp)
	if err != nil {
		return nil, err
	}
	return &ClientSecretRequest{signedRequest: req}, nil
}

// ClientSecretRequest asks for the client salt and secret tied to an API key
// pair.
type ClientSecretRequest struct {
	signedRequest
}

// NewResponse parses a client secret answer.
func (r *ClientSecretRequest) NewResponse(raw string, code int) *ClientSecretResponse {
	return NewClientSecretResponse(raw, code)
}

// RandomUUIDBuilder collects the fields of a random UUID request.
type RandomUUIDBuilder struct {
	AccessKey string
	SecretKey string
	Timestamp time.Time
}

// Build freezes the builder into an immutable request.
func (b *RandomUUIDBuilder) Build() (*RandomUUIDRequest, error) {
	req, err := buildSignedRequest(RandomUUIDPath, b.AccessKey, b.SecretKey, b.Timestamp)
	if err != nil {
		return nil, err
	}
	return &RandomUUIDRequest{signedRequest: req}, nil
}

// RandomUUIDRequest asks the server for a random UUID.
type RandomUUIDRequest struct {
	signedRequest
}

// NewResponse parses a random UUID answer.
func (r *RandomUUIDRequest) NewResponse(raw string, code int) *RandomUUIDResponse {
	return NewRandomUUIDResponse(raw, code)
}
