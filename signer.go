package gambit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sign computes the HMAC-SHA256 of content keyed with the hex-decoded key and
// returns it as an uppercase hex string of 64 characters.
//
// The key must be an even-length string of hex digits; anything else yields a
// Crypto ClientError wrapping ErrInvalidKey. Sign holds no state and is safe
// for concurrent use.
func Sign(content, key string) (string, error) {
	if !utf8.ValidString(content) {
		return "", newClientError(ErrorTypeCrypto, "content is not valid UTF-8", nil)
	}

	rawKey, err := hex.DecodeString(key)
	if err != nil {
		return "", newClientError(ErrorTypeCrypto, "signing key is not valid hex", fmt.Errorf("%w: %w", ErrInvalidKey, err))
	}

	mac := hmac.New(sha256.New, rawKey)
	mac.Write([]byte(content))

	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil))), nil
}
