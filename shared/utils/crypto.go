package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

var fingerprintPepper = uuid.New().String() + "-" + uuid.New().String()

// Fingerprint returns a keyed, process-local hash of s. It is used to key
// data by secret values (such as session tokens) without keeping the secret.
func Fingerprint(s string) string {
	mac := hmac.New(sha256.New, []byte(fingerprintPepper))
	mac.Write([]byte(s))
	return hex.EncodeToString(mac.Sum(nil))
}
