package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
)

func isCircuitFailure(err error) bool {
	return errors.Is(err, errAnubisTransient)
}

// hashToken derives the principal cache key. Raw tokens must never be
// used as keys or appear in logs.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if path == "" {
		return baseURL
	}
	return baseURL + "/" + strings.TrimPrefix(path, "/")
}
