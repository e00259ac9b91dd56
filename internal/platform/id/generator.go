package id

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs and invite tokens suitable for external
// references. Tokens are longer than IDs because they travel in share
// links and act as bearer secrets until they expire.
type Generator interface {
	NewID() (string, error)
	NewToken() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

func (g *RandomGenerator) NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
