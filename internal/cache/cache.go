package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores encoded coding results by input fingerprint
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// keyVersion changes whenever rule output for the same input may change.
const keyVersion = "dxcoder:v1:"

// Key fingerprints a document under the options that affect its result.
// The same text coded with different options never shares an entry.
func Key(text string, options ...string) string {
	h := sha256.New()
	for _, o := range options {
		h.Write([]byte(o))
		h.Write([]byte{0})
	}
	h.Write([]byte(text))
	return keyVersion + hex.EncodeToString(h.Sum(nil))
}

// New builds the configured cache: memory only, or memory over disk when a
// directory is given.
func New(ttl time.Duration, dir string) Cache {
	if dir == "" {
		return NewMemoryCache(ttl, 2*ttl)
	}
	return NewLayeredCache(ttl, dir, ttl)
}
