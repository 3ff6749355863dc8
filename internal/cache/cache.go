package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for in-process memoization
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key derives a cache key from a content digest and the settings that
// change the cached value
func Key(digest string, settings ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(settings, "\x00")))
	return digest + ":" + hex.EncodeToString(hash[:8])
}
