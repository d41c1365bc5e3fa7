package cache

import "time"

// Cache stores serialized values with a time to live
type Cache interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte, ttl time.Duration) error
	Del(key []byte) bool
	Clear()
}
