package cache

import (
	"sync"
	"time"
)

var _ Cache = (*TestCache)(nil)

type testEntry struct {
	value     []byte
	expiresAt time.Time
}

// TestCache is a map backed Cache with a controllable clock, used in unit tests
type TestCache struct {
	cache map[string]testEntry
	mutex sync.Mutex
	Now   func() time.Time
}

func NewTestCache() *TestCache {
	return &TestCache{
		cache: make(map[string]testEntry),
		Now:   time.Now,
	}
}

func (tc *TestCache) Get(key []byte) ([]byte, bool) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	entry, ok := tc.cache[string(key)]
	if !ok {
		return nil, false
	}
	if !tc.Now().Before(entry.expiresAt) {
		delete(tc.cache, string(key))
		return nil, false
	}
	return entry.value, true
}

func (tc *TestCache) Set(key, value []byte, ttl time.Duration) error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.cache[string(key)] = testEntry{
		value:     append([]byte(nil), value...),
		expiresAt: tc.Now().Add(ttl),
	}
	return nil
}

func (tc *TestCache) Del(key []byte) bool {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	_, ok := tc.cache[string(key)]
	delete(tc.cache, string(key))
	return ok
}

func (tc *TestCache) Clear() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.cache = make(map[string]testEntry)
}

func (tc *TestCache) Len() int {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	return len(tc.cache)
}
