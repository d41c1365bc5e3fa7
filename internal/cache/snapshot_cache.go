package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*SnapshotCache)(nil)

// freecache refuses smaller sizes and silently bumps them to 512KB
const minSizeBytes = 512 * 1024

type SnapshotCache struct {
	mainCache *freecache.Cache
}

func NewSnapshotCache(sizeMB int) (*SnapshotCache, error) {
	sizeBytes := sizeMB * 1024 * 1024
	if sizeBytes < minSizeBytes {
		return nil, fmt.Errorf("snapshot cache size must be at least %d bytes, got %d", minSizeBytes, sizeBytes)
	}

	return &SnapshotCache{
		mainCache: freecache.NewCache(sizeBytes),
	}, nil
}

func (sc *SnapshotCache) Get(key []byte) ([]byte, bool) {
	val, err := sc.mainCache.Get(key)
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores the value; freecache has second resolution, so a positive ttl below
// one second is rounded up.
func (sc *SnapshotCache) Set(key, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("snapshot ttl must be positive")
	}
	expireSeconds := int(ttl / time.Second)
	if expireSeconds == 0 {
		expireSeconds = 1
	}
	return sc.mainCache.Set(key, value, expireSeconds)
}

func (sc *SnapshotCache) Del(key []byte) bool {
	return sc.mainCache.Del(key)
}

func (sc *SnapshotCache) Clear() {
	sc.mainCache.Clear()
}

func (sc *SnapshotCache) EntryCount() int64 {
	return sc.mainCache.EntryCount()
}
