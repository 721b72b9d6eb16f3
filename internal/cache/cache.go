// Package cache provides the keyed data cache used in front of the
// open-data API and the schedule facade. Entries carry a creation
// timestamp and a fixed expiry; expired entries are ignored on read
// rather than proactively evicted.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTTL is how long a cached entry stays valid.
const DefaultTTL = 24 * time.Hour

// Stats describes the current contents of a store. Expired entries
// still count until they are overwritten or cleared.
type Stats struct {
	Size        int        `json:"size"`
	Keys        []string   `json:"keys"`
	OldestEntry *time.Time `json:"oldest_entry"`
	NewestEntry *time.Time `json:"newest_entry"`
}

// Store is the cache abstraction shared by the API client and the
// schedule facade. Get reports ok=false both for absent keys and for
// entries older than the store's TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}

// GetJSON looks up key and unmarshals the entry into dest. It returns
// false on a miss without touching dest.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}
