package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Loader produces a fresh value for a key on a cache miss or refresh.
type Loader func(ctx context.Context) ([]byte, error)

// SWRCache wraps a Cache with stale-while-revalidate reads: entries are
// served fresh within FreshTTL, served stale within StaleGrace while a single
// background goroutine refreshes them, and loaded synchronously once the
// grace window has passed too.
type SWRCache struct {
	backend Cache

	// FreshTTL is how long an entry is served without any refresh.
	FreshTTL time.Duration
	// StaleGrace is how long past FreshTTL a stale entry may still be served.
	StaleGrace time.Duration

	mu         sync.Mutex
	refreshing map[string]struct{}
}

// NewSWRCache wraps backend with stale-while-revalidate semantics.
func NewSWRCache(backend Cache, freshTTL, staleGrace time.Duration) *SWRCache {
	return &SWRCache{
		backend:    backend,
		FreshTTL:   freshTTL,
		StaleGrace: staleGrace,
		refreshing: make(map[string]struct{}),
	}
}

// envelope is the stored form: the payload plus when it was written. The
// backend TTL covers fresh plus grace, so staleness is detected here.
type envelope struct {
	StoredAt int64  `json:"stored_at"`
	Payload  []byte `json:"payload"`
}

// GetOrLoad returns the value for key, loading it when absent. A stale entry
// inside the grace window is returned immediately while one goroutine
// refreshes it in the background.
func (s *SWRCache) GetOrLoad(ctx context.Context, key string, load Loader) ([]byte, error) {
	raw, err := s.backend.Get(ctx, key)
	if err == nil {
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil {
			age := time.Since(time.Unix(0, env.StoredAt))
			if age <= s.FreshTTL {
				return env.Payload, nil
			}
			if age <= s.FreshTTL+s.StaleGrace {
				s.refreshAsync(key, load)
				return env.Payload, nil
			}
		}
	} else if !IsCacheMiss(err) {
		return nil, err
	}

	payload, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, payload)
	return payload, nil
}

// Invalidate drops the entry for key.
func (s *SWRCache) Invalidate(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Clear drops every entry.
func (s *SWRCache) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

func (s *SWRCache) store(ctx context.Context, key string, payload []byte) {
	env := envelope{StoredAt: time.Now().UnixNano(), Payload: payload}
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	// Best effort: a failed write just means the next read reloads.
	_ = s.backend.Set(ctx, key, raw, s.FreshTTL+s.StaleGrace)
}

// refreshAsync starts one background refresh per key at a time.
func (s *SWRCache) refreshAsync(key string, load Loader) {
	s.mu.Lock()
	if _, busy := s.refreshing[key]; busy {
		s.mu.Unlock()
		return
	}
	s.refreshing[key] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.refreshing, key)
			s.mu.Unlock()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		payload, err := load(ctx)
		if err != nil {
			return
		}
		s.store(ctx, key, payload)
	}()
}
