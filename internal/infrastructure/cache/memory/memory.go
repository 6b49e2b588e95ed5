// Package memory is the in-process fallback used when redis is not configured.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

func New(cleanupInterval time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.cleanup(cleanupInterval)
	}
	return s
}

// Revoke reports false when id is already revoked.
func (s *Store) Revoke(_ context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := "revoked:" + id
	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return false, nil
	}
	s.entries[key] = entry{value: "1", expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *Store) IsRevoked(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.Get(ctx, "revoked:"+id)
	return ok, err
}

func (s *Store) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = "counter:" + key
	now := s.now()

	var n int64
	e, ok := s.entries[key]
	if ok && now.Before(e.expiresAt) {
		n, _ = strconv.ParseInt(e.value, 10, 64)
	} else {
		e.expiresAt = now.Add(ttl)
	}

	n++
	e.value = strconv.FormatInt(n, 10)
	s.entries[key] = e
	return n, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *Store) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *Store) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evict()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evict() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
