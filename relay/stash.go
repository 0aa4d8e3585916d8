package relay

import (
	"sync"
	"time"
)

// Stash is a key-value side channel for relayed content bodies.
type Stash interface {
	Put(key, value string) error
	Get(key string) (string, bool, error)
	Delete(key string) error
}

type memEntry struct {
	value   string
	expires time.Time
}

// MemoryStash is the session-scoped channel: in-process, TTL-evicted, gone on
// restart. It is always the preferred write target.
type MemoryStash struct {
	mu      sync.Mutex
	entries map[string]memEntry
	ttl     time.Duration
}

// NewMemoryStash creates a MemoryStash whose entries expire after ttl.
func NewMemoryStash(ttl time.Duration) *MemoryStash {
	s := &MemoryStash{
		entries: make(map[string]memEntry),
		ttl:     ttl,
	}
	go s.cleanup()
	return s
}

func (s *MemoryStash) cleanup() {
	ticker := time.NewTicker(s.ttl)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for k, e := range s.entries {
			if now.After(e.expires) {
				delete(s.entries, k)
			}
		}
		s.mu.Unlock()
	}
}

func (s *MemoryStash) Put(key, value string) error {
	s.mu.Lock()
	s.entries[key] = memEntry{value: value, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStash) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expires) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStash) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Tiered reads the session stash first and falls back to the durable one.
// Deletes hit both channels so a later read never replays stale content.
// Fallback may be nil.
type Tiered struct {
	Session  Stash
	Fallback Stash
}

func (t Tiered) Put(key, value string) error {
	if err := t.Session.Put(key, value); err != nil {
		if t.Fallback != nil {
			return t.Fallback.Put(key, value)
		}
		return err
	}
	return nil
}

func (t Tiered) Get(key string) (string, bool, error) {
	v, ok, err := t.Session.Get(key)
	if err == nil && ok {
		return v, true, nil
	}
	if t.Fallback == nil {
		return "", false, err
	}
	return t.Fallback.Get(key)
}

func (t Tiered) Delete(key string) error {
	err := t.Session.Delete(key)
	if t.Fallback != nil {
		if ferr := t.Fallback.Delete(key); err == nil {
			err = ferr
		}
	}
	return err
}
