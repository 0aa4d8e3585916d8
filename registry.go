package draftpress

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type formEntry struct {
	form    *FormSession
	touched time.Time
}

// FormRegistry holds live form sessions keyed by an opaque id carried in the
// form markup. Abandoned sessions are evicted after the TTL.
type FormRegistry struct {
	mu    sync.Mutex
	forms map[string]*formEntry
	ttl   time.Duration
}

// NewFormRegistry creates a registry whose sessions expire after ttl.
func NewFormRegistry(ttl time.Duration) *FormRegistry {
	r := &FormRegistry{
		forms: make(map[string]*formEntry),
		ttl:   ttl,
	}
	go r.cleanup()
	return r
}

func (r *FormRegistry) cleanup() {
	ticker := time.NewTicker(r.ttl)
	for range ticker.C {
		cutoff := time.Now().Add(-r.ttl)
		r.mu.Lock()
		for id, e := range r.forms {
			if e.touched.Before(cutoff) {
				delete(r.forms, id)
			}
		}
		r.mu.Unlock()
	}
}

// Create registers a fresh form session and returns its id.
func (r *FormRegistry) Create() (string, *FormSession) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	id := hex.EncodeToString(buf)
	form := NewFormSession()

	r.mu.Lock()
	r.forms[id] = &formEntry{form: form, touched: time.Now()}
	r.mu.Unlock()
	return id, form
}

// Get returns the session for id, refreshing its expiry.
func (r *FormRegistry) Get(id string) (*FormSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	e.touched = time.Now()
	return e.form, true
}

// Drop removes a session, typically after a successful submission.
func (r *FormRegistry) Drop(id string) {
	r.mu.Lock()
	delete(r.forms, id)
	r.mu.Unlock()
}
