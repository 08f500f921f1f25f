package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	expiresAt time.Time // zero = never
	value     string
}

// Memory is an in-process Store. Expired entries are dropped lazily on read
// and, when a cleanup interval is configured, by a background sweep.
type Memory struct {
	items  map[string]memoryEntry
	now    func() time.Time
	done   chan struct{}
	opts   memoryOptions
	mu     sync.Mutex
	closed bool
}

// MemoryOption configures a Memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now             func() time.Time
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

// WithDefaultTTL sets the TTL used when Set receives zero.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired entries are swept.
// Zero disables the sweep. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithNow replaces the time source, for tests.
func WithNow(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		o.now = now
	}
}

// NewMemory creates an in-memory store. Call Close to stop the sweep.
//
//	s := cache.NewMemory(cache.WithDefaultTTL(10 * time.Minute))
//	defer s.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := memoryOptions{
		now:             time.Now,
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Memory{
		items: make(map[string]memoryEntry),
		now:   o.now,
		done:  make(chan struct{}),
		opts:  o,
	}
	if o.cleanupInterval > 0 {
		go m.sweep()
	}
	return m
}

// Get returns the value under key, or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(key)
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

// Take returns the value under key and removes it.
func (m *Memory) Take(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := m.lookup(key)
	if err != nil {
		return "", err
	}
	delete(m.items, key)
	return v, nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the background sweep. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

// lookup must be called with the mutex held.
func (m *Memory) lookup(key string) (string, error) {
	if m.closed {
		return "", ErrClosed
	}
	e, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	if m.expired(e) {
		delete(m.items, key)
		return "", ErrNotFound
	}
	return e.value, nil
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.items {
		if m.expired(e) {
			delete(m.items, k)
		}
	}
}

var _ Store = (*Memory)(nil)
