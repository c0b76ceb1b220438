package verification

import (
	"errors"
	"testing"
	"time"
)

// mapCache is a minimal cache.Cache implementation for tests. It never
// evicts; expiry behavior is exercised through the store's injected clock.
type mapCache struct {
	entries map[string]any
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]any)}
}

func (m *mapCache) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *mapCache) Set(key string, value any, cost int64) bool {
	m.entries[key] = value
	return true
}

func (m *mapCache) SetWithTTL(key string, value any, cost int64, ttl time.Duration) bool {
	m.entries[key] = value
	return true
}

func (m *mapCache) Delete(key string) {
	delete(m.entries, key)
}

// testClock is a manually advanced time source.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestStore() (*Store, *testClock) {
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := New(newMapCache(), WithClock(clock.Now))
	return store, clock
}

func TestValidateCodeLifecycle(t *testing.T) {
	store, _ := newTestStore()

	code, err := store.IssueCode("a@x.com", "alice", "Secret-123")
	if err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	// wrong code rejected
	if err := store.ValidateCode("a@x.com", "000000"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("wrong code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
	}

	// correct code accepted
	if err := store.ValidateCode("a@x.com", code); err != nil {
		t.Fatalf("correct code: error = %v", err)
	}

	// replay of the consumed code rejected
	if err := store.ValidateCode("a@x.com", code); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("replayed code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
	}
}

func TestReissueSupersedesPriorCode(t *testing.T) {
	store, _ := newTestStore()

	first, err := store.IssueCode("a@x.com", "alice", "Secret-123")
	if err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}
	second, err := store.IssueCode("a@x.com", "alice", "Secret-123")
	if err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}

	if first != second {
		if err := store.ValidateCode("a@x.com", first); !errors.Is(err, ErrInvalidOrExpiredCode) {
			t.Errorf("superseded code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
		}
	}
	if err := store.ValidateCode("a@x.com", second); err != nil {
		t.Errorf("current code: error = %v", err)
	}
}

func TestCodeExpiry(t *testing.T) {
	store, clock := newTestStore()

	code, err := store.IssueCode("a@x.com", "alice", "Secret-123")
	if err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}

	clock.Advance(DefaultCodeTTL + time.Second)

	if err := store.ValidateCode("a@x.com", code); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("expired code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
	}
}

func TestVerifiedMark(t *testing.T) {
	store, clock := newTestStore()

	// no validation happened yet
	if err := store.Verified("a@x.com"); !errors.Is(err, ErrNotVerified) {
		t.Errorf("Verified() before validation: error = %v, want %v", err, ErrNotVerified)
	}

	code, _ := store.IssueCode("a@x.com", "alice", "Secret-123")
	if err := store.ValidateCode("a@x.com", code); err != nil {
		t.Fatalf("ValidateCode() error = %v", err)
	}

	if err := store.Verified("a@x.com"); err != nil {
		t.Errorf("Verified() after validation: error = %v", err)
	}

	// mark is single-use
	store.Consume("a@x.com")
	if err := store.Verified("a@x.com"); !errors.Is(err, ErrNotVerified) {
		t.Errorf("Verified() after Consume: error = %v, want %v", err, ErrNotVerified)
	}

	// mark expires on its own TTL
	code, _ = store.IssueCode("a@x.com", "alice", "Secret-123")
	if err := store.ValidateCode("a@x.com", code); err != nil {
		t.Fatalf("ValidateCode() error = %v", err)
	}
	clock.Advance(DefaultMarkTTL + time.Second)
	if err := store.Verified("a@x.com"); !errors.Is(err, ErrNotVerified) {
		t.Errorf("Verified() after mark TTL: error = %v, want %v", err, ErrNotVerified)
	}
}

func TestInvalidate(t *testing.T) {
	store, _ := newTestStore()

	code, _ := store.IssueCode("a@x.com", "alice", "Secret-123")
	store.Invalidate("a@x.com")

	if err := store.ValidateCode("a@x.com", code); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("invalidated code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
	}
}

func TestEmptyCodeRejected(t *testing.T) {
	store, _ := newTestStore()

	if _, err := store.IssueCode("a@x.com", "alice", "Secret-123"); err != nil {
		t.Fatalf("IssueCode() error = %v", err)
	}
	if err := store.ValidateCode("a@x.com", ""); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("empty code: error = %v, want %v", err, ErrInvalidOrExpiredCode)
	}
}
