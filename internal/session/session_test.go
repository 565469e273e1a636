package session

// Notes:
// - A fake clock drives expiry; no test sleeps past a TTL.

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-toolbox"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ---------------------------------------------------------------------------
// TestStore - Lookup and creation
// ---------------------------------------------------------------------------

func TestStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour, WithInitialMarkdown("# seed"))
	sess := store.Create()

	if sess.ID() == "" {
		t.Fatal("empty session id")
	}
	if got := sess.Markdown().String(); got != "# seed" {
		t.Errorf("initial markdown = %q, want %q", got, "# seed")
	}
	if sess.Merge() == nil || sess.Merge().State().Files.Len() != 0 {
		t.Error("new session should have an empty merge list")
	}

	got, ok := store.Get(sess.ID())
	if !ok || got != sess {
		t.Error("Get() did not return the created session")
	}
}

func TestStore_DefaultInitialMarkdown(t *testing.T) {
	t.Parallel()

	sess := NewStore(time.Hour).Create()
	if sess.Markdown().String() != toolbox.DefaultMarkdown {
		t.Error("new sessions should start with the demo document")
	}
}

func TestStore_Get_Rejects(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	store.Create()

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"not a uuid", "session-1"},
		{"unknown uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := store.Get(tt.id); ok {
				t.Errorf("Get(%q) = ok, want miss", tt.id)
			}
		})
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)

	first, created := store.GetOrCreate("")
	if !created {
		t.Fatal("GetOrCreate(\"\") should create")
	}

	again, created := store.GetOrCreate(first.ID())
	if created || again != first {
		t.Error("GetOrCreate(existing) should return the same session")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	a := store.Create()
	b := store.Create()

	a.EditMarkdown("only in a")
	if b.Markdown().String() == "only in a" {
		t.Error("editing one session changed another")
	}
	if a.Merge() == b.Merge() {
		t.Error("sessions share a merge session")
	}
}

// ---------------------------------------------------------------------------
// TestStore_Expiry
// ---------------------------------------------------------------------------

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(10*time.Minute, WithClock(clock.Now))

	idle := store.Create()
	active := store.Create()

	clock.Advance(6 * time.Minute)
	if _, ok := store.Get(active.ID()); !ok {
		t.Fatal("active session expired early")
	}

	clock.Advance(6 * time.Minute)
	if _, ok := store.Get(idle.ID()); ok {
		t.Error("idle session still returned after TTL")
	}

	if n := store.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if _, ok := store.Get(active.ID()); !ok {
		t.Error("recently used session was swept")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_Run(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(time.Minute, WithClock(clock.Now))
	store.Create()
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Run(ctx, time.Millisecond) }()

	deadline := time.Now().Add(5 * time.Second)
	for store.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper never evicted the idle session")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			sess := store.Create()
			sess.EditMarkdown("x")
			store.Get(sess.ID())
			store.Sweep()
		})
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len() = %d, want 50", store.Len())
	}
}
