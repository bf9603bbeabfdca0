package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, highWater int) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(Options{HighWater: highWater, SweepInterval: time.Hour, Now: clock.Now})
	t.Cleanup(c.Close)
	return c, clock
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache(t, 0)
	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected entry to be present")
	}
	if got != "v" {
		t.Fatalf("Get(k) = %v, want v", got)
	}
}

func TestGetExpiredRemovesEntry(t *testing.T) {
	c, clock := newTestCache(t, 0)
	c.Set("k", "v", time.Minute)

	clock.Advance(time.Minute - time.Nanosecond)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected entry to be live just before its ttl elapses")
	}

	clock.Advance(time.Nanosecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	if n := c.Len(); n != 0 {
		t.Fatalf("expected expired entry to be removed on read, Len() = %d", n)
	}
}

func TestSetOverwrites(t *testing.T) {
	c, clock := newTestCache(t, 0)
	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Hour)

	clock.Advance(30 * time.Minute)
	got, ok := Lookup[int](c, "k")
	if !ok || got != 2 {
		t.Fatalf("Lookup(k) = %d, %v; want 2, true", got, ok)
	}
}

func TestHighWaterSweepDropsOnlyExpired(t *testing.T) {
	c, clock := newTestCache(t, 3)
	c.Set("old-1", 1, time.Second)
	c.Set("old-2", 2, time.Second)
	c.Set("live", 3, time.Hour)

	clock.Advance(2 * time.Second)
	c.Set("new", 4, time.Hour) // pushes count to 4 > 3

	if n := c.Len(); n != 2 {
		t.Fatalf("expected 2 entries after sweep, got %d", n)
	}
	if _, ok := c.Get("live"); !ok {
		t.Fatal("live entry should survive the sweep")
	}
}

func TestBelowHighWaterKeepsExpiredUntilRead(t *testing.T) {
	c, clock := newTestCache(t, 10)
	c.Set("a", 1, time.Second)
	clock.Advance(2 * time.Second)
	c.Set("b", 2, time.Hour)

	if n := c.Len(); n != 2 {
		t.Fatalf("expected lazy expiry below high water, Len() = %d", n)
	}
	total, active := c.Stats()
	if total != 2 || active != 1 {
		t.Fatalf("Stats() = %d, %d; want 2, 1", total, active)
	}
}

func TestSweep(t *testing.T) {
	c, clock := newTestCache(t, 0)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, time.Duration(i+1)*time.Minute)
	}
	clock.Advance(3 * time.Minute)

	if removed := c.Sweep(); removed != 3 {
		t.Fatalf("Sweep() removed %d, want 3", removed)
	}
}

func TestLookupWrongType(t *testing.T) {
	c, _ := newTestCache(t, 0)
	c.Set("k", "string", time.Minute)
	if _, ok := Lookup[int](c, "k"); ok {
		t.Fatal("expected type mismatch to be reported absent")
	}
}

func TestBackgroundSweep(t *testing.T) {
	c := New(Options{SweepInterval: 10 * time.Millisecond})
	defer c.Close()
	c.Set("k", "v", time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Len() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("background sweep never removed the expired entry")
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(Options{})
	c.Close()
	c.Close()
}

func TestNamespace(t *testing.T) {
	if got := Namespace(""); got != "" {
		t.Fatalf("Namespace(\"\") = %q, want empty", got)
	}
	a, b := Namespace("key-a"), Namespace("key-b")
	if a == b {
		t.Fatalf("distinct keys share namespace %q", a)
	}
	if len(a) != 12 || a != Namespace("key-a") {
		t.Fatalf("Namespace(key-a) = %q, want stable 12-char hex", a)
	}
}
