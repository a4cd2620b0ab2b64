package idmap

import "testing"

func TestSetReturnsPrevious(t *testing.T) {
	m := New[uint32, string]()
	if _, had := m.Set(1, "a"); had {
		t.Fatalf("expected no previous value")
	}
	prev, had := m.Set(1, "b")
	if !had || prev != "a" {
		t.Fatalf("expected previous value %q, got %q (had=%v)", "a", prev, had)
	}
}

func TestRemoveThenGetFails(t *testing.T) {
	m := New[uint32, string]()
	m.Set(1, "a")
	m.Remove(1)
	if _, ok := m.Get(1); ok {
		t.Fatalf("expected lookup to fail after remove")
	}
}

func TestClearSnapshotsAndEmpties(t *testing.T) {
	m := New[uint32, int]()
	m.Set(1, 10)
	m.Set(2, 20)
	values := m.Clear()
	if len(values) != 2 {
		t.Fatalf("expected 2 values from clear, got %d", len(values))
	}
	if m.Len() != 0 {
		t.Fatalf("expected map to be empty after clear")
	}
}

func TestForEachSeesSnapshot(t *testing.T) {
	m := New[uint32, int]()
	for i := uint32(0); i < 5; i++ {
		m.Set(i, int(i))
	}
	seen := 0
	m.ForEach(func(k uint32, v int) {
		seen++
		// Mutating during ForEach must not panic or deadlock.
		m.Remove(k)
	})
	if seen != 5 {
		t.Fatalf("expected to see 5 entries, saw %d", seen)
	}
	if m.Len() != 0 {
		t.Fatalf("expected map emptied by callback removals")
	}
}
