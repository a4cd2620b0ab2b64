// Package idmap implements the id-keyed mapping ("copy map") used for the
// client-object table, per-interface object tables, and connector/output
// indexes: a map from small integer id to reference-counted value,
// optimized for frequent lookup and for bulk clear (the break_loops
// discipline at client teardown).
package idmap

import "sync"

// Map is a concurrency-safe map from K to V.
type Map[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Set binds k to v, returning the previously bound value if any.
func (m *Map[K, V]) Set(k K, v V) (prev V, had bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, had = m.m[k]
	m.m[k] = v
	return prev, had
}

// Get returns the value bound to k.
func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok = m.m[k]
	return v, ok
}

// Remove unbinds k, returning the value that was bound if any.
func (m *Map[K, V]) Remove(k K) (v V, had bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, had = m.m[k]
	delete(m.m, k)
	return v, had
}

// Contains reports whether k is bound.
func (m *Map[K, V]) Contains(k K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.m[k]
	return ok
}

// Len returns the number of bound keys.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

// Keys returns a snapshot of the currently bound keys. The snapshot is
// taken under lock but is not itself synchronized with later mutation.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of the currently bound values.
func (m *Map[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values := make([]V, 0, len(m.m))
	for _, v := range m.m {
		values = append(values, v)
	}
	return values
}

// Clear empties the map and returns the values that were present, for
// callers (such as break_loops) that need to act on every entry once.
func (m *Map[K, V]) Clear() []V {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := make([]V, 0, len(m.m))
	for _, v := range m.m {
		values = append(values, v)
	}
	m.m = make(map[K]V)
	return values
}

// ForEach calls fn for a snapshot of the map's entries at call time.
// Mutating the map from within fn is safe: it operates on the snapshot.
func (m *Map[K, V]) ForEach(fn func(K, V)) {
	m.mu.RLock()
	snapshot := make(map[K]V, len(m.m))
	for k, v := range m.m {
		snapshot[k] = v
	}
	m.mu.RUnlock()
	for k, v := range snapshot {
		fn(k, v)
	}
}
