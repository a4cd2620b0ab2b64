// Package list implements an intrusive doubly-linked list with a sentinel
// root, the shared cursor-stable ordered container backing scene children
// and workspace stacks.
//
// Unlike a slice, removing an element while holding a reference to it is
// O(1) and does not invalidate other references, including iterators that
// are mid-traversal over the same list. This is the property the scene
// tree depends on: screencopies and popups can be torn down while a
// render or focus pass is walking the list that contains them.
package list

import (
	"sync"
	"unsafe"
)

// node is the intrusive storage cell. Remove clears a detached node's
// prev and next to nil, so Prev/Next on an unlinked node report no
// neighbors instead of dangling ones.
type node[T any] struct {
	mu   sync.Mutex
	prev *node[T]
	next *node[T]
	val  T
	root bool
}

// List is a doubly-linked list of T, ordered front to back.
//
// The zero value is not usable; construct with New.
type List[T any] struct {
	root *node[T]
}

// New returns an empty list.
func New[T any]() *List[T] {
	root := &node[T]{root: true}
	root.prev = root
	root.next = root
	return &List[T]{root: root}
}

// Ref is a handle to a linked element. Calling Remove unlinks the
// element from its list; a Ref carries no reference count, so discarding
// one without calling Remove leaves the element linked. Copying a Ref is
// safe; both copies refer to the same element.
type Ref[T any] struct {
	n *node[T]
}

// Value returns the element's payload.
func (r Ref[T]) Value() T {
	return r.n.val
}

// Set replaces the element's payload in place.
func (r Ref[T]) Set(v T) {
	r.n.mu.Lock()
	r.n.val = v
	r.n.mu.Unlock()
}

// Remove unlinks the element from its list. Safe to call more than once;
// the second call is a no-op.
func (r Ref[T]) Remove() {
	n := r.n
	n.mu.Lock()
	if n.prev == nil {
		n.mu.Unlock()
		return
	}
	prev, next := n.prev, n.next
	n.prev, n.next = nil, nil
	n.mu.Unlock()

	lockPair(prev, next)
	prev.next = next
	next.prev = prev
	unlockPair(prev, next)
}

// Linked reports whether the element is still part of a list.
func (r Ref[T]) Linked() bool {
	r.n.mu.Lock()
	defer r.n.mu.Unlock()
	return r.n.prev != nil
}

// Next returns the following element, or false if r is the last element
// or has been unlinked.
func (r Ref[T]) Next() (Ref[T], bool) {
	return r.peer(func(n *node[T]) *node[T] { return n.next })
}

// Prev returns the preceding element, or false if r is the first element
// or has been unlinked.
func (r Ref[T]) Prev() (Ref[T], bool) {
	return r.peer(func(n *node[T]) *node[T] { return n.prev })
}

func (r Ref[T]) peer(dir func(*node[T]) *node[T]) (Ref[T], bool) {
	r.n.mu.Lock()
	if r.n.prev == nil {
		r.n.mu.Unlock()
		return Ref[T]{}, false
	}
	p := dir(r.n)
	r.n.mu.Unlock()
	if p == nil || p.root {
		return Ref[T]{}, false
	}
	return Ref[T]{p}, true
}

func lockPair[T any](a, b *node[T]) {
	// Lock order by pointer identity avoids deadlock against a concurrent
	// Remove on the neighbor. When a == b (the root of an empty list, or
	// the root on both sides of a lone element) it is locked once.
	if a == b {
		a.mu.Lock()
		return
	}
	if ptr(a) < ptr(b) {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
}

func unlockPair[T any](a, b *node[T]) {
	a.mu.Unlock()
	if a != b {
		b.mu.Unlock()
	}
}

// PushBack inserts v at the end of the list and returns a handle to it.
func (l *List[T]) PushBack(v T) Ref[T] {
	return l.insertBefore(l.root, v)
}

// PushFront inserts v at the start of the list and returns a handle to it.
func (l *List[T]) PushFront(v T) Ref[T] {
	return l.insertBefore(l.root.next, v)
}

// InsertBefore inserts v immediately before the element at.
func (l *List[T]) InsertBefore(at Ref[T], v T) Ref[T] {
	return l.insertBefore(at.n, v)
}

// InsertAfter inserts v immediately after the element at.
func (l *List[T]) InsertAfter(at Ref[T], v T) Ref[T] {
	return l.insertBefore(at.n.next, v)
}

func (l *List[T]) insertBefore(at *node[T], v T) Ref[T] {
	n := &node[T]{val: v}
	lockPair(at.prev, at)
	prev := at.prev
	n.prev = prev
	n.next = at
	prev.next = n
	at.prev = n
	unlockPair(prev, at)
	return Ref[T]{n}
}

// Front returns the first element, or false if the list is empty.
func (l *List[T]) Front() (Ref[T], bool) {
	n := l.root.next
	if n == l.root {
		return Ref[T]{}, false
	}
	return Ref[T]{n}, true
}

// Back returns the last element, or false if the list is empty.
func (l *List[T]) Back() (Ref[T], bool) {
	n := l.root.prev
	if n == l.root {
		return Ref[T]{}, false
	}
	return Ref[T]{n}, true
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool {
	return l.root.next == l.root
}

// Each calls fn for every element currently in the list, front to back.
//
// fn may call Ref.Remove on the element it was given, or on an element
// that has not been visited yet. After fn returns, Each reads the next
// pointer of the current element again if it is still linked (or keeps
// the one read before the call if fn unlinked it), so an element
// unlinked before Each reaches it is skipped.
func (l *List[T]) Each(fn func(Ref[T]) bool) {
	cur := l.root.next
	for cur != l.root {
		next := cur.next
		if !fn(Ref[T]{cur}) {
			return
		}
		if cur.prev != nil {
			next = cur.next
		}
		cur = next
	}
}

// EachReverse calls fn for every element currently in the list, back to
// front, with the same re-entrancy contract as Each.
func (l *List[T]) EachReverse(fn func(Ref[T]) bool) {
	cur := l.root.prev
	for cur != l.root {
		prev := cur.prev
		if !fn(Ref[T]{cur}) {
			return
		}
		if cur.prev != nil {
			prev = cur.prev
		}
		cur = prev
	}
}

// Len walks the list and counts its elements. O(n); intended for tests
// and diagnostics, not hot paths.
func (l *List[T]) Len() int {
	n := 0
	l.Each(func(Ref[T]) bool {
		n++
		return true
	})
	return n
}

func ptr[T any](n *node[T]) uintptr {
	return uintptr(unsafe.Pointer(n))
}
