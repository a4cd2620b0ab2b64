package list

import "testing"

func TestPushBackOrder(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	var got []int
	l.Each(func(r Ref[int]) bool {
		got = append(got, r.Value())
		return true
	})
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestPushFrontOrder(t *testing.T) {
	l := New[string]()
	l.PushFront("b")
	l.PushFront("a")
	front, ok := l.Front()
	if !ok || front.Value() != "a" {
		t.Fatalf("expected front element to be a")
	}
}

func TestRemoveUnlinksAndIsIdempotent(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	r2 := l.PushBack(2)
	l.PushBack(3)

	r2.Remove()
	if r2.Linked() {
		t.Fatalf("expected r2 to be unlinked")
	}
	r2.Remove() // must not panic or corrupt the list

	if l.Len() != 2 {
		t.Fatalf("expected 2 elements remaining, got %d", l.Len())
	}

	var got []int
	l.Each(func(r Ref[int]) bool {
		got = append(got, r.Value())
		return true
	})
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected remaining order: %v", got)
	}
}

func TestEachSurvivesRemovalDuringIteration(t *testing.T) {
	l := New[int]()
	refs := make([]Ref[int], 0, 5)
	for i := 0; i < 5; i++ {
		refs = append(refs, l.PushBack(i))
	}

	var visited []int
	l.Each(func(r Ref[int]) bool {
		v := r.Value()
		visited = append(visited, v)
		// Remove the next element (not yet visited) while iterating,
		// mirroring a screencopy destroyed mid render-walk.
		if v == 1 {
			refs[2].Remove()
		}
		return true
	})

	for _, v := range visited {
		if v == 2 {
			t.Fatalf("removed-before-visit element must not appear: %v", visited)
		}
	}
	if l.Len() != 4 {
		t.Fatalf("expected 4 elements remaining, got %d", l.Len())
	}
}

func TestEachReverseOrder(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	var got []int
	l.EachReverse(func(r Ref[int]) bool {
		got = append(got, r.Value())
		return true
	})
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestInsertBeforeAfter(t *testing.T) {
	l := New[int]()
	mid := l.PushBack(2)
	l.InsertBefore(mid, 1)
	l.InsertAfter(mid, 3)

	var got []int
	l.Each(func(r Ref[int]) bool {
		got = append(got, r.Value())
		return true
	})
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestEmptyList(t *testing.T) {
	l := New[int]()
	if !l.Empty() {
		t.Fatalf("expected new list to be empty")
	}
	if _, ok := l.Front(); ok {
		t.Fatalf("expected no front element")
	}
	if _, ok := l.Back(); ok {
		t.Fatalf("expected no back element")
	}
}
