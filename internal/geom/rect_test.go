package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	if !r.Contains(Point{10, 10}) {
		t.Fatalf("expected top-left corner to be contained")
	}
	if r.Contains(Point{30, 10}) {
		t.Fatalf("right edge must be exclusive")
	}
	if r.Contains(Point{9, 10}) {
		t.Fatalf("point outside rect must not be contained")
	}
}

func TestRectTranslatePreservesSize(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	moved := r.Translate(Point{5, -5})
	if moved.W != r.W || moved.H != r.H {
		t.Fatalf("translate must not change size")
	}
	if moved.X != 5 || moved.Y != -5 {
		t.Fatalf("unexpected position: %v", moved)
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(9, 9, 10, 10)
	c := NewRect(20, 20, 5, 5)
	if !a.Intersects(b) {
		t.Fatalf("expected overlapping rects to intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("expected disjoint rects not to intersect")
	}
}

func TestWithPositionOffsetStaysInsideRoot(t *testing.T) {
	// A leaf whose position is root's origin moved by a small offset
	// must have that position inside root.
	root := NewRect(0, 0, 200, 200)
	offset := Point{10, 10}
	leaf := root.WithPosition(root.Position().Add(offset))
	if !root.Contains(leaf.Position()) {
		t.Fatalf("leaf %v must be contained in root %v", leaf, root)
	}
}
