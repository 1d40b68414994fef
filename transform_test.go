package aspen

import (
	"math"
	"testing"
)

func updateTree(root *Node) {
	updateWorldTransform(root, Vec2{}, 0, Vec2{1, 1}, 1.0, false)
}

// --- World composition ---

func TestWorldPositionTranslation(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetPosition(10, 20)
	c.SetPosition(3, 4)
	updateTree(p)

	assertVec2(t, c.WorldPosition(), Vec2{13, 24}, "child world position")
}

func TestWorldRotationIsSum(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetRotation(math.Pi / 4)
	c.SetRotation(math.Pi / 4)
	updateTree(p)

	if !approxEqual(c.WorldRotation(), math.Pi/2) {
		t.Errorf("WorldRotation = %v, want pi/2", c.WorldRotation())
	}
}

func TestWorldScaleIsComponentwiseProduct(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetScale(2, 3)
	c.SetScale(4, 5)
	updateTree(p)

	assertVec2(t, c.WorldScale(), Vec2{8, 15}, "world scale")
}

func TestWorldAlphaIsProduct(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewContainer("gc")
	p.AddChild(c)
	c.AddChild(gc)
	p.SetAlpha(0.5)
	c.SetAlpha(0.5)
	gc.SetAlpha(0.8)
	updateTree(p)

	if !approxEqual(gc.WorldAlpha(), 0.2) {
		t.Errorf("WorldAlpha = %v, want 0.2", gc.WorldAlpha())
	}
}

func TestParentScaleAppliesBeforeRotation(t *testing.T) {
	// Child offset (10, 0) under parent scaled 2x and rotated 90deg lands
	// at parent + (0, 20): scale first, then rotate.
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetPosition(100, 100)
	p.SetScale(2, 2)
	p.SetRotation(math.Pi / 2)
	c.SetPosition(10, 0)
	updateTree(p)

	assertVec2(t, c.WorldPosition(), Vec2{100, 120}, "child world position")
}

// --- Dirty propagation ---

func TestParentMoveRecomputesCleanChild(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	c.SetPosition(5, 0)
	updateTree(p)

	// Child is clean now; moving only the parent must still refresh it.
	p.SetPosition(50, 0)
	updateTree(p)

	assertVec2(t, c.WorldPosition(), Vec2{55, 0}, "child after parent move")
}

func TestReparentMarksSubtreeDirty(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.SetPosition(10, 0)
	b.SetPosition(100, 0)
	a.AddChild(c)
	updateTree(a)
	updateTree(b)

	b.AddChild(c)
	updateTree(b)

	assertVec2(t, c.WorldPosition(), Vec2{100, 0}, "child after reparent")
}

// --- Coordinate conversion ---

func TestLocalToWorldRoundTrip(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetPosition(10, 20)
	p.SetRotation(0.7)
	p.SetScale(2, 2)
	c.SetPosition(5, -3)
	updateTree(p)

	wx, wy := c.LocalToWorld(4, 9)
	lx, ly := c.WorldToLocal(wx, wy)
	if !approxEqual(lx, 4) || !approxEqual(ly, 9) {
		t.Errorf("round trip = (%v, %v), want (4, 9)", lx, ly)
	}
}

func TestWorldToLocalDegenerateScale(t *testing.T) {
	n := NewContainer("n")
	n.SetScale(0, 1)
	updateTree(n)

	lx, ly := n.WorldToLocal(5, 7)
	if lx != 0 {
		t.Errorf("collapsed axis should map to 0, got %v", lx)
	}
	if !approxEqual(ly, 7) {
		t.Errorf("intact axis = %v, want 7", ly)
	}
}

// --- worldPositionOf (cache-free path) ---

func TestWorldPositionOfIgnoresStaleCache(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetPosition(10, 0)
	c.SetPosition(5, 0)
	updateTree(p)

	// Mutate without re-running the world pass; the ancestry walk must see
	// the new values while the cache still holds the old ones.
	p.X = 20
	got := worldPositionOf(c)
	assertVec2(t, got, Vec2{25, 0}, "worldPositionOf")
	assertVec2(t, c.WorldPosition(), Vec2{15, 0}, "stale cache untouched")
}
