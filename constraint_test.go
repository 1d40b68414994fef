package aspen

import (
	"math"
	"testing"
)

// --- Clamp constraints ---

func TestPositionXConstraintClamps(t *testing.T) {
	n := NewContainer("n")
	n.AddConstraint(PositionXConstraint(-10, 10))

	n.X = 25
	applyConstraints(n)
	if n.X != 10 {
		t.Errorf("X = %v, want 10", n.X)
	}

	n.X = -25
	applyConstraints(n)
	if n.X != -10 {
		t.Errorf("X = %v, want -10", n.X)
	}
}

func TestPositionYConstraintClamps(t *testing.T) {
	n := NewContainer("n")
	n.AddConstraint(PositionYConstraint(0, 5))
	n.Y = 9
	applyConstraints(n)
	if n.Y != 5 {
		t.Errorf("Y = %v, want 5", n.Y)
	}
}

func TestPositionRectConstraintClamps(t *testing.T) {
	n := NewContainer("n")
	n.AddConstraint(PositionRectConstraint(Rect{0, 0, 100, 50}))
	n.SetPosition(150, -20)
	applyConstraints(n)
	if n.X != 100 || n.Y != 0 {
		t.Errorf("position = (%v, %v), want (100, 0)", n.X, n.Y)
	}
}

func TestRotationConstraintClamps(t *testing.T) {
	n := NewContainer("n")
	n.AddConstraint(RotationConstraint(-math.Pi/4, math.Pi/4))
	n.Rotation = math.Pi
	applyConstraints(n)
	if !approxEqual(n.Rotation, math.Pi/4) {
		t.Errorf("Rotation = %v, want pi/4", n.Rotation)
	}
}

func TestConstraintIdempotent(t *testing.T) {
	// A satisfied constraint must not move the node.
	n := NewContainer("n")
	n.AddConstraint(PositionXConstraint(-10, 10))
	n.AddConstraint(RotationConstraint(-1, 1))
	n.X = 3
	n.Rotation = 0.5

	applyConstraints(n)
	applyConstraints(n)
	if n.X != 3 || n.Rotation != 0.5 {
		t.Errorf("satisfied constraints moved the node: X=%v Rotation=%v", n.X, n.Rotation)
	}
}

func TestDisabledConstraintIsInert(t *testing.T) {
	n := NewContainer("n")
	c := PositionXConstraint(0, 1)
	c.Enabled = false
	n.AddConstraint(c)
	n.X = 100
	applyConstraints(n)
	if n.X != 100 {
		t.Errorf("disabled constraint moved the node: X=%v", n.X)
	}
}

// --- Ordering ---

func TestConstraintsApplyInListOrder(t *testing.T) {
	// The second constraint sees the first one's result: clamp into [0,10]
	// then into [20,30] leaves X at 20, not at the original 50.
	n := NewContainer("n")
	n.AddConstraint(PositionXConstraint(0, 10))
	n.AddConstraint(PositionXConstraint(20, 30))
	n.X = 50
	applyConstraints(n)
	if n.X != 20 {
		t.Errorf("X = %v, want 20 (second constraint sees first's output)", n.X)
	}
}

// --- Distance ---

func TestDistanceConstraintPullsIn(t *testing.T) {
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	target.SetPosition(0, 0)
	n.SetPosition(100, 0)
	n.AddConstraint(DistanceConstraint(target, 0, 30))

	applyConstraints(n)
	if !approxEqual(n.X, 30) || !approxEqual(n.Y, 0) {
		t.Errorf("position = (%v, %v), want (30, 0)", n.X, n.Y)
	}
}

func TestDistanceConstraintPushesOut(t *testing.T) {
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	n.SetPosition(5, 0)
	n.AddConstraint(DistanceConstraint(target, 20, 100))

	applyConstraints(n)
	if !approxEqual(n.X, 20) {
		t.Errorf("X = %v, want 20", n.X)
	}
}

func TestDistanceConstraintInRangeNoOp(t *testing.T) {
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	n.SetPosition(50, 0)
	n.AddConstraint(DistanceConstraint(target, 10, 100))

	applyConstraints(n)
	if n.X != 50 || n.Y != 0 {
		t.Errorf("in-range node moved to (%v, %v)", n.X, n.Y)
	}
}

func TestDistanceConstraintCoincidentNoOp(t *testing.T) {
	// Zero distance means no defined direction; the node must not move
	// and must not produce NaN.
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	n.AddConstraint(DistanceConstraint(target, 10, 20))

	applyConstraints(n)
	if n.X != 0 || n.Y != 0 {
		t.Errorf("coincident node moved to (%v, %v)", n.X, n.Y)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) {
		t.Error("coincident target produced NaN")
	}
}

func TestDistanceConstraintCrossHierarchy(t *testing.T) {
	// Target lives under a shifted parent; the constraint works in world
	// space so the offset parent must be accounted for.
	root := NewContainer("root")
	arm := NewContainer("arm")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(arm)
	arm.AddChild(target)
	root.AddChild(n)
	arm.SetPosition(100, 0)
	n.SetPosition(0, 0)
	n.AddConstraint(DistanceConstraint(target, 40, 60))

	applyConstraints(n)
	// World target is (100, 0); the node is 100 away, clamps to 60 from it.
	if !approxEqual(n.X, 40) || !approxEqual(n.Y, 0) {
		t.Errorf("position = (%v, %v), want (40, 0)", n.X, n.Y)
	}
}

// --- Weak targets ---

func TestConstraintWithNilTargetIsInert(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(100, 0)
	n.AddConstraint(DistanceConstraint(nil, 0, 10))
	n.AddConstraint(OrientToNodeConstraint(nil, 0))

	applyConstraints(n)
	if n.X != 100 || n.Rotation != 0 {
		t.Error("nil-target constraints should be inert")
	}
}

func TestConstraintWithDisposedTargetIsInert(t *testing.T) {
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	n.SetPosition(100, 0)
	n.AddConstraint(DistanceConstraint(target, 0, 10))

	target.Dispose()
	applyConstraints(n)
	if n.X != 100 {
		t.Errorf("disposed-target constraint moved the node: X=%v", n.X)
	}
}

// --- Orient-to ---

func TestOrientToPoint(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(0, 0)
	n.AddConstraint(OrientToPointConstraint(Vec2{0, 10}, 0))

	applyConstraints(n)
	if !approxEqual(n.Rotation, math.Pi/2) {
		t.Errorf("Rotation = %v, want pi/2", n.Rotation)
	}
}

func TestOrientToPointWithOffset(t *testing.T) {
	n := NewContainer("n")
	n.AddConstraint(OrientToPointConstraint(Vec2{10, 0}, math.Pi/2))

	applyConstraints(n)
	if !approxEqual(n.Rotation, math.Pi/2) {
		t.Errorf("Rotation = %v, want pi/2", n.Rotation)
	}
}

func TestOrientToNodeTracksTarget(t *testing.T) {
	root := NewContainer("root")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(target)
	root.AddChild(n)
	target.SetPosition(10, 10)
	n.AddConstraint(OrientToNodeConstraint(target, 0))

	applyConstraints(n)
	if !approxEqual(n.Rotation, math.Pi/4) {
		t.Errorf("Rotation = %v, want pi/4", n.Rotation)
	}

	target.SetPosition(-10, 0)
	applyConstraints(n)
	if !approxEqual(n.Rotation, math.Pi) {
		t.Errorf("Rotation = %v, want pi after target move", n.Rotation)
	}
}

func TestOrientToNodeIgnoresAncestorRotation(t *testing.T) {
	// The local rotation is overwritten with the world bearing; a rotated
	// parent does not get compensated for. Pinned behavior.
	root := NewContainer("root")
	parent := NewContainer("parent")
	target := NewContainer("target")
	n := NewContainer("n")
	root.AddChild(parent)
	parent.AddChild(n)
	root.AddChild(target)
	parent.SetRotation(math.Pi / 2)
	target.SetPosition(10, 0)
	n.AddConstraint(OrientToNodeConstraint(target, 0))

	applyConstraints(n)
	// Node world position is (0,0); bearing to (10,0) is 0 regardless of
	// the parent's rotation.
	if !approxEqual(n.Rotation, 0) {
		t.Errorf("Rotation = %v, want 0 (ancestor rotation not compensated)", n.Rotation)
	}
}
