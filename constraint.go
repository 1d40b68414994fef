package aspen

import "math"

// ConstraintKind identifies a constraint variant. The set is closed and
// exhaustively matched at application time.
type ConstraintKind uint8

const (
	ConstraintPositionX     ConstraintKind = iota // clamp local X into Range
	ConstraintPositionY                           // clamp local Y into Range
	ConstraintPositionRect                        // clamp local position into Rect
	ConstraintDistance                            // keep world distance to Target within Range
	ConstraintRotationRange                       // clamp local rotation into Range (radians)
	ConstraintOrientToNode                        // face Target's world position
	ConstraintOrientToPoint                       // face a fixed world-space Point
)

// Constraint limits a node's local transform after user logic has run.
// Constraints on a node apply in list order; each sees the mutations left by
// the previous one. Target is a weak reference: a nil or disposed target
// makes the constraint inert for the frame, never an error.
type Constraint struct {
	Kind    ConstraintKind
	Enabled bool

	Range  Range   // axis / rotation / distance bounds
	Rect   Rect    // ConstraintPositionRect bounds
	Target *Node   // weak reference (ConstraintDistance, ConstraintOrientToNode)
	Point  Vec2    // ConstraintOrientToPoint target
	Offset float64 // angular offset added to orient-to bearings (radians)
}

// PositionXConstraint clamps the node's local X into [lower, upper].
func PositionXConstraint(lower, upper float64) Constraint {
	return Constraint{Kind: ConstraintPositionX, Enabled: true, Range: Range{lower, upper}}
}

// PositionYConstraint clamps the node's local Y into [lower, upper].
func PositionYConstraint(lower, upper float64) Constraint {
	return Constraint{Kind: ConstraintPositionY, Enabled: true, Range: Range{lower, upper}}
}

// PositionRectConstraint clamps the node's local position into rect.
func PositionRectConstraint(rect Rect) Constraint {
	return Constraint{Kind: ConstraintPositionRect, Enabled: true, Rect: rect}
}

// DistanceConstraint keeps the node's world-space distance to target within
// [lower, upper]. The target reference is weak.
func DistanceConstraint(target *Node, lower, upper float64) Constraint {
	return Constraint{Kind: ConstraintDistance, Enabled: true, Target: target, Range: Range{lower, upper}}
}

// RotationConstraint clamps the node's local rotation into [lower, upper]
// radians.
func RotationConstraint(lower, upper float64) Constraint {
	return Constraint{Kind: ConstraintRotationRange, Enabled: true, Range: Range{lower, upper}}
}

// OrientToNodeConstraint rotates the node to face target's world position,
// plus a fixed angular offset. The target reference is weak.
func OrientToNodeConstraint(target *Node, offset float64) Constraint {
	return Constraint{Kind: ConstraintOrientToNode, Enabled: true, Target: target, Offset: offset}
}

// OrientToPointConstraint rotates the node to face a fixed world-space point,
// plus a fixed angular offset.
func OrientToPointConstraint(point Vec2, offset float64) Constraint {
	return Constraint{Kind: ConstraintOrientToPoint, Enabled: true, Point: point, Offset: offset}
}

// AddConstraint appends a constraint to the node's list.
func (n *Node) AddConstraint(c Constraint) {
	n.Constraints = append(n.Constraints, c)
}

// applyConstraints runs the node's constraint list in order, mutating the
// local transform in place. No convergence pass: later constraints see
// earlier results, and that is the whole contract.
func applyConstraints(n *Node) {
	if len(n.Constraints) == 0 {
		return
	}
	for i := range n.Constraints {
		applyConstraint(n, &n.Constraints[i])
	}
	n.transformDirty = true
}

func applyConstraint(n *Node, c *Constraint) {
	if !c.Enabled {
		return
	}

	switch c.Kind {
	case ConstraintPositionX:
		n.X = c.Range.Clamp(n.X)

	case ConstraintPositionY:
		n.Y = c.Range.Clamp(n.Y)

	case ConstraintPositionRect:
		n.X, n.Y = c.Rect.ClampPoint(n.X, n.Y)

	case ConstraintRotationRange:
		n.Rotation = c.Range.Clamp(n.Rotation)

	case ConstraintDistance:
		if !targetAlive(c.Target) {
			return
		}
		// World space, so cross-hierarchy constraints hold regardless of
		// differing ancestor transforms.
		pos := worldPositionOf(n)
		targetPos := worldPositionOf(c.Target)
		offset := pos.Sub(targetPos)
		dist := offset.Length()
		if dist == 0 {
			return // direction undefined
		}
		clamped := c.Range.Clamp(dist)
		if clamped == dist {
			return
		}
		corrected := targetPos.Add(offset.Scale(clamped / dist))
		delta := corrected.Sub(pos)
		// The world-space delta is added to the local position directly;
		// see the orient-to note below for the same local/world caveat.
		n.X += delta.X
		n.Y += delta.Y

	case ConstraintOrientToNode:
		if !targetAlive(c.Target) {
			return
		}
		orientToward(n, worldPositionOf(c.Target), c.Offset)

	case ConstraintOrientToPoint:
		orientToward(n, c.Point, c.Offset)
	}
}

// orientToward overwrites the node's local rotation with the world-space
// bearing toward target plus offset. The bearing intentionally ignores any
// ancestor rotation contribution: under a rotated parent the node's world
// facing is skewed by that rotation. Long-standing documented behavior;
// TestOrientToNodeIgnoresAncestorRotation pins it.
func orientToward(n *Node, target Vec2, offset float64) {
	pos := worldPositionOf(n)
	n.Rotation = math.Atan2(target.Y-pos.Y, target.X-pos.X) + offset
}

// targetAlive reports whether a weak constraint target can be used this
// frame.
func targetAlive(t *Node) bool {
	return t != nil && !t.IsDisposed()
}
