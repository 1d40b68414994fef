package aspen

// World transforms are composed position/rotation/scale rather than free
// affine matrices: draw commands carry the three components separately, so
// the composition must stay closed over PRS. Skew introduced by rotating
// under non-uniform parent scale is therefore not representable; the parent
// scale is applied to the child's local offset before rotation, which is the
// standard retained-mode 2D behavior.

// updateWorldTransform recomputes a node's world position, rotation, scale,
// and alpha, then recurses into its children. parentRecomputed forces
// recomputation of this node even if it is not dirty.
func updateWorldTransform(n *Node, parentPos Vec2, parentRot float64, parentScale Vec2, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := Vec2{n.X, n.Y}.Mul(parentScale).Rotate(parentRot)
		n.worldPosition = parentPos.Add(local)
		n.worldRotation = parentRot + n.Rotation
		n.worldScale = parentScale.Mul(Vec2{n.ScaleX, n.ScaleY})
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldPosition, n.worldRotation, n.worldScale, n.worldAlpha, recompute)
	}
}

// worldPositionOf computes a node's current world position directly from its
// ancestry, ignoring the cached value. Constraints use this mid-update so
// that each constraint sees the mutations left by the ones before it.
func worldPositionOf(n *Node) Vec2 {
	if n.Parent == nil {
		return Vec2{n.X, n.Y}
	}
	parentPos, parentRot, parentScale := worldFrameOf(n.Parent)
	return parentPos.Add(Vec2{n.X, n.Y}.Mul(parentScale).Rotate(parentRot))
}

// worldFrameOf computes a node's world position, rotation, and scale from its
// ancestry without touching the cache.
func worldFrameOf(n *Node) (Vec2, float64, Vec2) {
	if n.Parent == nil {
		return Vec2{n.X, n.Y}, n.Rotation, Vec2{n.ScaleX, n.ScaleY}
	}
	parentPos, parentRot, parentScale := worldFrameOf(n.Parent)
	pos := parentPos.Add(Vec2{n.X, n.Y}.Mul(parentScale).Rotate(parentRot))
	return pos, parentRot + n.Rotation, parentScale.Mul(Vec2{n.ScaleX, n.ScaleY})
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetAnchor sets the node's normalized anchor point and marks it dirty.
func (n *Node) SetAnchor(ax, ay float64) {
	n.Anchor = Vec2{ax, ay}
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// SetZPosition sets the node's z-position. Draw order changes take effect on
// the next command generation; no transform recomputation is needed.
func (n *Node) SetZPosition(z float64) {
	n.ZPosition = z
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next world pass. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Computed accessors ---

// WorldPosition returns the node's cached world position. Valid after the
// most recent scene update or command generation.
func (n *Node) WorldPosition() Vec2 {
	return n.worldPosition
}

// WorldRotation returns the node's cached world rotation in radians.
func (n *Node) WorldRotation() float64 {
	return n.worldRotation
}

// WorldScale returns the node's cached world scale.
func (n *Node) WorldScale() Vec2 {
	return n.worldScale
}

// WorldAlpha returns the node's cached world alpha (product of ancestor
// alphas and its own).
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// --- Coordinate conversion ---

// LocalToWorld converts a local-space point to world-space using the cached
// world transform.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	p := Vec2{lx, ly}.Mul(n.worldScale).Rotate(n.worldRotation).Add(n.worldPosition)
	return p.X, p.Y
}

// WorldToLocal converts a world-space point to this node's local coordinate
// space. Axes with near-zero world scale map to zero (inverse undefined).
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	p := Vec2{wx, wy}.Sub(n.worldPosition).Rotate(-n.worldRotation)
	if n.worldScale.X > 1e-12 || n.worldScale.X < -1e-12 {
		p.X /= n.worldScale.X
	} else {
		p.X = 0
	}
	if n.worldScale.Y > 1e-12 || n.worldScale.Y < -1e-12 {
		p.Y /= n.worldScale.Y
	} else {
		p.Y = 0
	}
	return p.X, p.Y
}
