package aspen

// DrawCommand is a single draw instruction emitted during scene traversal.
// It is a plain value with no identity: produced fresh each frame, fully
// resolved to world space, and safe to hand across a trust or runtime
// boundary. Consumers must not mutate it or retain it beyond the frame
// (the mesh slices alias per-node buffers that are rewritten next update).
type DrawCommand struct {
	// Resolved world transform.
	Position Vec2
	Rotation float64 // radians
	Scale    Vec2

	// Static appearance.
	Size       Size
	Anchor     Vec2
	TextureID  uint32 // 0 = untextured / solid color
	UVRect     Rect
	Filter     FilterMode
	Mipmap     bool
	Color      Color
	Alpha      float64 // combined world alpha
	ZPosition  float64
	BlendMode  BlendMode
	CenterRect Rect

	// Warp mesh payload; nil/empty for plain quads.
	MeshVertices []Vertex
	MeshIndices  []uint16

	treeOrder int // assigned during traversal for stable sort
}

// GenerateDrawCommands traverses the scene from the root, composing world
// transforms and alpha top-down, and returns one command per renderable
// node. Emission is depth-first in child-insertion order; the returned
// slice is stably sorted by ZPosition, ties preserving traversal order.
//
// The returned slice is a read-only snapshot reused on the next call:
// consume it before generating again.
func (s *Scene) GenerateDrawCommands() []DrawCommand {
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, Vec2{}, 0, Vec2{1, 1}, 1.0, false, &treeOrder)
	s.mergeSort()
	if s.debug {
		debugLogFrame(len(s.commands))
	}
	return s.commands
}

// traverse walks the node tree depth-first, updating world transforms and
// emitting draw commands for visible, renderable nodes. Hidden nodes prune
// their whole subtree; zero-alpha nodes emit nothing but still traverse
// (their descendants inherit the zero and elide themselves).
func (s *Scene) traverse(n *Node, parentPos Vec2, parentRot float64, parentScale Vec2, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := Vec2{n.X, n.Y}.Mul(parentScale).Rotate(parentRot)
		n.worldPosition = parentPos.Add(local)
		n.worldRotation = parentRot + n.Rotation
		n.worldScale = parentScale.Mul(Vec2{n.ScaleX, n.ScaleY})
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.Type != NodeTypeContainer && n.worldAlpha > 0 {
		*treeOrder++
		cmd := DrawCommand{
			Position:   n.worldPosition,
			Rotation:   n.worldRotation,
			Scale:      n.worldScale,
			Size:       n.Size,
			Anchor:     n.Anchor,
			TextureID:  n.TextureID,
			UVRect:     n.UVRect,
			Filter:     n.Filter,
			Mipmap:     n.Mipmap,
			Color:      n.Color,
			Alpha:      n.worldAlpha,
			ZPosition:  n.ZPosition,
			BlendMode:  n.BlendMode,
			CenterRect: n.CenterRect,
			treeOrder:  *treeOrder,
		}
		if n.Type == NodeTypeWarped && n.Warp != nil {
			refreshWarpMesh(n)
			cmd.MeshVertices = n.warpVerts
			cmd.MeshIndices = n.warpInds
		}
		s.commands = append(s.commands, cmd)
	}

	for _, child := range n.children {
		s.traverse(child, n.worldPosition, n.worldRotation, n.worldScale, n.worldAlpha, recompute, treeOrder)
	}
}

// commandLessOrEqual returns true if a should sort before or at the same
// position as b. Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b *DrawCommand) bool {
	if a.ZPosition != b.ZPosition {
		return a.ZPosition < b.ZPosition
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches its
// high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]DrawCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := lo + width
			if mid > n {
				mid = n
			}
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []DrawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
