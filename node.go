package aspen

// nodeIDCounter is a plain counter (no atomic — aspen is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used
// for all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians

	// Anchor is the normalized (0-1) point of the node's base size that
	// the position refers to. (0.5, 0.5) centers the node on its position.
	Anchor Vec2

	// Computed (unexported, refreshed during the world pass)
	worldPosition  Vec2
	worldRotation  float64
	worldScale     Vec2
	worldAlpha     float64
	transformDirty bool

	// Visibility & ordering
	Alpha      float64
	Visible    bool
	Renderable bool
	ZPosition  float64

	// Appearance (consumed verbatim by DrawCommand emission)
	Size       Size
	TextureID  uint32 // 0 = untextured / solid color
	UVRect     Rect   // normalized texture sub-rectangle
	Filter     FilterMode
	Mipmap     bool
	Color      Color
	BlendMode  BlendMode
	CenterRect Rect // nine-slice stretch region (zero = whole quad)

	// Simulation attachments
	Body        *Body
	Constraints []Constraint

	// Warp deformation (NodeTypeWarped)
	Warp         *WarpGrid
	Subdivisions int

	// Shader attributes passed through to the renderer, nil when unused.
	Attributes *AttributeTable

	// OnUpdate, when set, runs once per fixed update with the timestep in
	// seconds, before constraints are applied.
	OnUpdate func(dt float64)

	// Metadata
	UserData any

	// Internal
	disposed bool

	// Cached warp tessellation, rebuilt when warpDirty.
	warpVerts []Vertex
	warpInds  []uint16
	warpDirty bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Anchor = Vec2{0.5, 0.5}
	n.UVRect = Rect{0, 0, 1, 1}
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	n.Renderable = false
	return n
}

// NewSprite creates a sprite node of the given base size. A TextureID of 0
// renders as a solid quad tinted by Color.
func NewSprite(name string, textureID uint32, size Size) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, TextureID: textureID, Size: size}
	nodeDefaults(n)
	return n
}

// NewWarpedSprite creates a sprite deformed by the given warp grid,
// tessellated at the given subdivision level.
func NewWarpedSprite(name string, textureID uint32, size Size, warp *WarpGrid, subdivisions int) *Node {
	n := &Node{Name: name, Type: NodeTypeWarped, TextureID: textureID, Size: size}
	nodeDefaults(n)
	n.SetWarp(warp, subdivisions)
	return n
}

// SetWarp attaches (or detaches, when warp is nil) a warp grid and marks the
// cached mesh for re-tessellation. subdivisions controls how many mesh cells
// each grid cell is split into; values below 1 are treated as 1.
func (n *Node) SetWarp(warp *WarpGrid, subdivisions int) {
	if subdivisions < 1 {
		subdivisions = 1
	}
	n.Warp = warp
	n.Subdivisions = subdivisions
	n.warpDirty = true
}

// InvalidateWarp marks the warp mesh for re-tessellation on the next update.
// Call this after mutating the warp grid's destination positions directly.
func (n *Node) InvalidateWarp() {
	n.warpDirty = true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("aspen: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("aspen: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild. Moving a node
// within its own parent is allowed; the index refers to the child list
// after the node has been taken out, so an index of NumChildren-1 (or the
// pre-move NumChildren) appends.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("aspen: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("aspen: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("aspen: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		// A same-parent move just shrank the list; the bounds check above
		// ran against the pre-removal length.
		if index > len(n.children) {
			index = len(n.children)
		}
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("aspen: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("aspen: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings. Sibling order
// is the z tie-break, so this reorders equal-ZPosition draw output.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("aspen: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("aspen: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Constraints held by other
// nodes that target this one become inert.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Body = nil
	n.Constraints = nil
	n.Warp = nil
	n.Attributes = nil
	n.warpVerts = nil
	n.warpInds = nil
	n.OnUpdate = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
