package aspen

const defaultCommandCap = 1024

// Scene is the top-level object that owns the node tree, the audio command
// queue, and the draw command buffers. One scene is presented on a GameLoop
// at a time; the loop drives update, the host pulls commands.
type Scene struct {
	root  *Node
	audio *AudioSystem
	debug bool

	// Paused suspends all fixed updates while this scene is presented.
	Paused bool

	// OnUpdate runs once per fixed update before per-node callbacks.
	OnUpdate func(s *Scene, dt float64)

	// Command buffers (reused across frames).
	commands []DrawCommand
	sortBuf  []DrawCommand

	input FrameInput
	time  float64
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:     NewContainer("root"),
		audio:    NewAudioSystem(),
		commands: make([]DrawCommand, 0, defaultCommandCap),
		sortBuf:  make([]DrawCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Audio returns the scene's audio command queue.
func (s *Scene) Audio() *AudioSystem {
	return s.audio
}

// Input returns the input view for the current fixed update: the host
// snapshot plus pointer edges. Valid inside OnUpdate callbacks.
func (s *Scene) Input() FrameInput {
	return s.input
}

// Time returns cumulative simulated time for this scene in seconds.
func (s *Scene) Time() float64 {
	return s.time
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame command stats are logged after each generation.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	setDebugLogging(enabled)
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// setInput stores the frame input ahead of a fixed update.
func (s *Scene) setInput(in FrameInput) {
	s.input = in
}

// update advances the scene by exactly dt seconds (one fixed step):
// integrate bodies, run user logic, apply constraints, refresh warp
// meshes, then compose world transforms for the whole tree. Runs to
// completion before the next step begins; there are no suspension points.
func (s *Scene) update(dt float64) {
	s.time += dt

	forEachNode(s.root, func(n *Node) {
		integrateBody(n, dt)
	})

	if s.OnUpdate != nil {
		s.OnUpdate(s, dt)
	}
	forEachNode(s.root, func(n *Node) {
		if n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
	})

	forEachNode(s.root, applyConstraints)

	forEachNode(s.root, func(n *Node) {
		refreshWarpMesh(n)
	})

	updateWorldTransform(s.root, Vec2{}, 0, Vec2{1, 1}, 1.0, false)
}

// forEachNode visits n and all descendants depth-first in child-insertion
// order. Callbacks that reparent or dispose nodes mid-walk see the tree as
// it was when their subtree was entered.
func forEachNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		forEachNode(child, fn)
	}
}
