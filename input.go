package aspen

// InputState is the host-provided input snapshot for one frame: digital
// movement/action flags plus pointer position and button state. The host
// only reports current state; press/release edges are derived by the game
// loop.
type InputState struct {
	Left, Right, Up, Down bool
	Action, Action2       bool
	Pause                 bool

	PointerX, PointerY float64
	PointerDown        bool
}

// FrameInput is the input view the scene sees during a fixed update: the
// raw snapshot plus pointer edges computed against the previous tick.
type FrameInput struct {
	InputState

	PointerPressed  bool // pointer went down this tick
	PointerReleased bool // pointer went up this tick
	PointerHeld     bool // pointer was down last tick and still is
}

// clearEdges drops the transient edge flags. The loop calls this after the
// first fixed update of a multi-step tick so edges fire once per tick, not
// once per catch-up step.
func (f *FrameInput) clearEdges() {
	f.PointerPressed = false
	f.PointerReleased = false
}

// deriveFrameInput computes pointer edges from the current snapshot and the
// previous tick's pointer-down state.
func deriveFrameInput(in InputState, prevPointerDown bool) FrameInput {
	return FrameInput{
		InputState:      in,
		PointerPressed:  in.PointerDown && !prevPointerDown,
		PointerReleased: !in.PointerDown && prevPointerDown,
		PointerHeld:     in.PointerDown && prevPointerDown,
	}
}
