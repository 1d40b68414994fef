package aspen

// Default loop parameters.
const (
	DefaultFixedTimestep = 1.0 / 60.0
	DefaultMaxFrameTime  = 0.25 // spiral-of-death guard
)

// GameLoop drives a scene at a fixed simulation timestep regardless of the
// host's real frame rate. The host calls Tick once per frame with the real
// elapsed seconds; the loop drains the accumulated time in fixed-size
// steps, so simulation state depends only on the input sequence and the
// total accumulated time — never on how it was sliced into frames.
//
// Exactly one scene is presented at a time. All methods are plain blocking
// calls on the simulation thread; there is no internal concurrency.
type GameLoop struct {
	FixedTimestep float64
	MaxFrameTime  float64

	scene           *Scene
	accumulator     float64
	totalTime       float64
	prevPointerDown bool
	updatesThisTick int
}

// NewGameLoop creates a loop with the default 60 Hz timestep and 0.25 s
// frame-time clamp.
func NewGameLoop() *GameLoop {
	return &GameLoop{
		FixedTimestep: DefaultFixedTimestep,
		MaxFrameTime:  DefaultMaxFrameTime,
	}
}

// Present makes scene the active scene. The accumulator is reset so the new
// scene does not inherit pending catch-up time; cumulative time is kept.
func (l *GameLoop) Present(scene *Scene) {
	l.scene = scene
	l.accumulator = 0
}

// RemoveScene detaches the current scene. Subsequent ticks are no-ops.
func (l *GameLoop) RemoveScene() {
	l.scene = nil
}

// Scene returns the presented scene, or nil.
func (l *GameLoop) Scene() *Scene {
	return l.scene
}

// Reset zeroes the accumulator, cumulative time, and input history.
func (l *GameLoop) Reset() {
	l.accumulator = 0
	l.totalTime = 0
	l.prevPointerDown = false
	l.updatesThisTick = 0
}

// Tick advances the simulation by realDelta seconds of host time. It runs
// zero or more fixed updates depending on the accumulator, and records how
// many in UpdatesThisTick. A missing or paused scene is a no-op, not a
// fault.
func (l *GameLoop) Tick(realDelta float64, in InputState) {
	if l.scene == nil || l.scene.Paused {
		l.updatesThisTick = 0
		return
	}

	frame := deriveFrameInput(in, l.prevPointerDown)
	l.prevPointerDown = in.PointerDown

	if realDelta < 0 {
		realDelta = 0
	}
	if realDelta > l.MaxFrameTime {
		realDelta = l.MaxFrameTime
	}
	l.accumulator += realDelta
	l.updatesThisTick = 0

	l.scene.audio.BeginFrame()

	for l.accumulator >= l.FixedTimestep {
		l.scene.setInput(frame)
		l.scene.update(l.FixedTimestep)
		l.accumulator -= l.FixedTimestep
		l.totalTime += l.FixedTimestep
		l.updatesThisTick++
		// Edges fire on the first catch-up step only.
		frame.clearEdges()
	}
}

// Step performs exactly one fixed update, bypassing the accumulator. Meant
// for deterministic replay and lockstep drivers. It ignores the pause flag
// so a paused scene can be single-stepped; a missing scene is a no-op.
func (l *GameLoop) Step(in InputState) {
	if l.scene == nil {
		l.updatesThisTick = 0
		return
	}

	frame := deriveFrameInput(in, l.prevPointerDown)
	l.prevPointerDown = in.PointerDown

	l.scene.audio.BeginFrame()
	l.scene.setInput(frame)
	l.scene.update(l.FixedTimestep)
	l.totalTime += l.FixedTimestep
	l.updatesThisTick = 1
}

// GenerateDrawCommands produces the presented scene's draw command list;
// see [Scene.GenerateDrawCommands] for ordering and snapshot semantics.
// With no scene presented it returns nil.
func (l *GameLoop) GenerateDrawCommands() []DrawCommand {
	if l.scene == nil {
		return nil
	}
	return l.scene.GenerateDrawCommands()
}

// InterpolationAlpha returns accumulator / FixedTimestep in [0, 1): how far
// the unconsumed real time has progressed toward the next fixed step. Hosts
// blend render positions between the last and next simulation state with it.
func (l *GameLoop) InterpolationAlpha() float64 {
	return l.accumulator / l.FixedTimestep
}

// UpdatesThisTick returns the number of fixed updates the most recent Tick
// (or Step) performed.
func (l *GameLoop) UpdatesThisTick() int {
	return l.updatesThisTick
}

// TotalTime returns cumulative simulation time in seconds.
func (l *GameLoop) TotalTime() float64 {
	return l.totalTime
}

// UpdatesPerSecond returns the fixed update rate implied by the timestep.
func (l *GameLoop) UpdatesPerSecond() float64 {
	return 1.0 / l.FixedTimestep
}
