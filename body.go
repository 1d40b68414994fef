package aspen

// Body is a minimal kinematic attachment: velocities integrated by explicit
// Euler at the start of each fixed update. There is no collision or contact
// resolution here — constraints and user logic are the only forces.
type Body struct {
	Velocity        Vec2
	AngularVelocity float64 // radians per second

	// Damping factors are fractional velocity loss per second (0 = none).
	LinearDamping  float64
	AngularDamping float64
}

// NewBody creates a body with the given initial linear velocity.
func NewBody(vx, vy float64) *Body {
	return &Body{Velocity: Vec2{vx, vy}}
}

// integrateBody advances the node by its body's velocities over dt seconds.
// With a fixed dt this is exactly reproducible run to run.
func integrateBody(n *Node, dt float64) {
	b := n.Body
	if b == nil {
		return
	}
	n.X += b.Velocity.X * dt
	n.Y += b.Velocity.Y * dt
	n.Rotation += b.AngularVelocity * dt

	if b.LinearDamping > 0 {
		f := 1 - b.LinearDamping*dt
		if f < 0 {
			f = 0
		}
		b.Velocity = b.Velocity.Scale(f)
	}
	if b.AngularDamping > 0 {
		f := 1 - b.AngularDamping*dt
		if f < 0 {
			f = 0
		}
		b.AngularVelocity *= f
	}
	n.transformDirty = true
}
