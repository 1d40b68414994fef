package aspen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenRotation, TweenZPosition) and call Update(dt) from your
// update logic. The group auto-applies values and marks the node dirty.
// If the target node is disposed, the group stops immediately.
//
// There is no global animation manager — users call Update themselves,
// which keeps tween advancement inside the fixed timestep and therefore
// deterministic.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty. If the target node has been disposed,
// Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing
// function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY
// to the given target values over the specified duration.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target
// value over the specified duration.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the
// target value over the specified duration.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation), float32(to), duration, fn)
	g.fields[0] = &node.Rotation
	return g
}

// TweenZPosition creates a TweenGroup that animates node.ZPosition to the
// target value over the specified duration.
func TweenZPosition(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.ZPosition), float32(to), duration, fn)
	g.fields[0] = &node.ZPosition
	return g
}

// WarpTween blends a node's warp grid from one shape to another over a
// duration, driven by a single eased progress tween. Both grids must share
// the node's grid shape; mismatched shapes make the tween finish
// immediately without touching the node.
type WarpTween struct {
	progress *gween.Tween
	from     *WarpGrid
	to       *WarpGrid
	target   *Node
	Done     bool
}

// TweenWarp creates a WarpTween animating node's warp destinations from
// from's to to's over the given duration.
func TweenWarp(node *Node, from, to *WarpGrid, duration float32, fn ease.TweenFunc) *WarpTween {
	return &WarpTween{
		progress: gween.New(0, 1, duration, fn),
		from:     from,
		to:       to,
		target:   node,
	}
}

// Update advances the blend by dt seconds, writing the interpolated
// destinations into the target's warp grid and invalidating its mesh.
func (w *WarpTween) Update(dt float64) {
	if w.Done {
		return
	}
	if w.target == nil || w.target.IsDisposed() || w.target.Warp == nil {
		w.Done = true
		return
	}

	val, finished := w.progress.Update(float32(dt))
	blended := InterpolateWarp(w.from, w.to, float64(val))
	if blended == nil {
		w.Done = true
		return
	}
	w.target.Warp.ReplaceDestinations(blended.dest)
	w.target.InvalidateWarp()
	w.Done = finished
}
