package aspen

// Color represents an RGBA tint with components in [0, 1]. Not premultiplied.
// Premultiplication, if any, is the consuming renderer's business.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// BlendMode selects a compositing operation for a draw command. The core
// never interprets these; the renderer maps them to its backend's blend
// states.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendBelow                     // destination-over (draw behind existing content)
	BlendNone                      // opaque copy (skip blending)
)

// FilterMode selects texture sampling for a draw command.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota // point sampling (crisp pixel art)
	FilterLinear                    // bilinear sampling
)

// NodeType distinguishes how a node contributes to the draw stream.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // emits a textured (or solid) quad
	NodeTypeWarped                    // sprite deformed by a warp grid mesh
)

// Range is a closed [Lower, Upper] interval used by constraints.
type Range struct {
	Lower, Upper float64
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Lower {
		return r.Lower
	}
	if v > r.Upper {
		return r.Upper
	}
	return v
}

// Vertex is a single mesh vertex in a draw command: a local-space position
// and a normalized UV coordinate. Plain value, safe to copy across the
// renderer boundary.
type Vertex struct {
	X, Y float32
	U, V float32
}
