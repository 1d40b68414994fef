package aspen

import "math"

// WarpGrid is a deformable vertex grid mapping normalized source positions
// to displaced destination positions. A grid of cols×rows cells has
// (cols+1)×(rows+1) vertices, indexed row-major: row*(cols+1)+col.
//
// Source positions form a regular lattice over [0,1]² and are immutable
// after construction. Destination positions default to the sources (identity
// warp) and may be mutated freely. Both arrays always have identical length.
type WarpGrid struct {
	cols, rows int
	source     []Vec2
	dest       []Vec2
}

// NewWarpGrid creates an identity warp grid. Columns and rows below 1 are
// floored to 1.
func NewWarpGrid(cols, rows int) *WarpGrid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	vcols := cols + 1
	vrows := rows + 1
	source := make([]Vec2, vcols*vrows)
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			source[r*vcols+c] = Vec2{
				X: float64(c) / float64(cols),
				Y: float64(r) / float64(rows),
			}
		}
	}
	dest := make([]Vec2, len(source))
	copy(dest, source)
	return &WarpGrid{cols: cols, rows: rows, source: source, dest: dest}
}

// Cols returns the number of grid columns (cells, not vertices).
func (g *WarpGrid) Cols() int { return g.cols }

// Rows returns the number of grid rows (cells, not vertices).
func (g *WarpGrid) Rows() int { return g.rows }

// VertexCount returns (cols+1) * (rows+1).
func (g *WarpGrid) VertexCount() int { return len(g.source) }

// SourcePosition returns the immutable source position at index i, or the
// zero vector if i is out of range.
func (g *WarpGrid) SourcePosition(i int) Vec2 {
	if i < 0 || i >= len(g.source) {
		return Vec2{}
	}
	return g.source[i]
}

// DestPosition returns the destination position at index i, or the zero
// vector if i is out of range.
func (g *WarpGrid) DestPosition(i int) Vec2 {
	if i < 0 || i >= len(g.dest) {
		return Vec2{}
	}
	return g.dest[i]
}

// SetDestPosition sets the destination position at index i. Out-of-range
// indices are a silent no-op.
func (g *WarpGrid) SetDestPosition(i int, v Vec2) {
	if i < 0 || i >= len(g.dest) {
		return
	}
	g.dest[i] = v
}

// SetDestPositionAt sets the destination position at (col, row).
// Out-of-range coordinates are a silent no-op.
func (g *WarpGrid) SetDestPositionAt(col, row int, v Vec2) {
	if col < 0 || col > g.cols || row < 0 || row > g.rows {
		return
	}
	g.dest[row*(g.cols+1)+col] = v
}

// ReplaceDestinations replaces every destination position at once. A slice
// whose length does not match VertexCount is rejected without mutating the
// grid (no partial writes).
func (g *WarpGrid) ReplaceDestinations(vs []Vec2) {
	if len(vs) != len(g.dest) {
		return
	}
	copy(g.dest, vs)
}

// Reset returns every destination position to its source (identity warp).
func (g *WarpGrid) Reset() {
	copy(g.dest, g.source)
}

// Clone returns an independent copy of the grid.
func (g *WarpGrid) Clone() *WarpGrid {
	out := &WarpGrid{
		cols:   g.cols,
		rows:   g.rows,
		source: make([]Vec2, len(g.source)),
		dest:   make([]Vec2, len(g.dest)),
	}
	copy(out.source, g.source)
	copy(out.dest, g.dest)
	return out
}

// InterpolateWarp linearly blends the destination positions of two grids of
// identical shape. progress is clamped to [0,1]; 0 yields from's
// destinations, 1 yields to's. Mismatched shapes (or nil inputs) yield nil.
func InterpolateWarp(from, to *WarpGrid, progress float64) *WarpGrid {
	if from == nil || to == nil {
		return nil
	}
	if from.cols != to.cols || from.rows != to.rows {
		return nil
	}
	progress = clampFloat(progress, 0, 1)
	out := from.Clone()
	for i := range out.dest {
		out.dest[i] = from.dest[i].Lerp(to.dest[i], progress)
	}
	return out
}

// --- Presets ---
//
// Presets are deterministic, stateless transforms of a fresh identity grid.
// Apply once at construction; regenerate per frame only for animated warps.

// WaveWarp builds a grid whose vertices are offset sinusoidally. When
// horizontal is true the offset is along X, driven by the source Y
// coordinate; otherwise along Y, driven by the source X coordinate.
// frequency is in full periods across the grid; phase is in radians.
func WaveWarp(cols, rows int, amplitude, frequency, phase float64, horizontal bool) *WarpGrid {
	g := NewWarpGrid(cols, rows)
	for i, src := range g.source {
		if horizontal {
			off := amplitude * math.Sin(2*math.Pi*frequency*src.Y+phase)
			g.dest[i] = Vec2{src.X + off, src.Y}
		} else {
			off := amplitude * math.Sin(2*math.Pi*frequency*src.X+phase)
			g.dest[i] = Vec2{src.X, src.Y + off}
		}
	}
	return g
}

// BulgeWarp builds a grid that scales vertices radially around center.
// The scale factor falls off as f²·strength with f = 1 - distance/radius,
// reaching zero at the radius edge. Positive strength bulges outward;
// negative strength pinches inward. Vertices outside the radius are
// untouched.
func BulgeWarp(cols, rows int, center Vec2, radius, strength float64) *WarpGrid {
	g := NewWarpGrid(cols, rows)
	if radius <= 0 {
		return g
	}
	for i, src := range g.source {
		off := src.Sub(center)
		d := off.Length()
		if d == 0 || d >= radius {
			continue
		}
		f := 1 - d/radius
		g.dest[i] = center.Add(off.Scale(1 + f*f*strength))
	}
	return g
}

// TwistWarp builds a grid that rotates vertices around center by up to angle
// radians, with the same f² falloff as BulgeWarp: full twist at the center,
// zero at the radius edge and beyond.
func TwistWarp(cols, rows int, center Vec2, radius, angle float64) *WarpGrid {
	g := NewWarpGrid(cols, rows)
	if radius <= 0 {
		return g
	}
	for i, src := range g.source {
		off := src.Sub(center)
		d := off.Length()
		if d >= radius {
			continue
		}
		f := 1 - d/radius
		g.dest[i] = center.Add(off.Rotate(angle * f * f))
	}
	return g
}

// --- Tessellation ---

// sampleDest bilinearly interpolates the destination surface at the
// normalized source coordinate (u, v), both clamped to [0,1].
func (g *WarpGrid) sampleDest(u, v float64) Vec2 {
	u = clampFloat(u, 0, 1)
	v = clampFloat(v, 0, 1)

	fx := u * float64(g.cols)
	fy := v * float64(g.rows)
	c := int(fx)
	r := int(fy)
	if c >= g.cols {
		c = g.cols - 1
	}
	if r >= g.rows {
		r = g.rows - 1
	}
	tx := fx - float64(c)
	ty := fy - float64(r)

	vcols := g.cols + 1
	i := r*vcols + c
	top := g.dest[i].Lerp(g.dest[i+1], tx)
	bottom := g.dest[i+vcols].Lerp(g.dest[i+vcols+1], tx)
	return top.Lerp(bottom, ty)
}

// Tessellate samples the deformed surface into a triangle mesh over the
// given base size. subdivisions splits each grid cell into that many mesh
// cells per axis (minimum 1); the sampling resolution is reduced
// automatically — below one cell per grid cell if necessary — so the
// vertex count never overflows 16-bit indices. Vertex positions are in
// local space spanning [0, size]; UVs are the normalized source
// coordinates.
func (g *WarpGrid) Tessellate(size Size, subdivisions int) ([]Vertex, []uint16) {
	if subdivisions < 1 {
		subdivisions = 1
	}
	segsX, segsY := clampMeshSegments(g.cols*subdivisions, g.rows*subdivisions)

	verts := make([]Vertex, (segsX+1)*(segsY+1))
	inds := make([]uint16, segsX*segsY*6)
	tessellateInto(g, size, segsX, segsY, verts, inds)
	return verts, inds
}

// clampMeshSegments shrinks a mesh resolution until its vertex count fits
// 16-bit indices. The aspect ratio is roughly preserved; a too-dense grid
// is sampled coarser than one mesh cell per grid cell rather than letting
// indices wrap.
func clampMeshSegments(segsX, segsY int) (int, int) {
	if (segsX+1)*(segsY+1) <= math.MaxUint16 {
		return segsX, segsY
	}
	scale := math.Sqrt(float64(math.MaxUint16) / float64((segsX+1)*(segsY+1)))
	segsX = int(float64(segsX) * scale)
	segsY = int(float64(segsY) * scale)
	if segsX < 1 {
		segsX = 1
	}
	if segsY < 1 {
		segsY = 1
	}
	for (segsX+1)*(segsY+1) > math.MaxUint16 {
		if segsX >= segsY {
			segsX--
		} else {
			segsY--
		}
	}
	return segsX, segsY
}

// tessellateInto fills preallocated vertex and index slices. Used by the
// scene's per-node mesh cache to avoid reallocating every update.
func tessellateInto(g *WarpGrid, size Size, segsX, segsY int, verts []Vertex, inds []uint16) {
	vcols := segsX + 1
	for r := 0; r <= segsY; r++ {
		v := float64(r) / float64(segsY)
		for c := 0; c <= segsX; c++ {
			u := float64(c) / float64(segsX)
			p := g.sampleDest(u, v)
			verts[r*vcols+c] = Vertex{
				X: float32(p.X * size.Width),
				Y: float32(p.Y * size.Height),
				U: float32(u),
				V: float32(v),
			}
		}
	}

	ii := 0
	for r := 0; r < segsY; r++ {
		for c := 0; c < segsX; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			inds[ii+0] = tl
			inds[ii+1] = bl
			inds[ii+2] = tr
			inds[ii+3] = tr
			inds[ii+4] = bl
			inds[ii+5] = br
			ii += 6
		}
	}
}

// refreshWarpMesh rebuilds a node's cached warp tessellation if it is marked
// dirty. Buffers grow to a high-water mark and never shrink.
func refreshWarpMesh(n *Node) {
	if n.Warp == nil || !n.warpDirty {
		return
	}
	g := n.Warp
	sub := n.Subdivisions
	if sub < 1 {
		sub = 1
	}
	segsX, segsY := clampMeshSegments(g.cols*sub, g.rows*sub)

	nv := (segsX + 1) * (segsY + 1)
	ni := segsX * segsY * 6
	if cap(n.warpVerts) < nv {
		n.warpVerts = make([]Vertex, nv)
	}
	n.warpVerts = n.warpVerts[:nv]
	if cap(n.warpInds) < ni {
		n.warpInds = make([]uint16, ni)
	}
	n.warpInds = n.warpInds[:ni]

	tessellateInto(g, n.Size, segsX, segsY, n.warpVerts, n.warpInds)
	n.warpDirty = false
}
