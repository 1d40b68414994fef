// Package render submits aspen draw commands to an Ebitengine screen.
//
// The aspen core emits platform-agnostic [aspen.DrawCommand] values; this
// adapter owns every ebiten-specific concern — texture registration, blend
// and filter mapping, anchor/PRS geometry, warp mesh submission — so the
// core never imports a graphics package.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/aspen"
)

// Renderer resolves texture ids and draws command lists.
type Renderer struct {
	textures map[uint32]*ebiten.Image
	white    *ebiten.Image

	// Reused per-command scratch buffers for the mesh path.
	vertBuf []ebiten.Vertex
	indBuf  []uint16
}

// NewRenderer creates a renderer with an empty texture registry.
func NewRenderer() *Renderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Renderer{
		textures: make(map[uint32]*ebiten.Image),
		white:    white,
	}
}

// RegisterTexture binds an image to a texture id. Id 0 is reserved for the
// built-in solid white pixel and cannot be rebound.
func (r *Renderer) RegisterTexture(id uint32, img *ebiten.Image) {
	if id == 0 {
		return
	}
	r.textures[id] = img
}

// Draw submits a sorted command list to target. Commands referencing
// unregistered texture ids are skipped.
func (r *Renderer) Draw(target *ebiten.Image, cmds []aspen.DrawCommand) {
	var op ebiten.DrawImageOptions
	for i := range cmds {
		cmd := &cmds[i]
		if len(cmd.MeshVertices) > 0 {
			r.drawMesh(target, cmd)
			continue
		}
		r.drawQuad(target, cmd, &op)
	}
}

// resolve returns the source image and the pixel rectangle selected by the
// command's texture id and UV rect.
func (r *Renderer) resolve(cmd *aspen.DrawCommand) (*ebiten.Image, image.Rectangle, bool) {
	if cmd.TextureID == 0 {
		return r.white, image.Rect(0, 0, 1, 1), true
	}
	img, ok := r.textures[cmd.TextureID]
	if !ok {
		return nil, image.Rectangle{}, false
	}
	b := img.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	rect := image.Rect(
		b.Min.X+int(cmd.UVRect.X*w),
		b.Min.Y+int(cmd.UVRect.Y*h),
		b.Min.X+int((cmd.UVRect.X+cmd.UVRect.Width)*w),
		b.Min.Y+int((cmd.UVRect.Y+cmd.UVRect.Height)*h),
	)
	return img, rect, true
}

// commandGeoM builds the screen transform for a command: anchor shift, then
// world scale, rotation, and translation.
func commandGeoM(cmd *aspen.DrawCommand) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-cmd.Anchor.X*cmd.Size.Width, -cmd.Anchor.Y*cmd.Size.Height)
	g.Scale(cmd.Scale.X, cmd.Scale.Y)
	g.Rotate(cmd.Rotation)
	g.Translate(cmd.Position.X, cmd.Position.Y)
	return g
}

func applyColor(op *ebiten.DrawImageOptions, cmd *aspen.DrawCommand) {
	op.ColorScale.Reset()
	a := float32(cmd.Color.A * cmd.Alpha)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
}

func (r *Renderer) drawQuad(target *ebiten.Image, cmd *aspen.DrawCommand, op *ebiten.DrawImageOptions) {
	img, rect, ok := r.resolve(cmd)
	if !ok {
		return
	}
	src := img.SubImage(rect).(*ebiten.Image)
	srcW := float64(rect.Dx())
	srcH := float64(rect.Dy())
	if srcW == 0 || srcH == 0 {
		return
	}

	if cmd.CenterRect.Width > 0 && cmd.CenterRect.Height > 0 {
		r.drawNineSlice(target, cmd, src, op)
		return
	}

	op.GeoM.Reset()
	// Stretch the source pixels to the base size before the world transform.
	op.GeoM.Scale(cmd.Size.Width/srcW, cmd.Size.Height/srcH)
	op.GeoM.Concat(commandGeoM(cmd))
	applyColor(op, cmd)
	op.Blend = blendFor(cmd.BlendMode)
	op.Filter = filterFor(cmd.Filter)
	op.DisableMipmaps = !cmd.Mipmap
	target.DrawImage(src, op)
}

// drawNineSlice splits the source into a 3x3 grid around CenterRect
// (normalized within the source region). Corner cells keep their source
// pixel size; edge and center cells stretch to fill the remaining base size.
func (r *Renderer) drawNineSlice(target *ebiten.Image, cmd *aspen.DrawCommand, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	b := src.Bounds()
	srcW := float64(b.Dx())
	srcH := float64(b.Dy())

	// Source split points in pixels.
	sx := [4]float64{0, cmd.CenterRect.X * srcW, (cmd.CenterRect.X + cmd.CenterRect.Width) * srcW, srcW}
	sy := [4]float64{0, cmd.CenterRect.Y * srcH, (cmd.CenterRect.Y + cmd.CenterRect.Height) * srcH, srcH}

	// Destination split points: corners stay source-sized, center absorbs
	// the difference (floored at zero for degenerate sizes).
	leftW := sx[1]
	rightW := srcW - sx[2]
	topH := sy[1]
	bottomH := srcH - sy[2]
	centerW := cmd.Size.Width - leftW - rightW
	if centerW < 0 {
		centerW = 0
	}
	centerH := cmd.Size.Height - topH - bottomH
	if centerH < 0 {
		centerH = 0
	}
	dx := [4]float64{0, leftW, leftW + centerW, cmd.Size.Width}
	dy := [4]float64{0, topH, topH + centerH, cmd.Size.Height}

	world := commandGeoM(cmd)
	applyColor(op, cmd)
	op.Blend = blendFor(cmd.BlendMode)
	op.Filter = filterFor(cmd.Filter)
	op.DisableMipmaps = !cmd.Mipmap

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cw := sx[col+1] - sx[col]
			ch := sy[row+1] - sy[row]
			dw := dx[col+1] - dx[col]
			dh := dy[row+1] - dy[row]
			if cw <= 0 || ch <= 0 || dw <= 0 || dh <= 0 {
				continue
			}
			cell := src.SubImage(image.Rect(
				b.Min.X+int(sx[col]), b.Min.Y+int(sy[row]),
				b.Min.X+int(sx[col+1]), b.Min.Y+int(sy[row+1]),
			)).(*ebiten.Image)

			op.GeoM.Reset()
			op.GeoM.Scale(dw/cw, dh/ch)
			op.GeoM.Translate(dx[col], dy[row])
			op.GeoM.Concat(world)
			target.DrawImage(cell, op)
		}
	}
}

// drawMesh submits a warp mesh command via DrawTriangles. Vertex positions
// are local [0, size]; UVs are normalized within the command's UV rect.
func (r *Renderer) drawMesh(target *ebiten.Image, cmd *aspen.DrawCommand) {
	img, rect, ok := r.resolve(cmd)
	if !ok {
		return
	}
	src := img.SubImage(rect).(*ebiten.Image)

	need := len(cmd.MeshVertices)
	if cap(r.vertBuf) < need {
		r.vertBuf = make([]ebiten.Vertex, need)
	}
	r.vertBuf = r.vertBuf[:need]

	g := commandGeoM(cmd)
	cr := float32(cmd.Color.R)
	cg := float32(cmd.Color.G)
	cb := float32(cmd.Color.B)
	ca := float32(cmd.Color.A * cmd.Alpha)

	rx := float32(rect.Min.X)
	ry := float32(rect.Min.Y)
	rw := float32(rect.Dx())
	rh := float32(rect.Dy())

	for i, v := range cmd.MeshVertices {
		x, y := g.Apply(float64(v.X), float64(v.Y))
		r.vertBuf[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   rx + v.U*rw,
			SrcY:   ry + v.V*rh,
			ColorR: cr * ca,
			ColorG: cg * ca,
			ColorB: cb * ca,
			ColorA: ca,
		}
	}

	if cap(r.indBuf) < len(cmd.MeshIndices) {
		r.indBuf = make([]uint16, len(cmd.MeshIndices))
	}
	r.indBuf = r.indBuf[:len(cmd.MeshIndices)]
	copy(r.indBuf, cmd.MeshIndices)

	opts := &ebiten.DrawTrianglesOptions{
		Blend:          blendFor(cmd.BlendMode),
		Filter:         filterFor(cmd.Filter),
		DisableMipmaps: !cmd.Mipmap,
	}
	target.DrawTriangles(r.vertBuf, r.indBuf, src, opts)
}

// blendFor maps an aspen blend mode to the ebiten blend state.
func blendFor(b aspen.BlendMode) ebiten.Blend {
	switch b {
	case aspen.BlendNormal:
		return ebiten.BlendSourceOver
	case aspen.BlendAdd:
		return ebiten.BlendLighter
	case aspen.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case aspen.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case aspen.BlendErase:
		return ebiten.BlendDestinationOut
	case aspen.BlendBelow:
		return ebiten.BlendDestinationOver
	case aspen.BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// filterFor maps an aspen filter mode to the ebiten filter.
func filterFor(f aspen.FilterMode) ebiten.Filter {
	if f == aspen.FilterLinear {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}
