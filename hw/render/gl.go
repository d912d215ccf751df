package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"golang.org/x/image/math/f64"

	"dsfront/emu"
	"dsfront/emu/log"
	"dsfront/hw/layout"
	"dsfront/hw/shaders"
)

var errNoHost = errors.New("no window to create an OpenGL context on")

// glBackend draws each screen as a textured quad. The quad vertices span the
// unit square; a per-screen mat3 maps them to normalized device coordinates.
type glBackend struct {
	host   Host
	shader string
	ctx    GLContext

	prog     uint32
	vao      uint32
	vbo      uint32
	ebo      uint32
	textures [2]uint32

	uTransform int32
	uScreen    int32

	// The overlay is always drawn with the default program, which keeps the
	// texture alpha.
	osdProg       uint32
	osdTex        uint32
	uOSDTransform int32
	uOSDScreen    int32
	overlay       *image.RGBA
	overlayDirty  bool

	w, h int
}

func newGLBackend(host Host, shader string) *glBackend {
	if shader == "" {
		shader = shaders.DefaultName
	}
	return &glBackend{host: host, shader: shader}
}

func (*glBackend) Kind() Kind { return GL }

// Columns are the position of a vertex in the unit quad, which is also its
// texture coordinate.
var quadVertices = []float32{
	0, 0, // top left
	1, 0, // top right
	1, 1, // bottom right
	0, 1, // bottom left
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

func (b *glBackend) Init(w, h int) error {
	if b.host == nil {
		return &GraphicsInitError{Err: errNoHost}
	}
	ctx, err := b.host.NewGLContext()
	if err != nil {
		return &GraphicsInitError{Err: err}
	}
	if err := gl.Init(); err != nil {
		ctx.Destroy()
		return &GraphicsInitError{Err: fmt.Errorf("failed to initialize opengl: %w", err)}
	}
	b.ctx = ctx

	log.ModRender.DebugZ("OpenGL initialized").
		String("version", gl.GoStr(gl.GetString(gl.VERSION))).
		String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		End()

	prog, err := shaders.Program(b.shader)
	if err != nil {
		b.ctx.Destroy()
		b.ctx = nil
		return &GraphicsInitError{Err: err}
	}
	b.prog = prog
	b.uTransform = gl.GetUniformLocation(prog, gl.Str("uTransform\x00"))
	b.uScreen = gl.GetUniformLocation(prog, gl.Str("uScreen\x00"))

	b.osdProg = prog
	if b.shader != shaders.DefaultName {
		if b.osdProg, err = shaders.Program(shaders.DefaultName); err != nil {
			gl.DeleteProgram(prog)
			b.ctx.Destroy()
			b.ctx = nil
			return &GraphicsInitError{Err: err}
		}
	}
	b.uOSDTransform = gl.GetUniformLocation(b.osdProg, gl.Str("uTransform\x00"))
	b.uOSDScreen = gl.GetUniformLocation(b.osdProg, gl.Str("uScreen\x00"))

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenTextures(2, &b.textures[0])
	for _, tex := range b.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, layout.NativeWidth, layout.NativeHeight, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}

	gl.GenTextures(1, &b.osdTex)
	gl.BindTexture(gl.TEXTURE_2D, b.osdTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.Shutdown()
		return &GraphicsInitError{Err: fmt.Errorf("opengl error 0x%x", code)}
	}

	b.Resize(w, h)
	return nil
}

func (b *glBackend) Resize(w, h int) {
	b.w, b.h = max(w, 1), max(h, 1)
}

func (b *glBackend) RenderFrame(fp *emu.FramePair, l layout.Layout, filtering bool) error {
	gl.Viewport(0, 0, int32(b.w), int32(b.h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	filter := int32(gl.NEAREST)
	if filtering {
		filter = gl.LINEAR
	}

	gl.UseProgram(b.prog)
	gl.BindVertexArray(b.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(b.uScreen, 0)

	for s, img := range fp.Screens {
		gl.BindTexture(gl.TEXTURE_2D, b.textures[s])
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, layout.NativeWidth, layout.NativeHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)

		m := screenMatrix(l.Screens[s].Fwd, b.w, b.h)
		gl.UniformMatrix3fv(b.uTransform, 1, false, &m[0])
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, 0)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if b.overlay != nil {
		b.drawOverlay()
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%x", code)
	}
	b.ctx.SwapBuffers()
	return nil
}

func (b *glBackend) SetOverlay(img *image.RGBA) {
	if img != b.overlay {
		b.overlay = img
		b.overlayDirty = img != nil
	}
}

// drawOverlay blends the overlay over the screens. The vertex array must be
// bound.
func (b *glBackend) drawOverlay() {
	size := b.overlay.Rect.Size()

	gl.UseProgram(b.osdProg)
	gl.Uniform1i(b.uOSDScreen, 0)
	gl.BindTexture(gl.TEXTURE_2D, b.osdTex)
	if b.overlayDirty {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(b.overlay.Stride/4))
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(b.overlay.Pix))
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
		b.overlayDirty = false
	}

	m := overlayMatrix(size, b.w, b.h)
	gl.UniformMatrix3fv(b.uOSDTransform, 1, false, &m[0])

	// image.RGBA is alpha premultiplied.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, 0)
	gl.Disable(gl.BLEND)
}

func (b *glBackend) Shutdown() {
	if b.ctx == nil {
		return
	}
	gl.DeleteTextures(1, &b.osdTex)
	if b.osdProg != b.prog {
		gl.DeleteProgram(b.osdProg)
	}
	gl.DeleteTextures(2, &b.textures[0])
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.prog)
	b.ctx.Destroy()
	b.ctx = nil
}

// screenMatrix returns, in column-major order, the matrix mapping the unit
// quad to normalized device coordinates for a screen whose native pixels are
// placed in a w×h viewport by fwd.
func screenMatrix(fwd f64.Aff3, w, h int) [9]float32 {
	// unit quad -> native pixels
	sx, sy := float64(layout.NativeWidth), float64(layout.NativeHeight)
	// viewport pixels -> NDC, y pointing up
	px, py := 2/float64(w), -2/float64(h)

	a, b, c := fwd[0]*sx, fwd[1]*sy, fwd[2]
	d, e, f := fwd[3]*sx, fwd[4]*sy, fwd[5]

	return [9]float32{
		float32(px * a), float32(py * d), 0,
		float32(px * b), float32(py * e), 0,
		float32(px*c - 1), float32(py*f + 1), 1,
	}
}

// overlayMatrix returns the matrix placing an overlay of the given size at
// overlayRect in a w×h viewport, with one texel per viewport pixel.
func overlayMatrix(size image.Point, w, h int) [9]float32 {
	r := overlayRect(size)
	fwd := f64.Aff3{
		float64(size.X) / layout.NativeWidth, 0, float64(r.Min.X),
		0, float64(size.Y) / layout.NativeHeight, float64(r.Min.Y),
	}
	return screenMatrix(fwd, w, h)
}
