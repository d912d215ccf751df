package hw

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"dsfront/emu/log"
	"dsfront/hw/render"
)

// Window is the emulator window. Besides the SDL window itself, it creates
// what the render backends draw onto. Its methods must be called on the SDL
// main thread.
type Window struct {
	*sdl.Window
	vsync bool

	fullscreen bool
}

type WindowConfig struct {
	Title         string
	Width, Height int
	Monitor       int32
	VSync         bool
}

// NewWindow initializes SDL and creates the window.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %s", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	// Center on the requested monitor.
	pos := int32(sdl.WINDOWPOS_CENTERED_MASK) | cfg.Monitor
	w, err := sdl.CreateWindow(cfg.Title,
		pos, pos,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %s", err)
	}

	return &Window{Window: w, vsync: cfg.VSync}, nil
}

// Size returns the size of the drawable area.
func (w *Window) Size() (int, int) {
	width, height := w.Window.GetSize()
	return int(width), int(height)
}

// SetMinSize sets the minimum size of the window.
func (w *Window) SetMinSize(width, height int) {
	w.Window.SetMinimumSize(int32(width), int32(height))
}

// Resize sets the window size, unless it's fullscreen.
func (w *Window) Resize(width, height int) {
	if w.fullscreen {
		return
	}
	w.Window.SetSize(int32(width), int32(height))
}

// ToggleFullscreen switches between windowed and fullscreen desktop modes.
func (w *Window) ToggleFullscreen() error {
	var flags uint32
	if !w.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.Window.SetFullscreen(flags); err != nil {
		return err
	}
	w.fullscreen = !w.fullscreen
	return nil
}

func (w *Window) Close() error {
	err := w.Destroy()
	sdl.Quit()
	return err
}

// NewGLContext creates an OpenGL context on the window and makes it current.
func (w *Window) NewGLContext() (render.GLContext, error) {
	ctx, err := w.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL context: %s", err)
	}
	if err := w.GLMakeCurrent(ctx); err != nil {
		sdl.GLDeleteContext(ctx)
		return nil, fmt.Errorf("failed to make OpenGL context current: %s", err)
	}

	interval := 0
	if w.vsync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.ModRender.WarnZ("failed to set swap interval").Int("interval", interval).Error("err", err).End()
	}

	return &glContext{win: w.Window, ctx: ctx}, nil
}

type glContext struct {
	win *sdl.Window
	ctx sdl.GLContext
}

func (c *glContext) SwapBuffers() { c.win.GLSwap() }
func (c *glContext) Destroy()     { sdl.GLDeleteContext(c.ctx) }

// NewPresenter creates an SDL renderer on the window, presenting composited
// images through a streaming texture.
func (w *Window) NewPresenter(width, height int) (render.Presenter, error) {
	flags := uint32(sdl.RENDERER_ACCELERATED)
	if w.vsync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	ren, err := sdl.CreateRenderer(w.Window, -1, flags)
	if err != nil {
		log.ModRender.WarnZ("no accelerated SDL renderer").Error("err", err).End()
		ren, err = sdl.CreateRenderer(w.Window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %s", err)
		}
	}

	p := &texturePresenter{ren: ren}
	if err := p.Resize(width, height); err != nil {
		ren.Destroy()
		return nil, err
	}
	return p, nil
}

// texturePresenter uploads images to a streaming texture the size of the
// viewport.
type texturePresenter struct {
	ren  *sdl.Renderer
	tex  *sdl.Texture
	w, h int
}

func (p *texturePresenter) Resize(w, h int) error {
	if p.tex != nil && w == p.w && h == p.h {
		return nil
	}
	if p.tex != nil {
		p.tex.Destroy()
		p.tex = nil
	}

	// Byte order of image.RGBA pixels on little-endian hosts.
	tex, err := p.ren.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		return fmt.Errorf("failed to create texture: %s", err)
	}
	p.tex, p.w, p.h = tex, w, h
	return nil
}

func (p *texturePresenter) Present(img *image.RGBA) error {
	if img.Rect.Dx() != p.w || img.Rect.Dy() != p.h {
		if err := p.Resize(img.Rect.Dx(), img.Rect.Dy()); err != nil {
			return err
		}
	}
	if err := p.tex.Update(nil, unsafe.Pointer(&img.Pix[0]), img.Stride); err != nil {
		return fmt.Errorf("texture update: %s", err)
	}
	if err := p.ren.Copy(p.tex, nil, nil); err != nil {
		return fmt.Errorf("texture copy: %s", err)
	}
	p.ren.Present()
	return nil
}

func (p *texturePresenter) Close() {
	if p.tex != nil {
		p.tex.Destroy()
	}
	p.ren.Destroy()
}
