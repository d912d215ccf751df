// Package render draws emulated frames into the window, either by compositing
// them on the CPU (raster) or with OpenGL.
package render

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"dsfront/emu"
	"dsfront/emu/log"
	"dsfront/hw/layout"
)

// Kind identifies a render backend implementation.
type Kind uint8

const (
	Raster Kind = iota
	GL
)

func (k Kind) String() string {
	switch k {
	case Raster:
		return "raster"
	case GL:
		return "gl"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "raster", "software":
		return Raster, nil
	case "gl", "opengl":
		return GL, nil
	}
	return 0, fmt.Errorf("unknown render backend %q", s)
}

// A Backend presents frames in the window viewport. Only one backend is live
// per window, and all its methods are called from the interactive thread.
type Backend interface {
	Kind() Kind

	// Init allocates the backend resources for a viewport of w×h pixels.
	Init(w, h int) error

	// Resize is called when the viewport size changes.
	Resize(w, h int)

	// RenderFrame draws both screens of fp, placed by l, and presents the
	// result.
	RenderFrame(fp *emu.FramePair, l layout.Layout, filtering bool) error

	// SetOverlay sets the image drawn over the screens by the next frames,
	// near the top left corner of the viewport. A nil img removes it.
	SetOverlay(img *image.RGBA)

	// Shutdown releases what Init allocated.
	Shutdown()
}

// GraphicsInitError reports that the accelerated backend could not be
// initialized.
type GraphicsInitError struct {
	Err error
}

func (e *GraphicsInitError) Error() string {
	return fmt.Sprintf("graphics initialization failed: %v", e.Err)
}

func (e *GraphicsInitError) Unwrap() error { return e.Err }

// A Presenter shows a composited viewport image.
type Presenter interface {
	Present(img *image.RGBA) error
	Resize(w, h int) error
	Close()
}

// A GLContext is an OpenGL context bound to the window.
type GLContext interface {
	SwapBuffers()
	Destroy()
}

// Host creates the window-side objects the backends draw onto.
type Host interface {
	NewPresenter(w, h int) (Presenter, error)
	NewGLContext() (GLContext, error)
}

// New creates and initializes a backend of the given kind for a w×h viewport.
// If the accelerated backend can't be initialized, New falls back to the
// raster one. The choice is never revisited afterwards.
func New(kind Kind, host Host, shader string, w, h int) (Backend, error) {
	if kind == GL {
		b := newGLBackend(host, shader)
		err := b.Init(w, h)
		if err == nil {
			log.ModRender.InfoZ("using backend").Stringer("kind", GL).End()
			return b, nil
		}
		var gerr *GraphicsInitError
		if !errors.As(err, &gerr) {
			return nil, err
		}
		log.ModRender.WarnZ("OpenGL unavailable, falling back to raster").Error("err", err).End()
	}

	b := newRasterBackend(host)
	if err := b.Init(w, h); err != nil {
		return nil, fmt.Errorf("raster backend: %w", err)
	}
	log.ModRender.InfoZ("using backend").Stringer("kind", Raster).End()
	return b, nil
}

func logErr(msg string, err error) {
	log.ModRender.WarnZ(msg).Error("err", err).End()
}
