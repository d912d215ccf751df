package hw

import (
	"errors"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"dsfront/emu"
	"dsfront/emu/log"
	"dsfront/hw/input"
	"dsfront/hw/layout"
	"dsfront/hw/render"
)

const (
	windowTitle = "dsfront"

	// Longest time the interactive thread sleeps without an event, which
	// bounds how late a missed wake can be noticed.
	idleTimeout = 100 * time.Millisecond
)

// Frontend is the interactive side of the emulator. It owns the window,
// the render backend and the current layout, translates SDL events into
// session commands and emulated input, and presents the frames produced by
// the execution thread.
//
// Except for Run and Close, Frontend methods run on the SDL main thread.
type Frontend struct {
	win     *Window
	backend render.Backend
	ctrl    *emu.Controller
	notes   *emu.Notifications

	touch *input.TouchMapper
	keys  *input.Translator
	ctrls *input.GameControllers

	cfg   emu.Config
	lay   layout.Layout
	scale int

	osd      render.OSD
	osdShown bool
	failure  string // last session command error

	wakeType uint32
	redraw   bool
	quit     bool
}

// NewFrontend creates the window and the render backend for the session
// driven by ctrl.
func NewFrontend(cfg emu.Config, ctrl *emu.Controller) (*Frontend, error) {
	type result struct {
		f   *Frontend
		err error
	}
	resc := make(chan result, 1)
	sdl.Do(func() {
		f, err := newFrontend(cfg, ctrl)
		resc <- result{f, err}
	})
	res := <-resc
	return res.f, res.err
}

func newFrontend(cfg emu.Config, ctrl *emu.Controller) (*Frontend, error) {
	kind, err := render.ParseKind(cfg.Video.Backend)
	if err != nil {
		return nil, err
	}

	minw, minh := layout.MinSize(cfg.Layout)
	scale := max(cfg.Video.WindowScale, 1)
	win, err := NewWindow(WindowConfig{
		Title:   windowTitle,
		Width:   minw * scale,
		Height:  minh * scale,
		Monitor: cfg.Video.Monitor,
		VSync:   !cfg.Video.DisableVSync,
	})
	if err != nil {
		return nil, err
	}
	win.SetMinSize(minw, minh)

	w, h := win.Size()
	backend, err := render.New(kind, win, cfg.Video.Shader, w, h)
	if err != nil {
		win.Close()
		return nil, err
	}

	f := &Frontend{
		win:     win,
		backend: backend,
		ctrl:    ctrl,
		notes:   ctrl.Notifications(),
		ctrls:   input.NewGameControllers(),
		cfg:     cfg,
		lay:     layout.Compute(cfg.Layout, w, h),
		scale:   scale,
		redraw:  true,
	}
	f.touch = input.NewTouchMapper(ctrl, f.lay)
	f.keys = input.NewTranslator(cfg.Input, f.ctrls, ctrl)

	// The execution thread posts notifications; a user event wakes the
	// interactive thread up so they're drained right away.
	f.wakeType = sdl.RegisterEvents(1)
	if f.wakeType == ^uint32(0) {
		log.ModEmu.WarnZ("no user event available, notifications will be polled").End()
	} else {
		wakeType := f.wakeType
		f.notes.OnPost(func() {
			sdl.PushEvent(&sdl.UserEvent{Type: wakeType})
		})
	}

	log.ModRender.InfoZ("frontend ready").
		Stringer("backend", backend.Kind()).
		Int("width", w).
		Int("height", h).
		End()
	return f, nil
}

// Config returns the configuration as changed by the hotkeys.
func (f *Frontend) Config() emu.Config { return f.cfg }

// Run processes events and presents frames until the user quits. It must
// be called from the goroutine running sdl.Main.
func (f *Frontend) Run() {
	for !f.quit {
		sdl.Do(f.tick)
	}
}

// Close releases the backend, the game controllers and the window. The
// session must have been stopped.
func (f *Frontend) Close() {
	sdl.Do(func() {
		f.backend.Shutdown()
		f.ctrls.Close()
		if err := f.win.Close(); err != nil {
			log.ModEmu.WarnZ("failed to close window").Error("err", err).End()
		}
	})
}

// tick runs one iteration of the interactive loop: it handles pending
// events, drains notifications and redraws if needed.
func (f *Frontend) tick() {
	ev := sdl.WaitEventTimeout(int(idleTimeout / time.Millisecond))
	for ; ev != nil; ev = sdl.PollEvent() {
		f.handleEvent(ev)
	}

	f.notes.Drain(f.handleNotification)

	// Redraw once more when the notice expires.
	if f.osdShown != (f.osd.Image(time.Now()) != nil) {
		f.redraw = true
	}

	if f.redraw && !f.quit {
		f.render()
	}
}

func (f *Frontend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case sdl.QuitEvent:
		f.quit = true

	case sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			f.relayout()
		case sdl.WINDOWEVENT_EXPOSED:
			f.redraw = true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// The button release may be delivered to another window.
			f.touch.Up()
		}

	case sdl.KeyboardEvent:
		if act := hotkey(e.Keysym.Scancode); act != ActNone {
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				f.do(act)
			}
			return
		}
		f.keys.Translate(e)

	case sdl.MouseButtonEvent:
		if e.Button != sdl.ButtonLeft {
			return
		}
		if e.State == sdl.PRESSED {
			f.touch.Down(image.Pt(int(e.X), int(e.Y)))
		} else {
			f.touch.Up()
		}

	case sdl.MouseMotionEvent:
		f.touch.Motion(image.Pt(int(e.X), int(e.Y)), e.State&sdl.ButtonLMask != 0)

	case sdl.ControllerDeviceEvent:
		f.ctrls.Update(e)

	case sdl.ControllerButtonEvent, sdl.ControllerAxisEvent:
		f.keys.Translate(ev)
	}
}

// do executes a hotkey action.
func (f *Frontend) do(act Action) {
	if cfg, ok := applyLayoutAction(f.cfg.Layout, act); ok {
		f.cfg.Layout = cfg
		f.relayout()
		f.notes.Post(emu.LayoutChanged)
		log.ModLayout.InfoZ("layout changed").
			Stringer("mode", cfg.Mode).
			Stringer("sizing", cfg.Sizing).
			Int("rotation", int(cfg.Rotation)).
			Int("gap", cfg.Gap).
			Bool("swap", cfg.SwapScreens).
			Bool("integer", cfg.IntegerScaling).
			Bool("filtering", cfg.Filtering).
			End()
		return
	}

	switch act {
	case ActQuit:
		f.quit = true
	case ActPause:
		if f.ctrl.State() == emu.Paused {
			f.ctrl.Unpause()
		} else {
			f.ctrl.Pause()
		}
	case ActReset:
		f.ctrl.Reset()
	case ActLimitFPS:
		f.cfg.Emulation.LimitFPS = !f.ctrl.LimitFPS()
		f.ctrl.SetLimitFPS(f.cfg.Emulation.LimitFPS)
	case ActFullscreen:
		if err := f.win.ToggleFullscreen(); err != nil {
			log.ModEmu.WarnZ("failed to toggle fullscreen").Error("err", err).End()
			return
		}
		f.notes.Post(emu.FullscreenToggled)
	case ActStop:
		f.stopOrRun()
	case ActToggleOSD:
		f.cfg.Video.ShowOSD = !f.cfg.Video.ShowOSD
		if f.cfg.Video.ShowOSD {
			f.osd.Show("OSD on", time.Now())
		} else {
			f.osd.Hide()
		}
		f.redraw = true
	case ActScreenSize:
		f.scale = nextWindowScale(f.scale)
		f.cfg.Video.WindowScale = f.scale
		w, h := f.lay.MinSize()
		f.win.Resize(w*f.scale, h*f.scale)
	}
}

// stopOrRun stops the running session, or starts a new one. Errors are
// reported in the window title and the OSD until the next successful start.
func (f *Frontend) stopOrRun() {
	err := toggleSession(f.ctrl)
	if err == nil {
		f.failure = ""
		return
	}

	var (
		serr *emu.StartupError
		terr *emu.ShutdownTimeoutError
	)
	switch {
	case errors.As(err, &serr):
		log.ModSession.ErrorZ("failed to start session").Error("err", err).End()
	case errors.As(err, &terr):
		log.ModSession.ErrorZ("session did not stop in time").Error("err", err).End()
	default:
		log.ModSession.WarnZ("session command failed").Error("err", err).End()
	}

	f.failure = err.Error()
	f.win.SetTitle(windowTitle + " | " + f.failure)
	f.notice(f.failure)
}

// notice shows text in the OSD, if enabled.
func (f *Frontend) notice(text string) {
	if text == "" || !f.cfg.Video.ShowOSD {
		return
	}
	f.osd.Show(text, time.Now())
	f.redraw = true
}

// relayout recomputes the layout for the current window size and hands it
// to the backend and the touch mapper.
func (f *Frontend) relayout() {
	w, h := f.win.Size()
	f.lay = layout.Compute(f.cfg.Layout, w, h)
	f.win.SetMinSize(f.lay.MinSize())
	f.backend.Resize(w, h)
	f.touch.SetLayout(f.lay)
	f.redraw = true
}

func (f *Frontend) handleNotification(n emu.Notification) {
	if n.Event == emu.SessionStarted {
		f.failure = ""
	}
	if title, ok := titleFor(n, f.failure); ok {
		f.win.SetTitle(title)
	}
	switch n.Event {
	case emu.FrameRendered, emu.LayoutChanged, emu.FullscreenToggled:
		f.redraw = true
	}
	if n.Event != emu.SessionStopped || f.failure == "" {
		f.notice(noticeText(n.Event, f.cfg.Layout, f.ctrl.LimitFPS()))
	}
	log.ModEmu.DebugZ("notification").Stringer("event", n.Event).End()
}

func (f *Frontend) render() {
	fp, _ := f.ctrl.Frames().Acquire()
	overlay := f.osd.Image(time.Now())
	f.osdShown = overlay != nil
	f.backend.SetOverlay(overlay)
	if err := f.backend.RenderFrame(fp, f.lay, f.cfg.Layout.Filtering); err != nil {
		log.ModRender.WarnZ("failed to render frame").Error("err", err).End()
	}
	f.redraw = false
}
