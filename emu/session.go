package emu

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"dsfront/emu/log"
	"dsfront/hw/input"
)

// Controller runs an emulation session on a dedicated execution thread, and
// lets the interactive thread start, pause, reset and stop it.
//
// Commands are serialized; the execution thread only looks at their effects
// between two frames.
type Controller struct {
	core      Core
	resources []Resource
	timeout   time.Duration

	cmdmu sync.Mutex // serializes commands

	// These are accessed concurrently by the execution and interactive threads.
	state    atomic.Int32
	reset    atomic.Bool
	limitFPS atomic.Bool

	// Current session, or the last one. Only accessed under cmdmu, done is
	// also written under donemu.
	quit chan struct{} // closed to stop the execution thread
	wake chan struct{} // unblocks a paused execution thread
	done chan struct{} // closed once the execution thread has exited

	donemu sync.Mutex

	inputs *inputQueue
	frames *FrameExchange
	notes  *Notifications
}

// NewController returns a stopped controller of core. Resources are acquired
// in order, after the core has started, when a session starts.
func NewController(core Core, cfg EmulationConfig, resources ...Resource) *Controller {
	timeout := cfg.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	c := &Controller{
		core:      core,
		resources: resources,
		timeout:   timeout,
		inputs:    newInputQueue(inputQueueSize),
		frames:    NewFrameExchange(),
		notes:     NewNotifications(),
	}
	c.limitFPS.Store(cfg.LimitFPS)
	return c
}

func (c *Controller) State() State { return State(c.state.Load()) }

// IsRunning reports whether the execution thread is alive. That's the case
// while a session is running or paused, and also after a stop that timed
// out, until the thread finally exits.
func (c *Controller) IsRunning() bool {
	if c.State() != Stopped {
		return true
	}
	c.donemu.Lock()
	done := c.done
	c.donemu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (c *Controller) Frames() *FrameExchange        { return c.frames }
func (c *Controller) Notifications() *Notifications { return c.notes }

// Run starts a new session. It returns once the execution thread has
// acquired all session resources, or failed to.
func (c *Controller) Run() error {
	c.cmdmu.Lock()
	defer c.cmdmu.Unlock()

	if st := c.State(); st != Stopped {
		return &AlreadyRunningError{State: st}
	}
	if c.done != nil {
		select {
		case <-c.done:
		default:
			return &StartupError{Resource: "execution thread", Err: errThreadAlive}
		}
	}

	quit := make(chan struct{})
	wake := make(chan struct{}, 1)
	done := make(chan struct{})
	started := make(chan error, 1)

	c.inputs.clear()
	c.reset.Store(false)
	c.donemu.Lock()
	c.done = done
	c.donemu.Unlock()
	go c.execute(quit, wake, done, started)

	if err := <-started; err != nil {
		<-done
		log.ModSession.WarnZ("session startup failed").Error("err", err).End()
		return err
	}

	c.quit, c.wake = quit, wake
	c.state.Store(int32(Running))
	log.ModSession.InfoZ("session started").End()
	c.notes.Post(SessionStarted)
	return nil
}

// Pause suspends a running session at the end of the current frame.
func (c *Controller) Pause() {
	c.cmdmu.Lock()
	defer c.cmdmu.Unlock()

	if !c.state.CompareAndSwap(int32(Running), int32(Paused)) {
		return
	}
	log.ModSession.InfoZ("session paused").End()
	c.notes.Post(SessionPaused)
}

// Unpause resumes a paused session.
func (c *Controller) Unpause() {
	c.cmdmu.Lock()
	defer c.cmdmu.Unlock()

	if !c.state.CompareAndSwap(int32(Paused), int32(Running)) {
		return
	}
	select {
	case c.wake <- struct{}{}:
	default:
	}
	log.ModSession.InfoZ("session resumed").End()
	c.notes.Post(SessionResumed)
}

// Stop ends the session and waits for the execution thread to release the
// session resources. If that takes longer than the shutdown timeout, the
// session is still considered stopped but a *ShutdownTimeoutError is
// returned, and no new session can start until the thread exits.
func (c *Controller) Stop() error {
	c.cmdmu.Lock()
	defer c.cmdmu.Unlock()

	if c.State() == Stopped {
		return nil
	}
	c.state.Store(int32(Stopped))
	close(c.quit)

	defer c.notes.Post(SessionStopped)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-c.done:
		log.ModSession.InfoZ("session stopped").End()
		return nil
	case <-timer.C:
		err := &ShutdownTimeoutError{Timeout: c.timeout}
		log.ModSession.ErrorZ("execution thread is stuck").Duration("timeout", c.timeout).End()
		return err
	}
}

// Reset requests a reset of the core, performed before the next frame.
func (c *Controller) Reset() {
	c.cmdmu.Lock()
	defer c.cmdmu.Unlock()

	if c.State() == Stopped {
		return
	}
	c.reset.Store(true)
	c.notes.Post(SessionReset)
}

// SetLimitFPS enables or disables the frame rate limiter.
func (c *Controller) SetLimitFPS(limit bool) {
	if c.limitFPS.Swap(limit) != limit {
		c.notes.Post(LimitFPSChanged)
	}
}

func (c *Controller) LimitFPS() bool { return c.limitFPS.Load() }

func (c *Controller) InjectTouch(x, y int) {
	c.inputs.push(inputEvent{kind: touchMove, x: x, y: y})
}

func (c *Controller) ReleaseTouch() {
	c.inputs.push(inputEvent{kind: touchRelease})
}

func (c *Controller) InjectKey(k input.Key, pressed bool) {
	kind := keyRelease
	if pressed {
		kind = keyPress
	}
	c.inputs.push(inputEvent{kind: kind, key: k})
}

// execute is the body of the execution thread.
func (c *Controller) execute(quit <-chan struct{}, wake <-chan struct{}, done chan<- struct{}, started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	release, err := c.acquire()
	started <- err
	if err != nil {
		return
	}
	defer release()

	c.loop(quit, wake)
	log.ModSession.DebugZ("execution loop exited").End()
}

// acquire starts the core then opens the session resources. On failure,
// whatever was acquired is released before returning.
func (c *Controller) acquire() (release func(), err error) {
	if err := c.core.Start(); err != nil {
		return nil, &StartupError{Resource: "core", Err: err}
	}

	var opened []Resource
	release = func() {
		for _, r := range slices.Backward(opened) {
			if err := r.Close(); err != nil {
				log.ModSession.WarnZ("failed to release resource").
					String("resource", r.Name()).
					Error("err", err).
					End()
			}
		}
		if err := c.core.Close(); err != nil {
			log.ModSession.WarnZ("failed to close core").Error("err", err).End()
		}
	}

	for _, r := range c.resources {
		if err := r.Open(); err != nil {
			release()
			return nil, &StartupError{Resource: r.Name(), Err: err}
		}
		opened = append(opened, r)
		log.ModSession.DebugZ("resource acquired").String("resource", r.Name()).End()
	}
	return release, nil
}

func (c *Controller) loop(quit <-chan struct{}, wake <-chan struct{}) {
	var (
		events []inputEvent
		lim    = newLimiter(FrameRate)
		meter  fpsMeter
	)

	for {
		select {
		case <-quit:
			return
		default:
		}

		if c.State() == Paused {
			select {
			case <-wake:
			case <-quit:
				return
			}
			// Don't account for the time spent paused.
			lim.restart()
			meter.reset()
			continue
		}

		if c.reset.CompareAndSwap(true, false) {
			log.ModSession.InfoZ("performing reset").End()
			c.core.Reset()
		}

		events = c.inputs.drain(events[:0])
		for _, ev := range events {
			ev.dispatch(c.core)
		}

		c.core.ProduceFrame(c.frames.Back())
		c.frames.Publish()
		c.notes.Post(FrameRendered)

		now := time.Now()
		if fps, ok := meter.frame(now); ok {
			c.notes.SetTitle(fps)
		}
		if c.limitFPS.Load() {
			lim.wait(now)
		} else {
			lim.restart()
		}
	}
}
