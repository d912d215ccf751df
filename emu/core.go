package emu

import "dsfront/hw/input"

// Core is the emulated machine, as seen by the session controller. All
// methods but Start are called from the execution thread, between frames,
// once Start has succeeded.
type Core interface {
	// Start acquires the resources the core needs for a session.
	Start() error

	// ProduceFrame runs the machine for one frame and renders both screens
	// into fp. fp may hold any previous frame: every pixel must be written.
	ProduceFrame(fp *FramePair)

	InjectTouch(x, y int)
	ReleaseTouch()
	InjectKey(k input.Key, pressed bool)

	Reset()

	// Close releases what Start acquired.
	Close() error
}

// A Resource is acquired by the execution thread when a session starts, after
// the core, and released when it ends, before the core.
type Resource interface {
	Name() string
	Open() error
	Close() error
}
