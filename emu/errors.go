package emu

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyRunning is matched by errors.Is for an *AlreadyRunningError.
var ErrAlreadyRunning = errors.New("emulation already running")

// AlreadyRunningError is returned when starting a session that is already
// running or paused.
type AlreadyRunningError struct {
	State State
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("emulation already running (%s)", e.State)
}

func (e *AlreadyRunningError) Is(target error) bool { return target == ErrAlreadyRunning }

// StartupError is returned when a session resource can't be acquired. The
// session is then left stopped.
type StartupError struct {
	Resource string
	Err      error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("session startup failed: %s: %v", e.Resource, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// ShutdownTimeoutError is returned when the execution thread doesn't exit in
// time after being asked to stop.
type ShutdownTimeoutError struct {
	Timeout time.Duration
}

func (e *ShutdownTimeoutError) Error() string {
	return fmt.Sprintf("execution thread did not exit within %v", e.Timeout)
}

var errThreadAlive = errors.New("previous execution thread has not exited")
