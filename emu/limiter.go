package emu

import (
	"fmt"
	"time"
)

// FrameRate is the refresh rate of the emulated screens.
const FrameRate = 59.8261

// limiter paces the execution thread to a fixed frame rate. Sleep overshoot
// is carried over to the next frame so the average rate stays on target.
type limiter struct {
	period time.Duration
	next   time.Time
}

func newLimiter(fps float64) *limiter {
	return &limiter{period: time.Duration(float64(time.Second) / fps)}
}

// wait blocks until the next frame is due. When the emulation is too slow,
// it doesn't try to catch up.
func (l *limiter) wait(now time.Time) {
	if l.next.IsZero() || now.Sub(l.next) > l.period {
		l.next = now
	}
	l.next = l.next.Add(l.period)
	if d := l.next.Sub(now); d > 0 {
		time.Sleep(d)
	}
}

func (l *limiter) restart() { l.next = time.Time{} }

// fpsMeter counts frames and reports the frame rate once per second.
type fpsMeter struct {
	start  time.Time
	frames int
}

// frame records a frame and returns the frame rate text, if it's time to
// update it.
func (m *fpsMeter) frame(now time.Time) (string, bool) {
	if m.start.IsZero() {
		m.start = now
	}
	m.frames++
	elapsed := now.Sub(m.start)
	if elapsed < time.Second {
		return "", false
	}
	fps := float64(m.frames) / elapsed.Seconds()
	m.start, m.frames = now, 0
	return fmt.Sprintf("FPS: %.0f", fps), true
}

func (m *fpsMeter) reset() { *m = fpsMeter{} }
