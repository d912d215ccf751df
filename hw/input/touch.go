package input

import (
	"image"
	"math"

	"dsfront/emu/log"
	"dsfront/hw/layout"
)

// A TouchSink receives touch screen input, in bottom screen native pixels.
type TouchSink interface {
	InjectTouch(x, y int)
	ReleaseTouch()
}

// TouchLatch records whether a press started on the touch screen and is still
// held, and the last forwarded position.
type TouchLatch struct {
	Active bool
	Last   image.Point
}

// TouchMapper maps pointer events in viewport pixels to touch screen input.
//
// A press only starts a touch when it lands on the bottom screen. Once a
// touch has started, the pointer may leave the screen: positions are then
// clamped to the screen edges until the button is released.
type TouchMapper struct {
	sink   TouchSink
	bottom layout.Transform
	latch  TouchLatch
}

// NewTouchMapper returns a TouchMapper forwarding touch input to sink.
func NewTouchMapper(sink TouchSink, l layout.Layout) *TouchMapper {
	return &TouchMapper{
		sink:   sink,
		bottom: l.Screens[layout.Bottom],
	}
}

// SetLayout replaces the transforms used to map pointer positions. The latch
// is preserved: a drag in progress continues with the new mapping.
func (m *TouchMapper) SetLayout(l layout.Layout) {
	m.bottom = l.Screens[layout.Bottom]
}

// Latch returns the current latch state.
func (m *TouchMapper) Latch() TouchLatch { return m.latch }

// toScreen maps p from the viewport to the bottom screen native pixel grid.
func (m *TouchMapper) toScreen(p image.Point) (int, int) {
	// Sample the pixel center.
	x, y := m.bottom.Invert(float64(p.X)+0.5, float64(p.Y)+0.5)
	return int(math.Floor(x)), int(math.Floor(y))
}

// Down handles a primary button press at p and reports whether it started a
// touch.
func (m *TouchMapper) Down(p image.Point) bool {
	x, y := m.toScreen(p)
	if x < 0 || x >= layout.NativeWidth || y < 0 || y >= layout.NativeHeight {
		return false
	}

	m.latch = TouchLatch{Active: true, Last: image.Pt(x, y)}
	m.sink.InjectTouch(x, y)

	log.ModInput.DebugZ("touch down").
		Int("x", x).
		Int("y", y).
		End()
	return true
}

// Move handles a pointer motion to p. It's ignored unless a touch is active.
func (m *TouchMapper) Move(p image.Point) {
	if !m.latch.Active {
		return
	}

	x, y := m.toScreen(p)
	x = min(max(x, 0), layout.NativeWidth-1)
	y = min(max(y, 0), layout.NativeHeight-1)
	m.latch.Last = image.Pt(x, y)
	m.sink.InjectTouch(x, y)
}

// Motion handles a pointer motion to p, with held reporting whether the
// primary button is still down. A release missed by the event stream ends
// the touch here.
func (m *TouchMapper) Motion(p image.Point, held bool) {
	if !held {
		m.Up()
		return
	}
	m.Move(p)
}

// Up handles the primary button release, ending the active touch if any.
func (m *TouchMapper) Up() {
	if !m.latch.Active {
		return
	}
	m.latch.Active = false
	m.sink.ReleaseTouch()

	log.ModInput.DebugZ("touch up").End()
}
