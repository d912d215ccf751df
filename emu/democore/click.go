package democore

import (
	"github.com/arl/blip"

	"dsfront/emu"
)

const (
	clickClockRate = 1 << 20 // synthesis clock, in Hz
	clickFreq      = 1760    // tone frequency, in Hz
	clickFrames    = 4       // tone duration, in frames
	clickVolume    = 6000
)

// clicker synthesizes the short square tone played when the pen touches the
// screen. Samples are band-limited by a blip buffer.
type clicker struct {
	buf *blip.Buffer
	out []int16

	clocksPerFrame int
	halfPeriod     int

	remaining int // frames left to play
	phase     int // clocks until next edge
	level     int32
}

func newClicker(sampleRate int) *clicker {
	perFrame := int(float64(sampleRate)/emu.FrameRate) + 1
	c := &clicker{
		buf:            blip.NewBuffer(perFrame * 2),
		out:            make([]int16, perFrame*2),
		clocksPerFrame: int(clickClockRate / emu.FrameRate),
		halfPeriod:     clickClockRate / clickFreq / 2,
	}
	c.buf.SetRates(clickClockRate, float64(sampleRate))
	return c
}

func (c *clicker) start() {
	c.remaining = clickFrames
}

func (c *clicker) reset() {
	c.remaining = 0
	c.phase = 0
	c.level = 0
	c.buf.Clear()
}

// frame synthesizes one frame of audio. The returned slice is only valid until
// the next call.
func (c *clicker) frame() []int16 {
	clock := 0
	if c.remaining > 0 {
		c.remaining--
		for clock = c.phase; clock < c.clocksPerFrame; clock += c.halfPeriod {
			c.toggle(clock)
		}
		c.phase = clock - c.clocksPerFrame
	} else if c.level != 0 {
		// Back to silence.
		c.buf.AddDelta(0, -c.level)
		c.level = 0
		c.phase = 0
	}
	c.buf.EndFrame(c.clocksPerFrame)

	n := min(c.buf.SamplesAvailable(), len(c.out))
	n = c.buf.ReadSamples(c.out, n, blip.Mono)
	return c.out[:n]
}

func (c *clicker) toggle(clock int) {
	next := int32(clickVolume)
	if c.level > 0 {
		next = -clickVolume
	}
	c.buf.AddDelta(uint64(clock), next-c.level)
	c.level = next
}
