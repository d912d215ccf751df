package emu

import (
	"image"
	"sync"

	"dsfront/hw/layout"
)

// FramePair holds the content of both screens for one frame, indexed by
// layout.Screen.
type FramePair struct {
	Screens [2]*image.RGBA

	// Seq is the sequence number of the frame, starting at 1.
	Seq uint64
}

func NewFramePair() *FramePair {
	r := image.Rect(0, 0, layout.NativeWidth, layout.NativeHeight)
	return &FramePair{
		Screens: [2]*image.RGBA{image.NewRGBA(r), image.NewRGBA(r)},
	}
}

func (fp *FramePair) Top() *image.RGBA    { return fp.Screens[layout.Top] }
func (fp *FramePair) Bottom() *image.RGBA { return fp.Screens[layout.Bottom] }

// FrameExchange hands frames from the execution thread to the interactive
// thread through three buffers: the producer writes into the back buffer,
// the consumer reads from the front buffer, and the last published frame
// waits in between. Neither side ever sees a buffer the other is using.
type FrameExchange struct {
	mu    sync.Mutex
	bufs  [3]*FramePair
	back  int
	ready int
	front int
	fresh bool // ready holds a frame not yet acquired
	seq   uint64
}

func NewFrameExchange() *FrameExchange {
	return &FrameExchange{
		bufs:  [3]*FramePair{NewFramePair(), NewFramePair(), NewFramePair()},
		back:  0,
		ready: 1,
		front: 2,
	}
}

// Back returns the buffer the producer should render the next frame into.
// Only the producer may call Back and Publish.
func (fx *FrameExchange) Back() *FramePair {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	return fx.bufs[fx.back]
}

// Publish makes the back buffer the latest frame, replacing a previously
// published frame that hasn't been acquired yet.
func (fx *FrameExchange) Publish() {
	fx.mu.Lock()
	fx.seq++
	fx.bufs[fx.back].Seq = fx.seq
	fx.back, fx.ready = fx.ready, fx.back
	fx.fresh = true
	fx.mu.Unlock()
}

// Acquire returns the most recent published frame, and whether it's newer
// than the one returned by the previous call. The returned frame stays valid
// until the next call to Acquire.
func (fx *FrameExchange) Acquire() (*FramePair, bool) {
	fx.mu.Lock()
	defer fx.mu.Unlock()

	if !fx.fresh {
		return fx.bufs[fx.front], false
	}
	fx.front, fx.ready = fx.ready, fx.front
	fx.fresh = false
	return fx.bufs[fx.front], true
}
