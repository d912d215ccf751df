// Package democore implements a small emulated machine exercising both
// screens: an animated top screen reacting to the handheld keys, and a paint
// canvas on the touch screen, kept in a save file between sessions.
package democore

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"dsfront/emu"
	"dsfront/emu/log"
	"dsfront/hw/input"
	"dsfront/hw/layout"
)

// AudioSink receives mono 16-bit samples.
type AudioSink interface {
	Queue(samples []int16)
}

var palette = []color.RGBA{
	{0x10, 0x10, 0x10, 0xff},
	{0xe0, 0x30, 0x30, 0xff},
	{0x30, 0xa0, 0x40, 0xff},
	{0x30, 0x60, 0xe0, 0xff},
	{0xf0, 0xc0, 0x20, 0xff},
}

var paper = color.RGBA{0xf4, 0xf0, 0xe6, 0xff}

// Core is the demo machine. It implements emu.Core.
type Core struct {
	save  *saveFile
	audio AudioSink
	click *clicker

	canvas *image.RGBA
	frame  uint64
	keys   [input.KeyCount]bool
	brush  int

	touching bool
	pen      image.Point
}

// New returns a demo core persisting its canvas at savePath. If savePath is
// empty, the canvas isn't persisted. audio may be nil.
func New(savePath string, audio AudioSink, sampleRate int) *Core {
	c := &Core{
		save:   &saveFile{path: savePath},
		audio:  audio,
		canvas: image.NewRGBA(image.Rect(0, 0, layout.NativeWidth, layout.NativeHeight)),
	}
	if audio != nil {
		c.click = newClicker(sampleRate)
	}
	return c
}

func (c *Core) Start() error {
	c.frame = 0
	c.keys = [input.KeyCount]bool{}
	c.touching = false
	c.clear()
	return c.save.open(c.canvas)
}

func (c *Core) Close() error {
	return c.save.close(c.canvas)
}

func (c *Core) Reset() {
	c.frame = 0
	c.brush = 0
	c.keys = [input.KeyCount]bool{}
	c.touching = false
	if c.click != nil {
		c.click.reset()
	}
}

func (c *Core) clear() {
	draw.Draw(c.canvas, c.canvas.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
}

func (c *Core) InjectTouch(x, y int) {
	p := image.Pt(x, y)
	if !c.touching {
		c.touching = true
		c.pen = p
		c.plot(p)
		if c.click != nil {
			c.click.start()
		}
		return
	}
	c.line(c.pen, p)
	c.pen = p
}

func (c *Core) ReleaseTouch() { c.touching = false }

func (c *Core) InjectKey(k input.Key, pressed bool) {
	if k >= input.KeyCount {
		return
	}
	if pressed && !c.keys[k] {
		switch k {
		case input.KeyA:
			c.brush = (c.brush + 1) % len(palette)
		case input.KeyB:
			c.brush = (c.brush + len(palette) - 1) % len(palette)
		case input.KeySelect:
			c.clear()
			log.ModEmu.DebugZ("canvas cleared").End()
		}
	}
	c.keys[k] = pressed
}

// plot draws a 3x3 dot centered on p.
func (c *Core) plot(p image.Point) {
	r := image.Rect(p.X-1, p.Y-1, p.X+2, p.Y+2).Intersect(c.canvas.Bounds())
	draw.Draw(c.canvas, r, image.NewUniform(palette[c.brush]), image.Point{}, draw.Src)
}

// line draws from p0 to p1 with Bresenham's algorithm.
func (c *Core) line(p0, p1 image.Point) {
	dx, dy := abs(p1.X-p0.X), -abs(p1.Y-p0.Y)
	sx, sy := sign(p1.X-p0.X), sign(p1.Y-p0.Y)
	err := dx + dy
	for {
		c.plot(p0)
		if p0 == p1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p0.X += sx
		}
		if e2 <= dx {
			err += dx
			p0.Y += sy
		}
	}
}

func (c *Core) ProduceFrame(fp *emu.FramePair) {
	c.frame++
	c.drawTop(fp.Top())
	c.drawBottom(fp.Bottom())
	if c.click != nil {
		c.audio.Queue(c.click.frame())
	}
}

// drawTop renders a scrolling plasma, with one indicator per pressed key.
func (c *Core) drawTop(img *image.RGBA) {
	t := float64(c.frame) / emu.FrameRate
	for y := range layout.NativeHeight {
		row := img.Pix[y*img.Stride:]
		for x := range layout.NativeWidth {
			v := math.Sin(float64(x)/16+t) + math.Sin(float64(y)/12-t*1.3) + math.Sin(float64(x+y)/24+t*0.7)
			i := x * 4
			row[i+0] = uint8(128 + 40*v)
			row[i+1] = uint8(96 + 30*math.Sin(v+t))
			row[i+2] = uint8(160 - 30*v)
			row[i+3] = 0xff
		}
	}

	const size, pad = 12, 4
	for k, pressed := range c.keys {
		x := pad + k*(size+pad)
		r := image.Rect(x, pad, x+size, pad+size)
		col := color.RGBA{0x20, 0x20, 0x20, 0xff}
		if pressed {
			col = color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
	}
}

// drawBottom renders the canvas and the current brush color in the corner.
func (c *Core) drawBottom(img *image.RGBA) {
	draw.Copy(img, image.Point{}, c.canvas, c.canvas.Bounds(), draw.Src, nil)
	r := image.Rect(layout.NativeWidth-12, 4, layout.NativeWidth-4, 12)
	draw.Draw(img, r, image.NewUniform(palette[c.brush]), image.Point{}, draw.Src)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
