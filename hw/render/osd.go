package render

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// OSDDuration is how long a notice stays on screen.
	OSDDuration = 2 * time.Second

	// Distance of the notice from the top left corner of the viewport.
	osdMargin = 8
	// Padding between the notice text and its box.
	osdPadding = 4
)

var osdBackground = image.NewUniform(color.RGBA{0, 0, 0, 0xa0})

// OSD holds the short notice drawn over the screens, such as the new layout
// after a hotkey.
type OSD struct {
	text  string
	until time.Time
	img   *image.RGBA
}

// Show displays text until OSDDuration after now, replacing the current
// notice.
func (o *OSD) Show(text string, now time.Time) {
	o.text = text
	o.until = now.Add(OSDDuration)
	o.img = noticeImage(text)
}

// Hide removes the current notice.
func (o *OSD) Hide() {
	o.text = ""
	o.img = nil
}

// Text returns the notice visible at now, or "" if there's none.
func (o *OSD) Text(now time.Time) string {
	if o.Image(now) == nil {
		return ""
	}
	return o.text
}

// Image returns the notice to draw at now, or nil once it has expired.
func (o *OSD) Image(now time.Time) *image.RGBA {
	if o.img == nil || !now.Before(o.until) {
		return nil
	}
	return o.img
}

// noticeImage renders text in white over a translucent box. Pixels are
// premultiplied by alpha, like any image.RGBA.
func noticeImage(text string) *image.RGBA {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil() + 2*osdPadding
	h := face.Height + 2*osdPadding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, osdBackground, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(osdPadding, osdPadding+face.Ascent),
	}
	d.DrawString(text)
	return img
}

// overlayRect returns where an overlay of the given size is drawn in the
// viewport.
func overlayRect(size image.Point) image.Rectangle {
	return image.Rectangle{Max: size}.Add(image.Pt(osdMargin, osdMargin))
}
