package render

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"dsfront/hw/layout"
)

func TestOSDExpiry(t *testing.T) {
	var osd OSD
	t0 := time.Unix(1000, 0)

	if osd.Image(t0) != nil {
		t.Fatal("empty OSD has an image")
	}

	osd.Show("Paused", t0)
	if got := osd.Text(t0.Add(OSDDuration - time.Millisecond)); got != "Paused" {
		t.Errorf("Text before expiry = %q, want Paused", got)
	}
	if osd.Image(t0.Add(OSDDuration)) != nil {
		t.Error("notice still visible after OSDDuration")
	}

	// A new notice restarts the delay.
	osd.Show("Resumed", t0.Add(time.Second))
	if got := osd.Text(t0.Add(OSDDuration)); got != "Resumed" {
		t.Errorf("Text = %q, want Resumed", got)
	}
	osd.Hide()
	if osd.Image(t0.Add(time.Second)) != nil {
		t.Error("notice visible after Hide")
	}
}

func TestRasterOverlay(t *testing.T) {
	b, err := New(Raster, nil, "", 256, 384)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Shutdown()

	var osd OSD
	now := time.Now()
	osd.Show("Reset", now)
	notice := osd.Image(now)
	b.SetOverlay(notice)

	l := layout.Compute(layout.Config{}, 256, 384)
	if err := b.RenderFrame(testFrame(), l, false); err != nil {
		t.Fatal(err)
	}
	img := b.(*rasterBackend).Image()
	r := overlayRect(notice.Rect.Size())

	// The box corner is padding: translucent black over the top screen.
	if got := img.RGBAAt(r.Min.X, r.Min.Y); got.R == 0 || got.R >= red.R || got.A != 0xff {
		t.Errorf("box corner = %v, want darkened red", got)
	}
	if got := img.RGBAAt(r.Max.X+1, r.Min.Y); got != red {
		t.Errorf("pixel right of the box = %v, want %v", got, red)
	}

	white := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R == 0xff && c.G == 0xff && c.B == 0xff {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("no text drawn in the notice box")
	}

	// Removing the overlay restores the screen.
	b.SetOverlay(nil)
	if err := b.RenderFrame(testFrame(), l, false); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(r.Min.X, r.Min.Y); got != red {
		t.Errorf("box corner without overlay = %v, want %v", got, red)
	}
}

func TestOverlayMatrix(t *testing.T) {
	const w, h = 800, 600
	size := image.Pt(120, 21)
	m := overlayMatrix(size, w, h)
	r := overlayRect(size)
	opt := cmpopts.EquateApprox(0, 1e-4)

	corners := []struct {
		uv [2]float64
		px image.Point
	}{
		{[2]float64{0, 0}, r.Min},
		{[2]float64{1, 0}, image.Pt(r.Max.X, r.Min.Y)},
		{[2]float64{1, 1}, r.Max},
		{[2]float64{0, 1}, image.Pt(r.Min.X, r.Max.Y)},
	}
	for _, c := range corners {
		u, v := c.uv[0], c.uv[1]
		got := [2]float64{
			float64(m[0])*u + float64(m[3])*v + float64(m[6]),
			float64(m[1])*u + float64(m[4])*v + float64(m[7]),
		}
		want := [2]float64{2*float64(c.px.X)/w - 1, 1 - 2*float64(c.px.Y)/h}
		if diff := cmp.Diff(want, got, opt); diff != "" {
			t.Errorf("uv %v: NDC mismatch (-want +got):\n%s", c.uv, diff)
		}
	}
}
