package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"dsfront/emu"
	"dsfront/hw/layout"
)

var background = image.NewUniform(color.RGBA{0, 0, 0, 0xff})

// rasterBackend composites both screens into a viewport sized image on the
// CPU, and hands it to a Presenter.
type rasterBackend struct {
	host Host
	pres Presenter // nil without host
	img  *image.RGBA

	overlay *image.RGBA
}

func newRasterBackend(host Host) *rasterBackend {
	return &rasterBackend{host: host}
}

func (*rasterBackend) Kind() Kind { return Raster }

func (b *rasterBackend) Init(w, h int) error {
	w, h = max(w, 1), max(h, 1)
	if b.host != nil {
		pres, err := b.host.NewPresenter(w, h)
		if err != nil {
			return err
		}
		b.pres = pres
	}
	b.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}

func (b *rasterBackend) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r := image.Rect(0, 0, w, h); r != b.img.Rect {
		b.img = image.NewRGBA(r)
	}
	if b.pres != nil {
		if err := b.pres.Resize(w, h); err != nil {
			logErr("presenter resize", err)
		}
	}
}

// Image returns the last composited viewport.
func (b *rasterBackend) Image() *image.RGBA { return b.img }

func (b *rasterBackend) RenderFrame(fp *emu.FramePair, l layout.Layout, filtering bool) error {
	draw.Draw(b.img, b.img.Rect, background, image.Point{}, draw.Src)

	var interp draw.Transformer = draw.NearestNeighbor
	if filtering {
		interp = draw.ApproxBiLinear
	}

	// Screens never overlap so they can be composited concurrently.
	var g errgroup.Group
	for s := range fp.Screens {
		src := fp.Screens[s]
		fwd := l.Screens[s].Fwd
		g.Go(func() error {
			interp.Transform(b.img, fwd, src, src.Rect, draw.Src, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if b.overlay != nil {
		draw.Draw(b.img, overlayRect(b.overlay.Rect.Size()), b.overlay, image.Point{}, draw.Over)
	}

	if b.pres == nil {
		return nil
	}
	return b.pres.Present(b.img)
}

func (b *rasterBackend) SetOverlay(img *image.RGBA) { b.overlay = img }

func (b *rasterBackend) Shutdown() {
	if b.pres != nil {
		b.pres.Close()
		b.pres = nil
	}
	b.img = nil
}
