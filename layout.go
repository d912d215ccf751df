package main

import (
	"io"

	"github.com/go-faster/jx"

	"dsfront/hw/layout"
)

// layoutMain prints the layout computed for the viewport given on the
// command line.
func layoutMain(args LayoutCmd, cfg layout.Config, w io.Writer) error {
	args.Layout.apply(&cfg)
	if err := cfg.Check(); err != nil {
		return err
	}
	_, err := w.Write(encodeLayout(layout.Compute(cfg, args.Width, args.Height)))
	return err
}

func encodeLayout(l layout.Layout) []byte {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(2)

	e.Obj(func(e *jx.Encoder) {
		e.Field("viewport", func(e *jx.Encoder) { encodeSize(e, l.Width, l.Height) })
		e.Field("min_size", func(e *jx.Encoder) { encodeSize(e, l.MinWidth, l.MinHeight) })
		e.Field("mode", func(e *jx.Encoder) { e.Str(l.Config.Mode.String()) })
		e.Field("sizing", func(e *jx.Encoder) { e.Str(l.Sizing.String()) })
		e.Field("rotation", func(e *jx.Encoder) { e.Int(int(l.Config.Rotation)) })
		e.Field("screens", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, s := range []layout.Screen{layout.Top, layout.Bottom} {
					encodeScreen(e, l, s)
				}
			})
		})
	})

	out := append([]byte(nil), e.Bytes()...)
	return append(out, '\n')
}

func encodeSize(e *jx.Encoder, w, h int) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("width", func(e *jx.Encoder) { e.Int(w) })
		e.Field("height", func(e *jx.Encoder) { e.Int(h) })
	})
}

func encodeScreen(e *jx.Encoder, l layout.Layout, s layout.Screen) {
	r := l.Bounds(s)
	e.Obj(func(e *jx.Encoder) {
		e.Field("screen", func(e *jx.Encoder) { e.Str(s.String()) })
		e.Field("scale", func(e *jx.Encoder) { e.Float64(l.Scales[s]) })
		e.Field("bounds", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range []float64{r.X0, r.Y0, r.X1, r.Y1} {
					e.Float64(v)
				}
			})
		})
		e.Field("transform", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range l.Screens[s].Fwd {
					e.Float64(v)
				}
			})
		})
	})
}
