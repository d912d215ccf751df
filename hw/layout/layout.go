// Package layout computes where the two emulated screens are drawn in the
// viewport, and how viewport points map back to screen pixels.
package layout

import (
	"math"

	"dsfront/emu/log"
)

// Native resolution of each emulated screen.
const (
	NativeWidth  = 256
	NativeHeight = 192
)

// Screen identifies one of the two emulated screens.
type Screen int

const (
	Top Screen = iota
	Bottom
)

func (s Screen) String() string {
	if s == Top {
		return "top"
	}
	return "bottom"
}

// AutoThreshold is the factor by which the viewport aspect ratio must exceed
// the evenly sized layout aspect ratio, along the axis across the stacking
// axis, for the Auto sizing mode to emphasize the top screen.
const AutoThreshold = 1.5

// A Layout is the placement of both screens for a given configuration and
// viewport. It is computed as a whole and must be replaced as a whole.
type Layout struct {
	Config Config

	Width, Height       int // viewport size
	MinWidth, MinHeight int // smallest viewport holding both screens at scale 1

	Screens [2]Transform // indexed by Screen
	Scales  [2]float64   // indexed by Screen
	Sizing  Sizing       // sizing mode actually applied
}

// MinSize returns the smallest viewport that fits both screens at scale 1.
func (l Layout) MinSize() (w, h int) { return l.MinWidth, l.MinHeight }

// Bounds returns the viewport rectangle covered by a screen.
func (l Layout) Bounds(s Screen) Rect { return l.Screens[s].Bounds() }

// stackedVertically reports whether the screens are stacked along the y axis.
func stackedVertically(mode Mode, q int) bool {
	switch mode {
	case Vertical:
		return true
	case Horizontal:
		return false
	}
	return q%2 == 0
}

// MinSize returns the smallest viewport that fits both screens at scale 1,
// plus the gap, for the given configuration.
func MinSize(cfg Config) (w, h int) {
	q := cfg.Rotation.quarterTurns()
	fw, fh := NativeWidth, NativeHeight
	if q%2 == 1 {
		fw, fh = fh, fw
	}
	gap := max(cfg.Gap, 0)
	if stackedVertically(cfg.Mode, q) {
		return fw, 2*fh + gap
	}
	return 2*fw + gap, fh
}

// Compute returns the screen transforms for cfg in a viewport of size w×h.
//
// Compute never fails: a viewport smaller than the minimum size yields
// transforms with a scale below 1, a non-positive dimension is treated as 1.
func Compute(cfg Config, w, h int) Layout {
	w, h = max(w, 1), max(h, 1)

	q := cfg.Rotation.quarterTurns()
	vertical := stackedVertically(cfg.Mode, q)

	// Screen footprint once rotated.
	fw, fh := float64(NativeWidth), float64(NativeHeight)
	if q%2 == 1 {
		fw, fh = fh, fw
	}

	// Work in stacking axis terms: d and c are a screen's length along and
	// across the stacking axis, L and C the viewport's.
	d, c := fh, fw
	L, C := float64(h), float64(w)
	if !vertical {
		d, c = fw, fh
		L, C = float64(w), float64(h)
	}
	gap := float64(max(cfg.Gap, 0))

	// Each screen extends from the seam by half the gap plus its own length.
	e := d + gap/2

	// The upside-down and clockwise orientations put the bottom screen first.
	topFirst := (q == 1 || q == 2) == cfg.SwapScreens
	first, second := Top, Bottom
	if !topFirst {
		first, second = Bottom, Top
	}

	sizing := cfg.Sizing
	if sizing == Auto {
		sizing = autoSizing(C/L, c/(2*e))
	}

	var scales [2]float64
	applied := sizing
	switch sizing {
	case EmphasizeTop, EmphasizeBottom:
		prim, sec := Top, Bottom
		if sizing == EmphasizeBottom {
			prim, sec = Bottom, Top
		}
		ps, ss, ok := emphasize(L, C, e, c, cfg.IntegerScaling)
		if ok {
			scales[prim], scales[sec] = ps, ss
			break
		}
		applied = Even
		fallthrough
	default:
		s := intScale(math.Min(C/c, L/(2*e)), cfg.IntegerScaling)
		scales = [2]float64{s, s}
	}

	// Bounding box, in stacking axis coordinates centered on the seam.
	stackMin := -scales[first] * e
	stackMax := scales[second] * e
	tStack := L/2 - (stackMin+stackMax)/2
	tCross := C / 2

	var tx, ty float64
	if vertical {
		tx, ty = tCross, tStack
	} else {
		tx, ty = tStack, tCross
	}

	l := Layout{
		Config: cfg,
		Width:  w,
		Height: h,
		Scales: scales,
		Sizing: applied,
	}
	l.MinWidth, l.MinHeight = MinSize(cfg)

	for _, scr := range []Screen{first, second} {
		sign := 1.0
		if scr == first {
			sign = -1
		}
		sep := sign * (d + gap) / 2

		var sx, sy float64
		if vertical {
			sy = sep
		} else {
			sx = sep
		}

		s := scales[scr]
		l.Screens[scr] = Transform{
			Fwd: compose(
				translation(-NativeWidth/2, -NativeHeight/2),
				rotation(q),
				translation(sx, sy),
				scaling(s),
				translation(tx, ty),
			),
			Inv: compose(
				translation(-tx, -ty),
				scaling(1/s),
				translation(-sx, -sy),
				rotation(4-q),
				translation(NativeWidth/2, NativeHeight/2),
			),
		}
	}

	log.ModLayout.DebugZ("layout computed").
		Int("w", w).Int("h", h).
		Stringer("mode", cfg.Mode).
		Stringer("sizing", applied).
		Int("rotation", int(cfg.Rotation)).
		Float("top_scale", scales[Top]).
		Float("bottom_scale", scales[Bottom]).
		End()

	return l
}

// autoSizing picks the sizing mode for Auto. viewAspect and evenAspect are
// the viewport and evenly sized layout ratios, across over along the
// stacking axis. Even is used unless the viewport has much more room across
// the stacking axis than an even layout uses, in which case the top screen
// gets the extra room.
func autoSizing(viewAspect, evenAspect float64) Sizing {
	if viewAspect > evenAspect*AutoThreshold {
		return EmphasizeTop
	}
	return Even
}

// emphasize computes the primary and secondary screen scales. The primary
// screen takes as much room as possible while leaving room for the
// secondary at native size, the secondary then gets what's left. ok is false
// if the viewport can't hold both screens at scale 1 or more.
func emphasize(L, C, e, c float64, integer bool) (prim, sec float64, ok bool) {
	prim = math.Min(C/c, (L-e)/e)
	if prim < 1 {
		return 0, 0, false
	}
	prim = intScale(prim, integer)
	sec = intScale(math.Min(C/c, (L-prim*e)/e), integer)
	return prim, sec, true
}

// intScale floors s when integer scaling is requested. Scales below 1 are
// kept as-is since flooring them would collapse the screen.
func intScale(s float64, integer bool) float64 {
	if integer && s >= 1 {
		return math.Floor(s)
	}
	return s
}
