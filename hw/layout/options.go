package layout

import (
	"fmt"
	"strings"
)

// Mode is the relative arrangement of the two screens.
type Mode uint8

const (
	// Natural stacks the screens vertically when upright (0° or 180°) and
	// horizontally when lying on a side (90° or 270°).
	Natural Mode = iota
	Vertical
	Horizontal

	modeCount
)

var modeNames = [modeCount]string{"natural", "vertical", "horizontal"}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode { return (m + 1) % modeCount }

func (m Mode) MarshalText() ([]byte, error) {
	if m >= modeCount {
		return nil, fmt.Errorf("invalid layout mode %d", uint8(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range modeNames {
		if s == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown layout mode %q", s)
}

// Sizing is the policy used to share the viewport between the two screens.
type Sizing uint8

const (
	Even Sizing = iota
	EmphasizeTop
	EmphasizeBottom
	Auto

	sizingCount
)

var sizingNames = [sizingCount]string{"even", "emphasize-top", "emphasize-bottom", "auto"}

func (s Sizing) String() string {
	if s < sizingCount {
		return sizingNames[s]
	}
	return fmt.Sprintf("Sizing(%d)", uint8(s))
}

// Next returns the following sizing mode, wrapping around.
func (s Sizing) Next() Sizing { return (s + 1) % sizingCount }

func (s Sizing) MarshalText() ([]byte, error) {
	if s >= sizingCount {
		return nil, fmt.Errorf("invalid sizing mode %d", uint8(s))
	}
	return []byte(sizingNames[s]), nil
}

func (s *Sizing) UnmarshalText(text []byte) error {
	str := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range sizingNames {
		if str == name {
			*s = Sizing(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sizing mode %q", str)
}

// Rotation is a clockwise rotation in degrees, one of 0, 90, 180 or 270.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

func (r Rotation) Valid() bool {
	return r == Rot0 || r == Rot90 || r == Rot180 || r == Rot270
}

// quarterTurns returns r as a number of clockwise quarter turns in [0,3].
// Angles that aren't a multiple of 90° are truncated toward the previous one.
func (r Rotation) quarterTurns() int {
	q := (int(r) / 90) % 4
	if q < 0 {
		q += 4
	}
	return q
}

// Next returns the rotation a quarter turn further clockwise.
func (r Rotation) Next() Rotation {
	return Rotation(((r.quarterTurns() + 1) % 4) * 90)
}

// MaxGap is the largest gap accepted, in native pixels.
const MaxGap = 4096

// Gaps lists the preset gap sizes, in native pixels.
var Gaps = []int{0, 1, 8, 64, 90, 128}

// NextGap returns the preset gap following gap, wrapping around.
func NextGap(gap int) int {
	for _, g := range Gaps {
		if g > gap {
			return g
		}
	}
	return Gaps[0]
}

// Config describes how the two screens are arranged in the viewport.
// A Config is a value: callers replace it as a whole.
type Config struct {
	Mode           Mode     `toml:"mode"`
	Sizing         Sizing   `toml:"sizing"`
	Rotation       Rotation `toml:"rotation"`
	Gap            int      `toml:"gap"`
	IntegerScaling bool     `toml:"integer_scaling"`
	SwapScreens    bool     `toml:"swap_screens"`
	Filtering      bool     `toml:"filtering"`
}

// Check validates the configuration.
func (cfg Config) Check() error {
	if cfg.Mode >= modeCount {
		return fmt.Errorf("invalid layout mode %d", cfg.Mode)
	}
	if cfg.Sizing >= sizingCount {
		return fmt.Errorf("invalid sizing mode %d", cfg.Sizing)
	}
	if !cfg.Rotation.Valid() {
		return fmt.Errorf("invalid rotation %d, must be one of 0, 90, 180, 270", cfg.Rotation)
	}
	if cfg.Gap < 0 || cfg.Gap > MaxGap {
		return fmt.Errorf("invalid gap %d, must be in [0, %d]", cfg.Gap, MaxGap)
	}
	return nil
}
