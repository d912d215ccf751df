package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// A Key identifies a button of the emulated handheld.
type Key uint8

const (
	KeyA Key = iota
	KeyB
	KeySelect
	KeyStart
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyR
	KeyL
	KeyX
	KeyY

	KeyCount
)

var keyNames = [KeyCount]string{
	"A", "B",
	"Select", "Start",
	"Right", "Left", "Up", "Down",
	"R", "L",
	"X", "Y",
}

func (k Key) String() string {
	if k < KeyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Config holds the host input bound to each handheld key.
type Config struct {
	Keys [KeyCount]Code `toml:"keys"`
}

// DefaultConfig returns the default keyboard bindings.
func DefaultConfig() Config {
	var cfg Config
	cfg.Keys[KeyA] = KeyCode(sdl.SCANCODE_X)
	cfg.Keys[KeyB] = KeyCode(sdl.SCANCODE_Z)
	cfg.Keys[KeySelect] = KeyCode(sdl.SCANCODE_RSHIFT)
	cfg.Keys[KeyStart] = KeyCode(sdl.SCANCODE_RETURN)
	cfg.Keys[KeyRight] = KeyCode(sdl.SCANCODE_RIGHT)
	cfg.Keys[KeyLeft] = KeyCode(sdl.SCANCODE_LEFT)
	cfg.Keys[KeyUp] = KeyCode(sdl.SCANCODE_UP)
	cfg.Keys[KeyDown] = KeyCode(sdl.SCANCODE_DOWN)
	cfg.Keys[KeyR] = KeyCode(sdl.SCANCODE_W)
	cfg.Keys[KeyL] = KeyCode(sdl.SCANCODE_Q)
	cfg.Keys[KeyX] = KeyCode(sdl.SCANCODE_S)
	cfg.Keys[KeyY] = KeyCode(sdl.SCANCODE_A)
	return cfg
}

// lookup returns the key bound to c.
func (cfg *Config) lookup(c Code) (Key, bool) {
	for k, bound := range cfg.Keys {
		if bound.Source != Unbound && bound == c {
			return Key(k), true
		}
	}
	return 0, false
}

// A KeySink receives handheld key transitions.
type KeySink interface {
	InjectKey(k Key, pressed bool)
}

// Translator turns SDL keyboard and game controller events into handheld key
// transitions, according to a Config.
type Translator struct {
	cfg   Config
	ctrls *GameControllers
	sink  KeySink

	// axis directions currently beyond AxisThreshold.
	axes map[Code]bool
}

// NewTranslator returns a Translator forwarding to sink. ctrls may be nil, in
// which case controller events are not translated.
func NewTranslator(cfg Config, ctrls *GameControllers, sink KeySink) *Translator {
	return &Translator{
		cfg:   cfg,
		ctrls: ctrls,
		sink:  sink,
		axes:  make(map[Code]bool),
	}
}

// Translate forwards the key transition corresponding to ev, if any, and
// reports whether ev was consumed.
func (t *Translator) Translate(ev sdl.Event) bool {
	switch e := ev.(type) {
	case sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return false
		}
		return t.forward(KeyCode(e.Keysym.Scancode), e.State == sdl.PRESSED)

	case sdl.ControllerButtonEvent:
		guid := t.ctrls.GUID(e.Which)
		if guid == "" {
			return false
		}
		c := Code{
			Source:     ControllerButton,
			CtrlGUID:   guid,
			CtrlButton: sdl.GameControllerButton(e.Button),
		}
		return t.forward(c, e.State == sdl.PRESSED)

	case sdl.ControllerAxisEvent:
		guid := t.ctrls.GUID(e.Which)
		if guid == "" {
			return false
		}
		consumed := false
		for _, dir := range [2]int16{1, -1} {
			c := Code{
				Source:      ControllerAxis,
				CtrlGUID:    guid,
				CtrlAxis:    sdl.GameControllerAxis(e.Axis),
				CtrlAxisDir: dir,
			}
			held := int32(e.Value)*int32(dir) >= AxisThreshold
			if held == t.axes[c] {
				continue
			}
			t.axes[c] = held
			if t.forward(c, held) {
				consumed = true
			}
		}
		return consumed
	}
	return false
}

func (t *Translator) forward(c Code, pressed bool) bool {
	k, ok := t.cfg.lookup(c)
	if !ok {
		return false
	}
	t.sink.InjectKey(k, pressed)
	return true
}
