package input

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// Source is the kind of host device a Code refers to.
type Source uint8

const (
	Unbound Source = iota
	Keyboard
	ControllerButton
	ControllerAxis
)

func (s Source) String() string {
	switch s {
	case Keyboard:
		return "key"
	case ControllerButton:
		return "joy button"
	case ControllerAxis:
		return "joy axis"
	}
	return "not set"
}

// A Code identifies one host input: a keyboard key, a game controller
// button, or one direction of a game controller axis. Only the fields
// relevant to Source are meaningful.
//
// Codes marshal to and from text so they can be stored in the config file:
//
//	key W
//	joybtn a 030000004c050000cc0900
//	joyaxis righttrigger+ 030000004c050000cc0900
type Code struct {
	Scancode sdl.Scancode

	CtrlGUID    string
	CtrlButton  sdl.GameControllerButton
	CtrlAxis    sdl.GameControllerAxis
	CtrlAxisDir int16

	Source Source
}

// KeyCode returns the Code of a keyboard key.
func KeyCode(sc sdl.Scancode) Code {
	return Code{Source: Keyboard, Scancode: sc}
}

// Name returns a user-friendly name for the code.
func (c Code) Name() string {
	switch c.Source {
	case Keyboard:
		return sdl.GetScancodeName(c.Scancode)
	case ControllerButton:
		return sdl.GameControllerGetStringForButton(c.CtrlButton)
	case ControllerAxis:
		if c.CtrlAxisDir >= 0 {
			return sdl.GameControllerGetStringForAxis(c.CtrlAxis) + "+"
		}
		return sdl.GameControllerGetStringForAxis(c.CtrlAxis) + "-"
	}
	return ""
}

func (c Code) MarshalText() ([]byte, error) {
	switch c.Source {
	case Unbound:
		return nil, nil
	case Keyboard:
		return []byte("key " + c.Name()), nil
	case ControllerButton:
		return []byte("joybtn " + c.Name() + " " + c.CtrlGUID), nil
	case ControllerAxis:
		return []byte("joyaxis " + c.Name() + " " + c.CtrlGUID), nil
	}
	return nil, fmt.Errorf("invalid input source %d", c.Source)
}

func (c *Code) UnmarshalText(text []byte) error {
	fields := strings.Fields(string(text))
	if len(fields) == 0 {
		*c = Code{}
		return nil
	}

	var nc Code
	switch fields[0] {
	case "key":
		// Some scancode names contain spaces ("Left Shift").
		if len(fields) < 2 {
			return fmt.Errorf("malformed key code %q", text)
		}
		name := strings.Join(fields[1:], " ")
		nc.Scancode = sdl.GetScancodeFromName(name)
		if nc.Scancode == sdl.SCANCODE_UNKNOWN {
			return fmt.Errorf("unrecognized key %q", name)
		}
		nc.Source = Keyboard

	case "joybtn":
		if len(fields) != 3 {
			return fmt.Errorf("malformed joybtn code %q", text)
		}
		nc.CtrlButton = sdl.GameControllerGetButtonFromString(fields[1])
		if nc.CtrlButton == sdl.CONTROLLER_BUTTON_INVALID {
			return fmt.Errorf("unrecognized button %q", fields[1])
		}
		nc.CtrlGUID = fields[2]
		nc.Source = ControllerButton

	case "joyaxis":
		if len(fields) != 3 {
			return fmt.Errorf("malformed joyaxis code %q", text)
		}
		axis := fields[1]
		switch {
		case strings.HasSuffix(axis, "+"):
			nc.CtrlAxisDir = 1
		case strings.HasSuffix(axis, "-"):
			nc.CtrlAxisDir = -1
		default:
			return fmt.Errorf("malformed axis direction %q", axis)
		}
		nc.CtrlAxis = sdl.GameControllerGetAxisFromString(axis[:len(axis)-1])
		if nc.CtrlAxis == sdl.CONTROLLER_AXIS_INVALID {
			return fmt.Errorf("unrecognized axis %q", axis)
		}
		nc.CtrlGUID = fields[2]
		nc.Source = ControllerAxis

	default:
		return fmt.Errorf("unrecognized input code %q", text)
	}

	*c = nc
	return nil
}
