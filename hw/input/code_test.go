package input

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"
)

func TestCodeTextRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		code *Code // nil for unmarshal errors
	}{
		{"", &Code{}},
		{"key W", &Code{Source: Keyboard, Scancode: sdl.SCANCODE_W}},
		{"key Up", &Code{Source: Keyboard, Scancode: sdl.SCANCODE_UP}},
		{"key Return", &Code{Source: Keyboard, Scancode: sdl.SCANCODE_RETURN}},
		{"key Right Shift", &Code{Source: Keyboard, Scancode: sdl.SCANCODE_RSHIFT}},
		{"joybtn a 030000004c050000cc0900", &Code{Source: ControllerButton, CtrlButton: sdl.CONTROLLER_BUTTON_A, CtrlGUID: "030000004c050000cc0900"}},
		{"joybtn x 030000004c050000cc0900", &Code{Source: ControllerButton, CtrlButton: sdl.CONTROLLER_BUTTON_X, CtrlGUID: "030000004c050000cc0900"}},
		{"joyaxis righttrigger+ 030000004c050000cc1212", &Code{Source: ControllerAxis, CtrlAxis: sdl.CONTROLLER_AXIS_TRIGGERRIGHT, CtrlAxisDir: 1, CtrlGUID: "030000004c050000cc1212"}},
		{"joyaxis lefttrigger- 123400004c050000cc1212", &Code{Source: ControllerAxis, CtrlAxis: sdl.CONTROLLER_AXIS_TRIGGERLEFT, CtrlAxisDir: -1, CtrlGUID: "123400004c050000cc1212"}},

		{"key   ", nil},
		{"key NotAKey", nil},
		{"joybtn foobar+ someguid", nil},
		{"joyaxis leftx someguid", nil},
		{"foocode Return", nil},
		{"joybtn a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var code Code
			err := code.UnmarshalText([]byte(tt.text))
			if tt.code == nil {
				if err == nil {
					t.Fatalf("UnmarshalText(%q) = %+v, want error", tt.text, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText(%q) error: %v", tt.text, err)
			}
			if diff := cmp.Diff(*tt.code, code); diff != "" {
				t.Fatalf("UnmarshalText(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}

			text, err := code.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.text, string(text)); diff != "" {
				t.Fatalf("MarshalText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
