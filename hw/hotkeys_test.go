package hw

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"

	"dsfront/emu"
	"dsfront/hw/input"
	"dsfront/hw/layout"
)

func TestApplyLayoutAction(t *testing.T) {
	start := layout.Config{Gap: 8}

	tests := []struct {
		act  Action
		want layout.Config
		ok   bool
	}{
		{ActCycleMode, layout.Config{Mode: layout.Vertical, Gap: 8}, true},
		{ActCycleSizing, layout.Config{Sizing: layout.EmphasizeTop, Gap: 8}, true},
		{ActRotate, layout.Config{Rotation: layout.Rot90, Gap: 8}, true},
		{ActCycleGap, layout.Config{Gap: 64}, true},
		{ActSwapScreens, layout.Config{SwapScreens: true, Gap: 8}, true},
		{ActIntegerScaling, layout.Config{IntegerScaling: true, Gap: 8}, true},
		{ActFiltering, layout.Config{Filtering: true, Gap: 8}, true},
		{ActPause, start, false},
		{ActNone, start, false},
	}
	for _, tt := range tests {
		got, ok := applyLayoutAction(start, tt.act)
		if ok != tt.ok {
			t.Errorf("action %d: ok = %v, want %v", tt.act, ok, tt.ok)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("action %d: config mismatch (-want +got):\n%s", tt.act, diff)
		}
	}
}

func TestRotateCycle(t *testing.T) {
	cfg := layout.Config{}
	var seen []layout.Rotation
	for range 4 {
		cfg, _ = applyLayoutAction(cfg, ActRotate)
		seen = append(seen, cfg.Rotation)
	}
	want := []layout.Rotation{layout.Rot90, layout.Rot180, layout.Rot270, layout.Rot0}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("rotations mismatch (-want +got):\n%s", diff)
	}
}

func TestNextWindowScale(t *testing.T) {
	var got []int
	scale := 1
	for range 5 {
		scale = nextWindowScale(scale)
		got = append(got, scale)
	}
	if diff := cmp.Diff([]int{2, 3, 4, 1, 2}, got); diff != "" {
		t.Errorf("scales mismatch (-want +got):\n%s", diff)
	}
}

// Hotkeys must not shadow the default key bindings.
func TestHotkeysDontShadowBindings(t *testing.T) {
	for k, code := range input.DefaultConfig().Keys {
		if code.Source != input.Keyboard {
			continue
		}
		if act := hotkey(code.Scancode); act != ActNone {
			t.Errorf("key %v bound to %s is also hotkey %d", input.Key(k), sdl.GetScancodeName(code.Scancode), act)
		}
	}
}

type fakeSession struct {
	state    emu.State
	calls    []string
	startErr error
	stopErr  error
}

func (s *fakeSession) State() emu.State { return s.state }

func (s *fakeSession) Run() error {
	s.calls = append(s.calls, "run")
	if s.startErr != nil {
		return s.startErr
	}
	s.state = emu.Running
	return nil
}

func (s *fakeSession) Stop() error {
	s.calls = append(s.calls, "stop")
	s.state = emu.Stopped
	return s.stopErr
}

func TestStopHotkey(t *testing.T) {
	if act := hotkey(sdl.SCANCODE_F12); act != ActStop {
		t.Fatalf("F12 = action %d, want ActStop", act)
	}

	s := &fakeSession{}
	for range 3 {
		if err := toggleSession(s); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"run", "stop", "run"}, s.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	// A paused session is stopped too.
	s = &fakeSession{state: emu.Paused}
	if err := toggleSession(s); err != nil || s.state != emu.Stopped {
		t.Errorf("toggle paused session: state %v, err %v", s.state, err)
	}
}

func TestStopHotkeyErrors(t *testing.T) {
	timeout := &emu.ShutdownTimeoutError{Timeout: time.Second}
	s := &fakeSession{state: emu.Running, stopErr: timeout}
	err := toggleSession(s)
	var terr *emu.ShutdownTimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("stop = %v, want *ShutdownTimeoutError", err)
	}

	// The failure stays in the title when the stop notification arrives.
	title, _ := titleFor(emu.Notification{Event: emu.SessionStopped}, err.Error())
	if want := windowTitle + " | " + err.Error(); title != want {
		t.Errorf("title = %q, want %q", title, want)
	}

	serr := &emu.StartupError{Resource: "core", Err: errors.New("no rom")}
	s = &fakeSession{startErr: serr}
	if err := toggleSession(s); !errors.Is(err, serr.Err) {
		t.Errorf("start = %v, want %v", err, serr)
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		n       emu.Notification
		failure string
		want    string
		ok      bool
	}{
		{emu.Notification{Event: emu.TitleChanged, Text: "FPS: 60"}, "", "dsfront | FPS: 60", true},
		{emu.Notification{Event: emu.SessionPaused}, "", "dsfront | Paused", true},
		{emu.Notification{Event: emu.SessionResumed}, "", "dsfront", true},
		{emu.Notification{Event: emu.SessionStarted}, "", "dsfront", true},
		{emu.Notification{Event: emu.SessionStopped}, "", "dsfront", true},
		{emu.Notification{Event: emu.SessionStopped}, "stuck", "dsfront | stuck", true},
		{emu.Notification{Event: emu.FrameRendered}, "", "", false},
		{emu.Notification{Event: emu.LayoutChanged}, "", "", false},
	}
	for _, tt := range tests {
		got, ok := titleFor(tt.n, tt.failure)
		if got != tt.want || ok != tt.ok {
			t.Errorf("titleFor(%v, %q) = %q, %v, want %q, %v", tt.n.Event, tt.failure, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNoticeText(t *testing.T) {
	lay := layout.Config{Mode: layout.Vertical, Rotation: layout.Rot90, Gap: 8, SwapScreens: true}

	tests := []struct {
		ev    emu.Event
		limit bool
		want  string
	}{
		{emu.SessionStarted, true, "Started"},
		{emu.SessionStopped, true, "Stopped"},
		{emu.SessionPaused, true, "Paused"},
		{emu.SessionResumed, true, "Resumed"},
		{emu.SessionReset, true, "Reset"},
		{emu.LimitFPSChanged, true, "Frame limiter on"},
		{emu.LimitFPSChanged, false, "Frame limiter off"},
		{emu.LayoutChanged, true, "vertical, even, rotation 90, gap 8, swapped"},
		{emu.FrameRendered, true, ""},
		{emu.TitleChanged, true, ""},
	}
	for _, tt := range tests {
		if got := noticeText(tt.ev, lay, tt.limit); got != tt.want {
			t.Errorf("noticeText(%v, %v) = %q, want %q", tt.ev, tt.limit, got, tt.want)
		}
	}
}
