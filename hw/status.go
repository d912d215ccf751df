package hw

import (
	"fmt"
	"strings"

	"dsfront/emu"
	"dsfront/hw/layout"
)

// A session is the part of emu.Controller the stop hotkey drives.
type session interface {
	State() emu.State
	Run() error
	Stop() error
}

// toggleSession starts s if it's stopped, and stops it otherwise.
func toggleSession(s session) error {
	if s.State() == emu.Stopped {
		return s.Run()
	}
	return s.Stop()
}

// titleFor returns the window title following n, or false if n leaves the
// title unchanged. failure is the last session command error, kept in the
// title until a session starts.
func titleFor(n emu.Notification, failure string) (string, bool) {
	switch n.Event {
	case emu.TitleChanged:
		return windowTitle + " | " + n.Text, true
	case emu.SessionPaused:
		return windowTitle + " | Paused", true
	case emu.SessionStopped:
		if failure != "" {
			return windowTitle + " | " + failure, true
		}
		return windowTitle, true
	case emu.SessionStarted, emu.SessionResumed:
		return windowTitle, true
	}
	return "", false
}

// noticeText returns the on-screen notice for ev, or "" if ev has none.
// limitFPS is the frame limiter state after ev.
func noticeText(ev emu.Event, cfg layout.Config, limitFPS bool) string {
	switch ev {
	case emu.SessionStarted:
		return "Started"
	case emu.SessionStopped:
		return "Stopped"
	case emu.SessionPaused:
		return "Paused"
	case emu.SessionResumed:
		return "Resumed"
	case emu.SessionReset:
		return "Reset"
	case emu.LimitFPSChanged:
		if limitFPS {
			return "Frame limiter on"
		}
		return "Frame limiter off"
	case emu.LayoutChanged:
		return layoutNotice(cfg)
	}
	return ""
}

func layoutNotice(cfg layout.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v, %v, rotation %d, gap %d", cfg.Mode, cfg.Sizing, int(cfg.Rotation), cfg.Gap)
	if cfg.SwapScreens {
		sb.WriteString(", swapped")
	}
	if cfg.IntegerScaling {
		sb.WriteString(", integer")
	}
	if cfg.Filtering {
		sb.WriteString(", filtered")
	}
	return sb.String()
}
