package hw

import (
	"github.com/veandco/go-sdl2/sdl"

	"dsfront/hw/layout"
)

// Action is a frontend command bound to a hotkey.
type Action uint8

const (
	ActNone Action = iota
	ActQuit
	ActPause
	ActReset
	ActLimitFPS
	ActFullscreen
	ActScreenSize
	ActCycleMode
	ActCycleSizing
	ActRotate
	ActCycleGap
	ActSwapScreens
	ActIntegerScaling
	ActFiltering
	ActStop
	ActToggleOSD
)

var hotkeys = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActQuit,
	sdl.SCANCODE_F1:     ActCycleMode,
	sdl.SCANCODE_F2:     ActCycleSizing,
	sdl.SCANCODE_F3:     ActRotate,
	sdl.SCANCODE_F4:     ActCycleGap,
	sdl.SCANCODE_F5:     ActSwapScreens,
	sdl.SCANCODE_F6:     ActIntegerScaling,
	sdl.SCANCODE_F7:     ActFiltering,
	sdl.SCANCODE_F8:     ActScreenSize,
	sdl.SCANCODE_F9:     ActReset,
	sdl.SCANCODE_F10:    ActPause,
	sdl.SCANCODE_F11:    ActFullscreen,
	sdl.SCANCODE_F12:    ActStop,
	sdl.SCANCODE_TAB:    ActLimitFPS,
	sdl.SCANCODE_GRAVE:  ActToggleOSD,
}

// hotkey returns the action bound to sc, if any.
func hotkey(sc sdl.Scancode) Action {
	return hotkeys[sc]
}

// applyLayoutAction returns cfg changed by act, or false if act doesn't
// change the layout.
func applyLayoutAction(cfg layout.Config, act Action) (layout.Config, bool) {
	switch act {
	case ActCycleMode:
		cfg.Mode = cfg.Mode.Next()
	case ActCycleSizing:
		cfg.Sizing = cfg.Sizing.Next()
	case ActRotate:
		cfg.Rotation = cfg.Rotation.Next()
	case ActCycleGap:
		cfg.Gap = layout.NextGap(cfg.Gap)
	case ActSwapScreens:
		cfg.SwapScreens = !cfg.SwapScreens
	case ActIntegerScaling:
		cfg.IntegerScaling = !cfg.IntegerScaling
	case ActFiltering:
		cfg.Filtering = !cfg.Filtering
	default:
		return cfg, false
	}
	return cfg, true
}

const maxWindowScale = 4

// nextWindowScale returns the screen size preset following scale.
func nextWindowScale(scale int) int {
	return scale%maxWindowScale + 1
}
