package emu

//go:generate go tool stringer -type=State

// State is the lifecycle state of an emulation session.
type State int32

const (
	Stopped State = iota
	Running
	Paused
)
