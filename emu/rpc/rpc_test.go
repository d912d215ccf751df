package rpc

import (
	"errors"
	netrpc "net/rpc"
	"testing"
	"time"

	"dsfront/emu"
	"dsfront/emu/democore"
)

func TestRemoteSession(t *testing.T) {
	core := democore.New("", nil, 0)
	ctrl := emu.NewController(core, emu.EmulationConfig{ShutdownTimeout: emu.Duration{Duration: time.Second}})

	port := UnusedPort()
	srv, err := NewServer(port, ctrl)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	client, err := NewClient(port)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	checkState := func(want emu.State) {
		t.Helper()
		got, err := client.State()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("state = %v, want %v", got, want)
		}
	}

	checkState(emu.Stopped)
	if err := client.Run(); err != nil {
		t.Fatal(err)
	}
	checkState(emu.Running)

	if err := client.Pause(); err != nil {
		t.Fatal(err)
	}
	checkState(emu.Paused)
	if err := client.Unpause(); err != nil {
		t.Fatal(err)
	}
	checkState(emu.Running)

	if err := client.SetLimitFPS(false); err != nil {
		t.Fatal(err)
	}
	if ctrl.LimitFPS() {
		t.Error("frame limiter still enabled")
	}
	if err := client.Reset(); err != nil {
		t.Fatal(err)
	}

	// Errors come back as strings, they can't be matched with errors.Is.
	err = client.Run()
	if err == nil {
		t.Fatal("Run while running succeeded")
	}
	var serr netrpc.ServerError
	if !errors.As(err, &serr) {
		t.Errorf("Run while running = %T, want a server error", err)
	}

	if err := client.Stop(); err != nil {
		t.Fatal(err)
	}
	checkState(emu.Stopped)
}
