// Package rpc exposes the session commands over net/rpc, so that a running
// emulator can be driven by scripts and tests.
package rpc

import (
	"net"

	"dsfront/emu/log"
)

var modRPC = log.NewModule("rpc")

// UnusedPort returns a free TCP port on the loopback interface.
func UnusedPort() int {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic("pickUnusedPort failed: " + err.Error())
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		panic("pickUnusedPort failed: " + err.Error())
	}
	return port
}
