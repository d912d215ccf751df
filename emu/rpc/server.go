package rpc

import (
	"errors"
	"net"
	"net/rpc"
	"strconv"

	"dsfront/emu"
)

// Session is the subset of the session controller commands available
// remotely.
type Session interface {
	Run() error
	Stop() error
	Pause()
	Unpause()
	Reset()
	SetLimitFPS(limit bool)
	State() emu.State
}

type sessionProxy struct {
	s Session
}

func (sp *sessionProxy) Run(_, _ *struct{}) error     { return sp.s.Run() }
func (sp *sessionProxy) Stop(_, _ *struct{}) error    { return sp.s.Stop() }
func (sp *sessionProxy) Pause(_, _ *struct{}) error   { sp.s.Pause(); return nil }
func (sp *sessionProxy) Unpause(_, _ *struct{}) error { sp.s.Unpause(); return nil }
func (sp *sessionProxy) Reset(_, _ *struct{}) error   { sp.s.Reset(); return nil }
func (sp *sessionProxy) SetLimitFPS(limit bool, _ *struct{}) error {
	sp.s.SetLimitFPS(limit)
	return nil
}

func (sp *sessionProxy) State(_ *struct{}, reply *emu.State) error {
	*reply = sp.s.State()
	return nil
}

// Server serves session commands to RPC clients until closed.
type Server struct {
	l    net.Listener
	done chan struct{}
}

// NewServer listens on the given localhost port and serves commands for s.
func NewServer(port int, s Session) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("session", &sessionProxy{s: s}); err != nil {
		return nil, err
	}
	l, err := net.Listen("tcp", "localhost:"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").Int("port", port).End()
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Accept(l)
	}()
	return &Server{l: l, done: done}, nil
}

// Close stops accepting connections.
func (s *Server) Close() error {
	err := s.l.Close()
	<-s.done
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
