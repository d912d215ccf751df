package rpc

import (
	"fmt"
	"net/rpc"
	"strconv"
	"time"

	"dsfront/emu"
)

type Client struct {
	client *rpc.Client
}

// NewClient connects to the server on the given localhost port, retrying a
// few times while it starts up.
func NewClient(port int) (*Client, error) {
	var (
		client *rpc.Client
		err    error
	)
	const maxretries = 5
	for i := range maxretries {
		if client, err = rpc.Dial("tcp", "localhost:"+strconv.Itoa(port)); err == nil {
			break
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}

	if client == nil {
		return nil, fmt.Errorf("dial failed max retries: %v", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Run() error                   { return call(c.client, "session.Run", nil) }
func (c *Client) Stop() error                  { return call(c.client, "session.Stop", nil) }
func (c *Client) Pause() error                 { return call(c.client, "session.Pause", nil) }
func (c *Client) Unpause() error               { return call(c.client, "session.Unpause", nil) }
func (c *Client) Reset() error                 { return call(c.client, "session.Reset", nil) }
func (c *Client) SetLimitFPS(limit bool) error { return call(c.client, "session.SetLimitFPS", limit) }

func (c *Client) State() (emu.State, error) {
	return request[emu.State](c.client, "session.State", nil)
}

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(funcname, args, &reply); err != nil {
		return reply, fmt.Errorf("%s: %w", funcname, err)
	}
	return reply, nil
}
