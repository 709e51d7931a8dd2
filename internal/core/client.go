package core

import "sync"

// Client is one live socket as seen by the engine. Identity fields are
// zero until the hub accepts a join; after that they are only touched
// inside the hub loop.
type Client struct {
	ID       string
	UserID   int64
	Username string
	Commands chan *Command
	Events   chan *Event

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}

// Close releases the client's command pump. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Done is closed once the client is shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
