package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub is the single serialization point for all space presence state. It
// owns the spaceId -> Room registry and applies every admit, move and
// removal on its own goroutine, so room mutations are totally ordered.
// Broadcast fan-out only enqueues to per-client buffered channels; socket
// I/O happens in the transport's write loops.
type Hub struct {
	queue      chan envelope
	register   chan *Client
	unregister chan *Client
	queries    chan query

	clients map[*Client]*Room // nil Room until joined
	rooms   map[string]*Room

	stopped chan struct{}
	log     zerolog.Logger
}

type envelope struct {
	client *Client
	cmd    *Command
}

type query struct {
	spaceID string
	reply   chan []Presence
}

// NewHub creates a new hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		queue:      make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		queries:    make(chan query),
		clients:    make(map[*Client]*Room),
		rooms:      make(map[string]*Room),
		stopped:    make(chan struct{}),
		log:        l,
	}
}

// RegisterClient adds a client and starts pumping its commands into the
// hub loop.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// UnregisterClient removes a client, leaving its room if joined.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
		c.Close()
	}
}

// Occupancy returns the current presences in a space, or nil if no room
// is open for it. Linearized with mutations through the hub loop.
func (h *Hub) Occupancy(spaceID string) []Presence {
	q := query{spaceID: spaceID, reply: make(chan []Presence, 1)}
	select {
	case h.queries <- q:
		return <-q.reply
	case <-h.stopped:
		return nil
	}
}

// Run processes hub events until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = nil
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case q := <-h.queries:
			if room, ok := h.rooms[q.spaceID]; ok {
				q.reply <- room.Snapshot(nil)
			} else {
				q.reply <- nil
			}
		case env := <-h.queue:
			h.handleCommand(env.client, env.cmd)
		}
	}
}

// pump forwards one client's commands into the shared queue so the hub
// loop stays the only goroutine touching room state.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.queue <- envelope{client: c, cmd: cmd}:
			case <-c.Done():
				return
			case <-ctx.Done():
				return
			}
		case <-c.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	if _, known := h.clients[c]; !known {
		// Raced with unregister; drop.
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd)
	case CommandMove:
		h.handleMove(c, cmd)
	}
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if h.clients[c] != nil {
		h.sendEvent(c, &Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, "already joined a space")})
		return
	}

	room, open := h.rooms[cmd.SpaceID]
	if !open {
		room = NewRoom(cmd.SpaceID, cmd.Grid)
	}

	c.UserID = cmd.UserID
	c.Username = cmd.Username

	spawn, err := room.Admit(c)
	if err != nil {
		// Failed admits never leave an empty room behind.
		h.sendEvent(c, &Event{Kind: EventError, Error: coreError(ErrCodeSpaceFull, "no free cell in space")})
		return
	}
	if !open {
		h.rooms[cmd.SpaceID] = room
	}
	h.clients[c] = room

	// Ack to the joiner is enqueued before the broadcast to the rest.
	h.sendEvent(c, &Event{
		Kind:  EventSpaceJoined,
		Pos:   spawn,
		Users: room.Snapshot(c),
	})
	room.Broadcast(&Event{Kind: EventUserJoined, UserID: c.UserID, Pos: spawn}, c)

	h.log.Debug().
		Str("client_id", c.ID).
		Int64("user_id", c.UserID).
		Str("space_id", cmd.SpaceID).
		Int("x", spawn.X).
		Int("y", spawn.Y).
		Msg("client joined space")
}

func (h *Hub) handleMove(c *Client, cmd *Command) {
	room := h.clients[c]
	if room == nil {
		h.sendEvent(c, &Event{Kind: EventError, Error: coreError(ErrCodeProtocolViolation, "movement before join")})
		return
	}

	pos, accepted := room.TryMove(c, cmd.Target)
	if !accepted {
		// Rejection carries the unchanged position so the client can
		// resynchronize; nobody else hears about it.
		h.sendEvent(c, &Event{Kind: EventMovementRejected, Pos: pos})
		return
	}

	room.Broadcast(&Event{Kind: EventMovement, UserID: c.UserID, Pos: pos}, c)
}

func (h *Hub) handleDisconnect(c *Client) {
	room, known := h.clients[c]
	if !known {
		c.Close()
		return
	}
	delete(h.clients, c)

	if room != nil {
		empty := room.Remove(c)
		if empty {
			delete(h.rooms, room.SpaceID)
			h.log.Debug().Str("space_id", room.SpaceID).Msg("room closed")
		} else {
			room.Broadcast(&Event{Kind: EventUserLeft, UserID: c.UserID}, nil)
		}
	}

	c.Close()
	close(c.Events)
}

func (h *Hub) sendEvent(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
