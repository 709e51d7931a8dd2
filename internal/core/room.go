package core

// Room is the live presence state for one currently-occupied space: who
// is connected and where they stand. All methods must be called from the
// hub loop; the Room itself does no locking.
type Room struct {
	SpaceID string
	Grid    Grid

	members map[*Client]Position
	order   []*Client // join order, for deterministic snapshots
}

// NewRoom constructs an empty room for the given space.
func NewRoom(spaceID string, grid Grid) *Room {
	return &Room{
		SpaceID: spaceID,
		Grid:    grid,
		members: make(map[*Client]Position),
	}
}

// Admit registers the client and returns its spawn position: the first
// cell in row-major order that is neither an obstacle nor occupied.
// Returns ErrAlreadyJoined for a member, ErrSpaceFull when no cell is left.
func (r *Room) Admit(c *Client) (Position, error) {
	if _, exists := r.members[c]; exists {
		return Position{}, ErrAlreadyJoined
	}

	spawn, ok := r.spawnPosition()
	if !ok {
		return Position{}, ErrSpaceFull
	}

	r.members[c] = spawn
	r.order = append(r.order, c)
	return spawn, nil
}

func (r *Room) spawnPosition() (Position, bool) {
	occupied := make(map[Position]struct{}, len(r.members))
	for _, pos := range r.members {
		occupied[pos] = struct{}{}
	}

	for y := 0; y < r.Grid.Height; y++ {
		for x := 0; x < r.Grid.Width; x++ {
			p := Position{X: x, Y: y}
			if r.Grid.Blocked(p) {
				continue
			}
			if _, taken := occupied[p]; taken {
				continue
			}
			return p, true
		}
	}
	return Position{}, false
}

// Remove deletes the client from the room if present and reports whether
// the room is now empty.
func (r *Room) Remove(c *Client) bool {
	if _, exists := r.members[c]; exists {
		delete(r.members, c)
		for i, member := range r.order {
			if member == c {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return len(r.members) == 0
}

// TryMove validates the requested position against the client's current
// one and applies it on success. The returned position is the new one on
// success and the unchanged current one on rejection.
func (r *Room) TryMove(c *Client, requested Position) (Position, bool) {
	current, exists := r.members[c]
	if !exists {
		return Position{}, false
	}

	if !ValidMove(current, requested, r.Grid) {
		return current, false
	}

	r.members[c] = requested
	return requested, true
}

// Snapshot returns the current occupants in join order, excluding the
// given client. The slice is freshly allocated so callers may hand it to
// the broadcast fan-out without holding the room.
func (r *Room) Snapshot(exclude *Client) []Presence {
	users := make([]Presence, 0, len(r.members))
	for _, member := range r.order {
		if member == exclude {
			continue
		}
		users = append(users, Presence{UserID: member.UserID, Position: r.members[member]})
	}
	return users
}

// Broadcast sends an event to every member except the excluded one.
func (r *Room) Broadcast(event *Event, exclude *Client) {
	for _, member := range r.order {
		if member == exclude {
			continue
		}
		select {
		case member.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
