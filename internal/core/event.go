package core

// EventKind is a notification the engine emits to clients.
type EventKind int

const (
	// EventSpaceJoined acknowledges a join to the joiner, carrying the
	// spawn position and a snapshot of the other occupants.
	EventSpaceJoined EventKind = iota
	// EventUserJoined notifies existing members about a new occupant.
	EventUserJoined
	// EventMovement notifies other members about an accepted move.
	EventMovement
	// EventMovementRejected returns the unchanged position to the mover.
	EventMovementRejected
	// EventUserLeft notifies remaining members about a departure.
	EventUserLeft
	// EventError notifies a client about a domain error.
	EventError
)

// Presence is one occupant of a room at a point in time.
type Presence struct {
	UserID   int64
	Position Position
}

// Event is sent to clients to describe what happened in the space.
type Event struct {
	Kind   EventKind
	UserID int64
	Pos    Position
	Users  []Presence // snapshot for EventSpaceJoined
	Error  *CoreError
}
