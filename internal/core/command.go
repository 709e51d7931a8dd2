package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin admits the connection into a space.
	CommandJoin CommandKind = iota
	// CommandMove requests a one-cell movement inside the joined space.
	CommandMove
)

// Command represents an action requested by a client. For joins, the
// transport resolves the credential token and the space before dispatch,
// so the hub never blocks on external lookups.
type Command struct {
	Kind CommandKind

	// Join fields.
	SpaceID  string
	UserID   int64
	Username string
	Grid     Grid

	// Move target.
	Target Position
}
