package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

const (
	InboundTypeJoin     = "join"
	InboundTypeMovement = "movement"

	OutboundTypeSpaceJoined      = "space-joined"
	OutboundTypeUserJoin         = "user-join"
	OutboundTypeMovement         = "movement"
	OutboundTypeMovementRejected = "movement-rejected"
	OutboundTypeUserLeft         = "user-left"
	OutboundTypeError            = "error"
)

// JoinPayload requests admission into a space.
type JoinPayload struct {
	SpaceID string `json:"spaceId"`
	Token   string `json:"token"`
}

// MovementPayload requests a move to an absolute cell.
type MovementPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Point is a cell coordinate as it appears on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpaceUser is one occupant in the space-joined snapshot.
type SpaceUser struct {
	UserID int64 `json:"userId"`
	X      int   `json:"x"`
	Y      int   `json:"y"`
}

// SpaceJoinedPayload acknowledges a join with the assigned spawn position
// and the other occupants already present.
type SpaceJoinedPayload struct {
	Spawn Point       `json:"spawn"`
	Users []SpaceUser `json:"users"`
}

// UserJoinPayload notifies existing members about a new occupant.
type UserJoinPayload struct {
	UserID int64 `json:"userId"`
	X      int   `json:"x"`
	Y      int   `json:"y"`
}

// MovementEventPayload broadcasts an accepted move to the other members.
type MovementEventPayload struct {
	UserID int64 `json:"userId"`
	X      int   `json:"x"`
	Y      int   `json:"y"`
}

// MovementRejectedPayload returns the sender's unchanged position.
type MovementRejectedPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UserLeftPayload notifies remaining members about a departure.
type UserLeftPayload struct {
	UserID int64 `json:"userId"`
}

// ErrorPayload describes a protocol-level error response.
type ErrorPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
