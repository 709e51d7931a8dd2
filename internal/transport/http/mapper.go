package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vovakirdan/gridspace-server/internal/core"
	"github.com/vovakirdan/gridspace-server/internal/proto"
	"github.com/vovakirdan/gridspace-server/internal/store"
)

// inboundToCommand maps a wire envelope to a hub command. For joins it
// resolves the credential token and loads the space grid first, so the
// returned command carries everything the hub needs for a purely
// in-memory admission.
func (h *WSHandler) inboundToCommand(ctx context.Context, inbound proto.Inbound) (*core.Command, *proto.ErrorPayload, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinPayload
		if err := json.Unmarshal(inbound.Payload, &join); err != nil {
			return nil, nil, err
		}
		if join.SpaceID == "" || join.Token == "" {
			return nil, &proto.ErrorPayload{Code: core.ErrCodeBadRequest, Msg: "spaceId and token are required"}, nil
		}

		claims, err := h.authService.ValidateToken(join.Token)
		if err != nil {
			return nil, &proto.ErrorPayload{Code: core.ErrCodeUnauthorized, Msg: "invalid token"}, nil
		}

		grid, err := buildGrid(ctx, h.spaces, join.SpaceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, &proto.ErrorPayload{Code: core.ErrCodeSpaceNotFound, Msg: "space not found"}, nil
			}
			return nil, nil, err
		}

		return &core.Command{
			Kind:     core.CommandJoin,
			SpaceID:  join.SpaceID,
			UserID:   claims.UserID,
			Username: claims.Username,
			Grid:     grid,
		}, nil, nil
	case proto.InboundTypeMovement:
		var move proto.MovementPayload
		if err := json.Unmarshal(inbound.Payload, &move); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:   core.CommandMove,
			Target: core.Position{X: move.X, Y: move.Y},
		}, nil, nil
	default:
		return nil, &proto.ErrorPayload{Code: core.ErrCodeProtocolViolation, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSpaceJoined:
		users := make([]proto.SpaceUser, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, proto.SpaceUser{
				UserID: u.UserID,
				X:      u.Position.X,
				Y:      u.Position.Y,
			})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeSpaceJoined,
			Payload: proto.SpaceJoinedPayload{
				Spawn: proto.Point{X: event.Pos.X, Y: event.Pos.Y},
				Users: users,
			},
		}
	case core.EventUserJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeUserJoin,
			Payload: proto.UserJoinPayload{
				UserID: event.UserID,
				X:      event.Pos.X,
				Y:      event.Pos.Y,
			},
		}
	case core.EventMovement:
		return proto.Outbound{
			Type: proto.OutboundTypeMovement,
			Payload: proto.MovementEventPayload{
				UserID: event.UserID,
				X:      event.Pos.X,
				Y:      event.Pos.Y,
			},
		}
	case core.EventMovementRejected:
		return proto.Outbound{
			Type: proto.OutboundTypeMovementRejected,
			Payload: proto.MovementRejectedPayload{
				X: event.Pos.X,
				Y: event.Pos.Y,
			},
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:    proto.OutboundTypeUserLeft,
			Payload: proto.UserLeftPayload{UserID: event.UserID},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{
				Type:    proto.OutboundTypeError,
				Payload: proto.ErrorPayload{Code: "unknown", Msg: "unknown error"},
			}
		}
		return proto.Outbound{
			Type:    proto.OutboundTypeError,
			Payload: proto.ErrorPayload{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Payload: proto.ErrorPayload{Code: "unknown", Msg: "unknown event"}}
	}
}
