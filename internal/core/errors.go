package core

import "errors"

// Error codes for domain errors that cross the wire.
const (
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeSpaceNotFound     = "space_not_found"
	ErrCodeAlreadyJoined     = "already_joined"
	ErrCodeSpaceFull         = "space_full"
	ErrCodeProtocolViolation = "protocol_violation"
	ErrCodeBadRequest        = "bad_request"
)

var (
	ErrAlreadyJoined = errors.New("already joined a space")
	ErrSpaceFull     = errors.New("no free cell left in space")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
