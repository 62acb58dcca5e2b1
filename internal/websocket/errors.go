package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrClientClosed    = errors.New("client connection is closed")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrNotTeamMember   = errors.New("not a member of this team")
)
