package server

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is already full")
	ErrAlreadyJoined    = errors.New("player is already in the room")
	ErrPlayerNotInRoom  = errors.New("player is not in the room")
	ErrInvalidRoomState = errors.New("not enough players to start a round")
)
