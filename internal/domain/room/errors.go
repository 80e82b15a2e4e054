package room

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNameTaken    = errors.New("a room with this name already exists")
)
