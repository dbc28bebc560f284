package room

import (
	"errors"
	"fmt"
)

var (
	ErrNoCurrentUser   = errors.New("no current user")
	ErrNotInRoom       = errors.New("not in a room")
	ErrAlreadyInRoom   = errors.New("user is already in a room")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrNotHost         = errors.New("only the host can do this")
	ErrInvalidState    = errors.New("operation not allowed in the room's current state")
	ErrInvalidRoom     = errors.New("invalid room parameters")
	ErrInvalidSettings = errors.New("invalid game settings")
	ErrNoQuestions     = errors.New("no questions match the game settings")
	ErrNoQuestion      = errors.New("no active question")
	ErrAlreadyAnswered = errors.New("answer already submitted for this question")
	// ErrConflict means another client changed the room first; the local
	// view has been reconciled and the caller may retry.
	ErrConflict = errors.New("room was modified by another client")
)

func wrapSettings(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
}
