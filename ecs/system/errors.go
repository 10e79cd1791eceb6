package system

import "errors"

var (
	// ErrInvalidArgument marks precondition violations by the caller.
	ErrInvalidArgument = errors.New("system: invalid argument")
	// ErrDead is returned for combat requests against a dying or dead character.
	ErrDead = errors.New("system: character is dead")
)
