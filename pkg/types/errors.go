package types

import "errors"

// Entity and store errors. The messages double as the diagnostics printed by
// the command interpreter, so keep them short and lower case.
var (
	ErrUnknownKind = errors.New("class doesn't exist")
	ErrNotFound    = errors.New("no instance found")
	ErrNotSettable = errors.New("value not settable")
	ErrInvalidData = errors.New("invalid entity data")
)
