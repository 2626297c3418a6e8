package core

import "errors"

// Command and lifecycle failures. Every operation that returns one of these
// leaves the game state untouched.
var (
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrOccupiedSlot     = errors.New("slot is already occupied")
	ErrEmptySlot        = errors.New("slot is empty")
	ErrOutOfTools       = errors.New("no tool uses remaining")
	ErrAreaOutOfBounds  = errors.New("tool area extends past the grid")
	ErrAlreadyActive    = errors.New("effect is already active")
	ErrNotActive        = errors.New("effect is not active")
	ErrUnknownPieceType = errors.New("unknown piece type")
	ErrUnknownTool      = errors.New("unknown tool")
	ErrUnknownEffect    = errors.New("unknown effect")
	ErrTimeBaseMismatch = errors.New("effect uses a different time base")
	ErrGameOver         = errors.New("game is over")
)
