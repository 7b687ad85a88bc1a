package board

import (
	"errors"
	"fmt"
)

// Invariant violations. Board methods panic with an *InvariantError
// wrapping one of these; they mean the caller or the board has a bug.
var (
	ErrTileCount  = errors.New("tile count mismatch")
	ErrEmptyCell  = errors.New("no tile at index")
	ErrOutOfRange = errors.New("index out of range")
)

// Argument errors, returned to the caller.
var (
	ErrInvalidSpeed   = errors.New("speed must be > 0")
	ErrInvalidGravity = errors.New("gravity must be >= 0")
	ErrWrongTrigger   = errors.New("trigger tile has the wrong type")
	ErrSnapshotShape  = errors.New("snapshot does not fit the board")
)

// InvariantError reports a broken board invariant.
type InvariantError struct {
	Op    string
	Index int
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board: %s at %d: %v", e.Op, e.Index, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariant(op string, index int, err error) {
	panic(&InvariantError{Op: op, Index: index, Err: err})
}
