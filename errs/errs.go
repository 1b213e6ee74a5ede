// Package errs defines the engine's error taxonomy: a small set of typed
// errors identifying what kind of failure occurred, so callers can branch
// on errors.Is/errors.As instead of matching strings.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap one of these with fmt.Errorf("%w: ...", errs.Kind)
// or use the constructors below, which attach the offending detail.
var (
	// ErrIllegalMove means a move was rejected by do_move or validated
	// against possible_moves and found not to be among them.
	ErrIllegalMove = errors.New("illegal move")

	// ErrPlayerCountMismatch means a GameState was built or deserialized
	// with a player count outside [2, 4], or a mismatch between the
	// declared count and the data actually present.
	ErrPlayerCountMismatch = errors.New("player count mismatch")

	// ErrInvalidGameState means check_integrity found the tile census,
	// turn markers, or factory layout inconsistent.
	ErrInvalidGameState = errors.New("invalid game state")

	// ErrEngineCrash means an unrecoverable internal failure occurred
	// inside the search driver or player, distinct from a rejected move.
	ErrEngineCrash = errors.New("engine crash")

	// ErrTimeout means a player or the stdio protocol exceeded its
	// allotted time. Soft timeouts (those the caller chooses to accept)
	// are logged and continue; hard timeouts are escalated to
	// ErrEngineCrash by the caller.
	ErrTimeout = errors.New("timeout")
)

// IllegalMove wraps ErrIllegalMove with the move token that was rejected
// and the reason it failed validation.
func IllegalMove(moveToken, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrIllegalMove, moveToken, reason)
}

// PlayerCountMismatch wraps ErrPlayerCountMismatch with the offending
// count.
func PlayerCountMismatch(got int) error {
	return fmt.Errorf("%w: got %d players, want 2-4", ErrPlayerCountMismatch, got)
}

// InvalidGameState wraps ErrInvalidGameState with the integrity check
// that failed.
func InvalidGameState(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGameState, detail)
}

// EngineCrash wraps ErrEngineCrash with the underlying cause, if any.
func EngineCrash(cause error) error {
	if cause == nil {
		return ErrEngineCrash
	}
	return fmt.Errorf("%w: %v", ErrEngineCrash, cause)
}

// Timeout wraps ErrTimeout with the stage that exceeded its deadline.
func Timeout(stage string) error {
	return fmt.Errorf("%w: %s", ErrTimeout, stage)
}
