// Package player implements the uniform Player contract consumed by a
// match runner: identity, synchronous move queries, and notification
// hooks, backed by an MCTS search, a flat heuristic, a uniform-random
// policy, or a readline-driven human.
package player

import (
	"context"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
)

// Player is the capability set every seat in a match implements.
// Implementations are sum-typed at configuration time rather than
// dispatched virtually inside the search hot path — the player boundary
// is only crossed once per turn.
type Player interface {
	GetName() string
	SetName(name string)

	GetMove(ctx context.Context, state *game.GameState) (move.Move, error)

	NotifyMove(newState *game.GameState, m move.Move)
	NotifyFactoriesRefilled(newState *game.GameState)
	NotifyGameOver(finalState *game.GameState)

	SetTime(tc mcts.TimeControl)
	NotifyRemainingTime(ms int64)

	Reset()
}
