package player

import (
	"context"
	"math/rand"

	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/playout"
)

// HeuristicPlayer picks the single best move by the same per-move scoring
// function playout.Rollout uses internally, without running any rollout or
// search. It is the fast, deterministic-ish opponent used for smoke tests
// and as a baseline opponent for strength calibration.
type HeuristicPlayer struct {
	name string
	rng  *rand.Rand
}

func NewHeuristicPlayer(seed int64) *HeuristicPlayer {
	return &HeuristicPlayer{name: "Heuristic", rng: rand.New(rand.NewSource(seed))}
}

func (p *HeuristicPlayer) GetName() string     { return p.name }
func (p *HeuristicPlayer) SetName(name string) { p.name = name }

func (p *HeuristicPlayer) GetMove(_ context.Context, state *game.GameState) (move.Move, error) {
	var list movegen.MoveList
	result, err := movegen.PossibleMoves(state.Clone(), &list, p.rng)
	if err != nil {
		return move.Move{}, err
	}
	if result == movegen.GameOver || len(list.Moves) == 0 {
		return move.Move{}, errs.InvalidGameState("no legal moves at get_move")
	}
	return playout.BestMove(state, list.Moves, p.rng), nil
}

func (p *HeuristicPlayer) NotifyMove(*game.GameState, move.Move)   {}
func (p *HeuristicPlayer) NotifyFactoriesRefilled(*game.GameState) {}
func (p *HeuristicPlayer) NotifyGameOver(*game.GameState)          {}
func (p *HeuristicPlayer) SetTime(mcts.TimeControl)                {}
func (p *HeuristicPlayer) NotifyRemainingTime(int64)               {}
func (p *HeuristicPlayer) Reset()                                  {}
