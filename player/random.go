package player

import (
	"context"
	"math/rand"

	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
)

// RandomPlayer picks uniformly among the legal moves at its position,
// generated fresh on every call. It never retains search state, so every
// notification hook is a no-op.
type RandomPlayer struct {
	name string
	rng  *rand.Rand
}

// NewRandomPlayer seeds a RandomPlayer's RNG deterministically for test
// reproducibility; pass a time-derived seed for real play.
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{name: "Random", rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) GetName() string     { return p.name }
func (p *RandomPlayer) SetName(name string) { p.name = name }

func (p *RandomPlayer) GetMove(_ context.Context, state *game.GameState) (move.Move, error) {
	var list movegen.MoveList
	result, err := movegen.PossibleMoves(state.Clone(), &list, p.rng)
	if err != nil {
		return move.Move{}, err
	}
	if result == movegen.GameOver || len(list.Moves) == 0 {
		return move.Move{}, errs.InvalidGameState("no legal moves at get_move")
	}
	return list.Moves[p.rng.Intn(len(list.Moves))], nil
}

func (p *RandomPlayer) NotifyMove(*game.GameState, move.Move)   {}
func (p *RandomPlayer) NotifyFactoriesRefilled(*game.GameState) {}
func (p *RandomPlayer) NotifyGameOver(*game.GameState)          {}
func (p *RandomPlayer) SetTime(mcts.TimeControl)                {}
func (p *RandomPlayer) NotifyRemainingTime(int64)               {}
func (p *RandomPlayer) Reset()                                  {}
