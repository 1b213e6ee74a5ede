package player

import (
	"context"
	"math/rand"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
)

// StrengthLevel selects one of five fixed playing strengths for a
// StrengthLimitedPlayer, coarsest (weakest) to strongest.
type StrengthLevel int

const (
	Strength1 StrengthLevel = iota + 1
	Strength2
	Strength3
	Strength4
	Strength5
)

// strengthConfig holds one difficulty level's acceptance probability and
// top-K sampling width: there is no separate baseFindability vs.
// parallelFindability split since there is no lexicon to search a play
// against, and no CEL/probabilistic variant axis.
// acceptTopChoice is the chance the single best-rated root move is
// played outright; otherwise the move is sampled uniformly from the
// best topK moves by RankedMoves order (which always includes the
// best move itself, so a miss still favors strong-but-not-best play).
var strengthConfigs = map[StrengthLevel]struct {
	acceptTopChoice float64
	topK            int
}{
	Strength1: {acceptTopChoice: 0.2, topK: 8},
	Strength2: {acceptTopChoice: 0.4, topK: 6},
	Strength3: {acceptTopChoice: 0.6, topK: 4},
	Strength4: {acceptTopChoice: 0.8, topK: 2},
	Strength5: {acceptTopChoice: 1.0, topK: 1},
}

// StrengthLimitedPlayer wraps another Player that exposes ranked root
// moves (an MCTSPlayer) and degrades its choice according to level: with
// probability acceptTopChoice it plays the wrapped player's best move
// unchanged, otherwise it samples uniformly among the level's topK
// ranked moves.
type StrengthLimitedPlayer struct {
	inner *MCTSPlayer
	level StrengthLevel
	rng   *rand.Rand
}

func NewStrengthLimitedPlayer(inner *MCTSPlayer, level StrengthLevel, seed int64) *StrengthLimitedPlayer {
	return &StrengthLimitedPlayer{inner: inner, level: level, rng: rand.New(rand.NewSource(seed))}
}

func (p *StrengthLimitedPlayer) GetName() string     { return p.inner.GetName() }
func (p *StrengthLimitedPlayer) SetName(name string) { p.inner.SetName(name) }

func (p *StrengthLimitedPlayer) GetMove(ctx context.Context, state *game.GameState) (move.Move, error) {
	best, err := p.inner.GetMove(ctx, state)
	if err != nil {
		return move.Move{}, err
	}

	cfg := strengthConfigs[p.level]
	if p.rng.Float64() < cfg.acceptTopChoice {
		return best, nil
	}

	p.inner.mu.Lock()
	ranked := p.inner.tree.RankedMoves()
	p.inner.mu.Unlock()
	if len(ranked) == 0 {
		return best, nil
	}

	k := cfg.topK
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[p.rng.Intn(k)], nil
}

func (p *StrengthLimitedPlayer) NotifyMove(s *game.GameState, m move.Move) {
	p.inner.NotifyMove(s, m)
}
func (p *StrengthLimitedPlayer) NotifyFactoriesRefilled(s *game.GameState) {
	p.inner.NotifyFactoriesRefilled(s)
}
func (p *StrengthLimitedPlayer) NotifyGameOver(s *game.GameState) { p.inner.NotifyGameOver(s) }
func (p *StrengthLimitedPlayer) SetTime(tc mcts.TimeControl)      { p.inner.SetTime(tc) }
func (p *StrengthLimitedPlayer) NotifyRemainingTime(ms int64)     { p.inner.NotifyRemainingTime(ms) }
func (p *StrengthLimitedPlayer) Reset()                           { p.inner.Reset() }
