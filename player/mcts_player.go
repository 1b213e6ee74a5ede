package player

import (
	"context"
	"math/rand"
	"sync"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
)

// MCTSPlayer wraps a background mcts.Driver and the Tree it searches,
// starting a fresh search goroutine lazily on the first GetMove call (or
// after Reset) and reusing it for the lifetime of a game. Each GetMove
// rebases the tree via the driver's AdvanceRoot command, passing the last
// move recorded by GetMove or NotifyMove as the edge to reuse; NotifyMove
// itself only records that move.
type MCTSPlayer struct {
	name string
	seed int64
	tc   mcts.TimeControl
	rng  *rand.Rand

	mu             sync.Mutex
	driver         *mcts.Driver
	tree           *mcts.Tree
	cancel         context.CancelFunc
	lastEdge       *mcts.Edge
	needsFreshTree bool
}

func NewMCTSPlayer(seed int64, tc mcts.TimeControl) *MCTSPlayer {
	return &MCTSPlayer{
		name:           "MCTS",
		seed:           seed,
		tc:             tc,
		rng:            rand.New(rand.NewSource(seed)),
		needsFreshTree: true,
	}
}

func (p *MCTSPlayer) GetName() string     { return p.name }
func (p *MCTSPlayer) SetName(name string) { p.name = name }

// ensureRunning starts (or restarts) the background driver goroutine
// against a freshly rooted tree for state, if one is not already running.
func (p *MCTSPlayer) ensureRunning(state *game.GameState) {
	if !p.needsFreshTree {
		return
	}
	p.driver = mcts.NewDriver(p.seed)
	p.tree = mcts.NewTree(state)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.driver.Run(ctx, p.tree)

	p.lastEdge = nil
	p.needsFreshTree = false
}

func (p *MCTSPlayer) GetMove(_ context.Context, state *game.GameState) (move.Move, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureRunning(state)

	m, err := mcts.GetMove(p.driver, state, p.lastEdge, p.tc, p.rng)
	if err != nil {
		return move.Move{}, err
	}
	p.lastEdge = &mcts.Edge{Kind: mcts.MoveEdge, Move: m}
	return m, nil
}

// Stats returns the driver's latest published search statistics, mainly
// for diagnostic logging by a protocol front-end; it is not part of the
// Player interface itself.
func (p *MCTSPlayer) Stats() mcts.RootStatistics {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.driver == nil {
		return mcts.RootStatistics{}
	}
	return p.driver.Stats()
}

// NotifyMove records the move actually played (by this player or an
// opponent) so the next GetMove call can reuse the matching subtree
// instead of discarding the whole search.
func (p *MCTSPlayer) NotifyMove(_ *game.GameState, m move.Move) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastEdge = &mcts.Edge{Kind: mcts.MoveEdge, Move: m}
}

func (p *MCTSPlayer) NotifyFactoriesRefilled(*game.GameState) {}

func (p *MCTSPlayer) NotifyGameOver(*game.GameState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.needsFreshTree = true
}

func (p *MCTSPlayer) SetTime(tc mcts.TimeControl) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tc = tc
}

func (p *MCTSPlayer) NotifyRemainingTime(ms int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tc.RemainingMilliseconds = ms
}

// Reset discards the current search tree and driver; a fresh pair is
// started lazily on the next GetMove, since Reset has no state to root a
// tree at yet.
func (p *MCTSPlayer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.needsFreshTree = true
}
