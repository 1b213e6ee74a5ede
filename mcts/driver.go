package mcts

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
)

type commandKind uint8

const (
	cmdStartWorking commandKind = iota
	cmdStopWorking
	cmdAdvanceRoot
	cmdTerminate
)

type command struct {
	kind  commandKind
	state *game.GameState
	edge  *Edge
}

const initialIterationsPerStep = 100
const batchTargetWallTime = 10 * time.Millisecond
const batchWallTimeCap = 1 * time.Second

// estimatedBytesPerNode is a rough accounting of one Node plus its Edge
// and Q slice, used only to size a conservative node budget from system
// memory; it does not need to be exact.
const estimatedBytesPerNode = 256

// memoryBudgetFraction caps the search tree at this fraction of total
// system memory, leaving headroom for everything else sharing the host.
const memoryBudgetFraction = 0.25

// defaultNodeBudget is queried once at package init via pbnjay/memory,
// the same host-memory-probing library the rest of the pack uses to size
// caches against whatever machine the engine actually runs on.
var defaultNodeBudget = nodeBudgetFromSystemMemory()

func nodeBudgetFromSystemMemory() uint64 {
	total := memory.TotalMemory()
	if total == 0 {
		return math.MaxUint64
	}
	return uint64(float64(total) * memoryBudgetFraction / estimatedBytesPerNode)
}

// Driver runs a single background worker goroutine that owns a Tree
// exclusively. The controlling thread talks to it only through an
// unbuffered command channel and atomic reads of RootStatistics; there is
// no other shared mutable state.
type Driver struct {
	commands chan command
	stats    atomic.Pointer[RootStatistics]
	nodes    atomic.Uint64
	rng      *rand.Rand
}

// NewDriver creates an idle driver seeded from seed. Run must be called
// (typically in its own goroutine) before any command has an effect.
func NewDriver(seed int64) *Driver {
	d := &Driver{
		commands: make(chan command),
		rng:      rand.New(rand.NewSource(seed)),
	}
	d.stats.Store(&RootStatistics{})
	return d
}

func (d *Driver) Stats() RootStatistics { return *d.stats.Load() }

func (d *Driver) StartWorking() { d.commands <- command{kind: cmdStartWorking} }
func (d *Driver) StopWorking()  { d.commands <- command{kind: cmdStopWorking} }

// AdvanceRoot rebases the tree onto state, reusing the subtree reached by
// edge (the last move this driver itself played or observed) if present.
// Pass a nil edge to force a fresh tree.
func (d *Driver) AdvanceRoot(state *game.GameState, edge *Edge) {
	d.commands <- command{kind: cmdAdvanceRoot, state: state, edge: edge}
}

func (d *Driver) Terminate() { d.commands <- command{kind: cmdTerminate} }

// Run owns tree for its lifetime, processing commands and, while working,
// running search batches between them. An errgroup pairs the search loop
// against a ticking nodes-per-second logger, both stopping cooperatively
// when the loop returns or ctx is cancelled.
func (d *Driver) Run(ctx context.Context, tree *Tree) error {
	g, ctx := errgroup.WithContext(ctx)
	workDone := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var last uint64
		for {
			select {
			case <-ticker.C:
				n := d.nodes.Load()
				log.Debug().Uint64("nps", n-last).Msg("mcts-nodes-per-second")
				last = n
			case <-workDone:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer close(workDone)
		return d.loop(ctx, tree)
	})

	err := g.Wait()
	log.Info().Uint64("nodes", d.nodes.Load()).Msg("mcts-driver-returning")
	return err
}

func (d *Driver) loop(ctx context.Context, tree *Tree) error {
	working := false
	iterationsPerStep := initialIterationsPerStep
	totalIterations := 0
	var totalElapsed time.Duration

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-d.commands:
			if d.handleCommand(cmd, tree, &working) {
				return nil
			}
			continue
		default:
		}

		if !working {
			select {
			case <-ctx.Done():
				return nil
			case cmd := <-d.commands:
				if d.handleCommand(cmd, tree, &working) {
					return nil
				}
			}
			continue
		}

		if d.nodes.Load() >= defaultNodeBudget {
			log.Warn().Uint64("budget", defaultNodeBudget).Msg("mcts-node-budget-reached, idling until next AdvanceRoot")
			working = false
			continue
		}

		start := time.Now()
		depthSum := 0
		for i := 0; i < iterationsPerStep; i++ {
			depth, err := tree.Iterate(d.rng)
			if err != nil {
				return errs.EngineCrash(err)
			}
			depthSum += depth
			d.nodes.Add(1)
		}
		totalIterations += iterationsPerStep
		totalElapsed += time.Since(start)

		d.publishStats(tree, depthSum, totalIterations, totalElapsed)
		iterationsPerStep = nextBatchSize(totalIterations, totalElapsed)
	}
}

// handleCommand applies cmd to tree/working and reports whether the
// driver should terminate.
func (d *Driver) handleCommand(cmd command, tree *Tree, working *bool) bool {
	switch cmd.kind {
	case cmdStartWorking:
		*working = true
	case cmdStopWorking:
		*working = false
	case cmdAdvanceRoot:
		tree.AdvanceRoot(cmd.state, cmd.edge)
		d.nodes.Store(0)
		d.publishStats(tree, 0, 0, 0)
	case cmdTerminate:
		return true
	}
	return false
}

// nextBatchSize recomputes throughput over the whole search so far and
// targets a ~10ms batch, capped so a single batch never aims past 1s of
// wall time.
func nextBatchSize(totalIterations int, totalElapsed time.Duration) int {
	if totalElapsed <= 0 || totalIterations == 0 {
		return initialIterationsPerStep
	}
	perSecond := float64(totalIterations) / totalElapsed.Seconds()

	target := perSecond * batchTargetWallTime.Seconds()
	ceiling := perSecond * batchWallTimeCap.Seconds()
	if target > ceiling {
		target = ceiling
	}
	if target < 1 {
		target = 1
	}
	return int(math.Round(target))
}

func (d *Driver) publishStats(tree *Tree, depthSum, totalIterations int, totalElapsed time.Duration) {
	stats := RootStatistics{
		Visits: tree.Root.N,
		PV:     tree.PrincipalVariation(),
	}

	if bm, ok := tree.BestMove(); ok {
		stats.BestMove = bm
		stats.BestMoveOK = true
	}
	stats.RankedMoves = tree.RankedMoves()

	if totalElapsed > 0 {
		stats.IterationsPerSecond = float64(totalIterations) / totalElapsed.Seconds()
	}
	if totalIterations > 0 {
		stats.AveragePlayoutDepth = float64(depthSum) / float64(totalIterations)
	}

	children := rootPolicyChildren(tree.Root)
	stats.BranchingFactor = len(children)
	if len(children) > 0 {
		if byValue := bestChildByValue(children, tree.Root.PlayerToMove); byValue != nil {
			stats.TopValue = byValue.Value(tree.Root.PlayerToMove)
		}
		topByVisits := mostVisitedChild(children)
		stats.TopVisits = topByVisits.N
		if second := secondMostVisited(children, topByVisits); second != nil {
			stats.SecondVisits = second.N
		}
	}

	d.stats.Store(&stats)
}

func rootPolicyChildren(root *Node) []*Node {
	if root.HasChanceChildren {
		if len(root.Children) == 0 {
			return nil
		}
		return mostVisitedChild(root.Children).Children
	}
	return root.Children
}

func secondMostVisited(children []*Node, best *Node) *Node {
	var second *Node
	bestN := -1.0
	for _, c := range children {
		if c == best {
			continue
		}
		if c.N > bestN {
			bestN = c.N
			second = c
		}
	}
	return second
}

// GetMove drives one full search-and-decide cycle against a driver whose
// Run loop is already executing in another goroutine: it advances the
// root, starts the worker, polls statistics against tc until told to
// stop, then stops the worker and reads the best-move policy, falling
// back to a uniformly random legal move if the policy is empty or has
// gone stale (no longer among the freshly generated legal moves).
func GetMove(d *Driver, state *game.GameState, observedEdge *Edge, tc TimeControl, rng *rand.Rand) (move.Move, error) {
	d.AdvanceRoot(state, observedEdge)
	d.StartWorking()
	time.Sleep(2 * time.Millisecond)

	start := time.Now()
	for {
		decision := Decide(tc, start, d.Stats())
		if decision.Stop {
			break
		}
		time.Sleep(decision.ContinueFor)
	}
	d.StopWorking()

	var list movegen.MoveList
	result, err := movegen.PossibleMoves(state.Clone(), &list, rng)
	if err != nil {
		return move.Move{}, err
	}
	if result == movegen.GameOver || len(list.Moves) == 0 {
		return move.Move{}, errs.InvalidGameState("no legal moves at get_move")
	}

	stats := d.Stats()
	if stats.BestMoveOK && moveIsLegal(stats.BestMove, list.Moves) {
		return stats.BestMove, nil
	}
	return list.Moves[rng.Intn(len(list.Moves))], nil
}

func moveIsLegal(m move.Move, legal []move.Move) bool {
	for _, candidate := range legal {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}
