package mcts

import (
	"math"
	"time"

	"github.com/nikohass/azulcore/move"
)

// RootStatistics is the read-only snapshot the search driver publishes
// between batches. Consumers (the controlling thread, a time controller)
// never touch tree nodes directly.
type RootStatistics struct {
	Visits              float64
	AveragePlayoutDepth float64
	PV                  []move.Move
	Value               []float64
	IterationsPerSecond float64
	TopValue            float64
	TopVisits           float64
	SecondVisits        float64
	BranchingFactor     int
	BestMove            move.Move
	BestMoveOK          bool
	RankedMoves         []move.Move
}

// TimeControlKind selects one of the four supported allocation policies.
type TimeControlKind uint8

const (
	ConstantTimePerMove TimeControlKind = iota
	SuddenDeath
	FischerWithCap
	Incremental
)

// TimeControl carries whichever fields its Kind needs; unused fields are
// ignored.
type TimeControl struct {
	Kind TimeControlKind

	MillisecondsPerMove    int64
	RemainingMilliseconds  int64
	IncrementMilliseconds  int64
	MaxTimeMilliseconds    int64
	NumPlayers             int
	EstimatedRemainingPlies int
}

func (tc TimeControl) estimatedPlies() int {
	if tc.EstimatedRemainingPlies > 0 {
		return tc.EstimatedRemainingPlies
	}
	n := tc.NumPlayers
	if n < 1 {
		n = 1
	}
	plies := 30 / n
	if plies < 1 {
		plies = 1
	}
	return plies
}

func (tc TimeControl) allocatedMilliseconds() int64 {
	switch tc.Kind {
	case ConstantTimePerMove:
		return tc.MillisecondsPerMove
	case SuddenDeath:
		return tc.RemainingMilliseconds / int64(tc.estimatedPlies())
	case FischerWithCap:
		plies := int64(tc.estimatedPlies())
		budget := tc.RemainingMilliseconds + tc.IncrementMilliseconds*plies
		allocated := budget / plies
		if allocated > tc.MaxTimeMilliseconds {
			allocated = tc.MaxTimeMilliseconds
		}
		return allocated
	case Incremental:
		plies := int64(tc.estimatedPlies())
		return tc.RemainingMilliseconds/plies + tc.IncrementMilliseconds
	default:
		return tc.MillisecondsPerMove
	}
}

// Decision is what a time controller returns to the get_move polling
// loop: either stop now, or sleep for the given duration and ask again.
type Decision struct {
	Stop        bool
	ContinueFor time.Duration
}

const earlyStopElapsedFloor = 1500 * time.Millisecond
const earlyStopThreshold = 0.45
const earlyStopVisitFloorForRatioBonus = 100000

// Decide checks the allocated budget first, then — once elapsed exceeds
// 1.5s — combines three convergence "certainties" plus a branching-factor
// bonus into a single score; a score at or above 0.45 stops the search
// before its full allocation is spent.
func Decide(tc TimeControl, start time.Time, stats RootStatistics) Decision {
	allocated := time.Duration(tc.allocatedMilliseconds()) * time.Millisecond
	elapsed := time.Since(start)

	if elapsed >= allocated {
		return Decision{Stop: true}
	}
	if elapsed > earlyStopElapsedFloor && earlyStopScore(stats) >= earlyStopThreshold {
		return Decision{Stop: true}
	}

	sleep := (allocated - elapsed) / 10
	if sleep > 50*time.Millisecond {
		sleep = 50 * time.Millisecond
	}
	if sleep <= 0 {
		sleep = time.Millisecond
	}
	return Decision{ContinueFor: sleep}
}

func earlyStopScore(stats RootStatistics) float64 {
	a := math.Min(1, math.Log10(stats.Visits+1)/6)
	b := 4 * math.Pow(stats.TopValue-0.5, 2)

	var c float64
	if stats.Visits > earlyStopVisitFloorForRatioBonus && stats.TopVisits > stats.SecondVisits*1.05 {
		c = 0.1
	}

	var bfBonus float64
	if stats.BranchingFactor > 1 && stats.BranchingFactor < 20 {
		bfBonus = 0.05
	}

	return a + b + c + bfBonus
}
