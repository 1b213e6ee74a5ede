// Package analyzer replays a recorded game and reports each move's equity
// loss against a bounded MCTS search's top choice at the position it was
// played from. It is a read-only companion meant for post-game review
// rather than move selection at play time.
package analyzer

import (
	"encoding/json"
	"math/rand"
	"sort"

	"github.com/samber/lo"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
)

// analysisIterations bounds how many MCTS playouts Rank runs per
// position: enough to force-visit every legal move at least once (UCT
// always expands an unvisited child before revisiting one) and settle
// their relative order, without the open-ended search a live player
// would run under a real clock.
const analysisIterations = 800

// RankedMove is one candidate's search-estimated equity at a position.
type RankedMove struct {
	Move  move.Move `json:"move"`
	Score float64   `json:"score"`
}

// Rank runs a bounded MCTS search rooted at state and returns every
// legal move sorted best-first by the search's value estimate for the
// player to move. rng drives the search's rollouts and its own
// chance-node sampling; it does not mutate state.
func Rank(state *game.GameState, rng *rand.Rand) ([]RankedMove, error) {
	tree := mcts.NewTree(state)
	for i := 0; i < analysisIterations; i++ {
		if _, err := tree.Iterate(rng); err != nil {
			return nil, err
		}
	}

	values := tree.RankedMoveValues()
	ranked := lo.Map(values, func(v mcts.MoveValue, _ int) RankedMove {
		return RankedMove{Move: v.Move, Score: v.Value}
	})
	return ranked, nil
}

// HistoryEntry is one ply of an already-completed game: the state before
// the move and the move that was actually played from it.
type HistoryEntry struct {
	State  *game.GameState
	Player int
	Played move.Move
}

// MoveAnnotation reports how the played move at one ply compares to the
// bounded search's top choice available at that position.
type MoveAnnotation struct {
	PlyIndex    int       `json:"ply_index"`
	Player      int       `json:"player"`
	Played      move.Move `json:"played"`
	PlayedScore float64   `json:"played_score"`
	BestMove    move.Move `json:"best_move"`
	BestScore   float64   `json:"best_score"`
	ScoreLoss   float64   `json:"score_loss"`
}

// AnnotateGame ranks every entry's position and records how far the
// played move fell short of the search's best available one. A zero
// ScoreLoss means the played move was (tied for) best.
func AnnotateGame(history []HistoryEntry, rng *rand.Rand) ([]MoveAnnotation, error) {
	annotations := make([]MoveAnnotation, 0, len(history))

	for i, entry := range history {
		ranked, err := Rank(entry.State, rng)
		if err != nil {
			return nil, err
		}
		if len(ranked) == 0 {
			continue
		}

		best := ranked[0]
		playedScore := scoreOf(ranked, entry.Played)

		annotations = append(annotations, MoveAnnotation{
			PlyIndex:    i,
			Player:      entry.Player,
			Played:      entry.Played,
			PlayedScore: playedScore,
			BestMove:    best.Move,
			BestScore:   best.Score,
			ScoreLoss:   best.Score - playedScore,
		})
	}
	return annotations, nil
}

// scoreOf looks up m's search value estimate among ranked. The bounded
// search force-visits every legal move at least once, so a move the
// history claims was legal at this position is always present.
func scoreOf(ranked []RankedMove, m move.Move) float64 {
	for _, r := range ranked {
		if r.Move.Equal(m) {
			return r.Score
		}
	}
	return 0
}

// ToJSON renders annotations as indented JSON.
func ToJSON(annotations []MoveAnnotation) ([]byte, error) {
	return json.MarshalIndent(annotations, "", "  ")
}

// WorstAnnotations returns the n annotations with the largest ScoreLoss,
// the blunders an after-game review would surface first.
func WorstAnnotations(annotations []MoveAnnotation, n int) []MoveAnnotation {
	sorted := lo.Filter(annotations, func(a MoveAnnotation, _ int) bool { return a.ScoreLoss > 0 })
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ScoreLoss > sorted[j].ScoreLoss })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
