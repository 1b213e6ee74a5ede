package mcts

import (
	"math"
	"math/rand"
	"sort"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/playout"
	"github.com/nikohass/azulcore/tile"
)

// Tree owns the search tree's root and the game state it is rooted at.
// It is not safe for concurrent use; the search driver serializes all
// access to a single goroutine.
type Tree struct {
	RootState *game.GameState
	Root      *Node
}

// NewTree roots a fresh, unexpanded tree at a clone of state.
func NewTree(state *game.GameState) *Tree {
	return &Tree{
		RootState: state.Clone(),
		Root:      &Node{Q: make([]float64, state.NumPlayers), PlayerToMove: state.CurrentPlayer},
	}
}

// Iterate runs one select-expand-rollout-backpropagate pass and returns
// the depth of the expanded (or terminal) leaf, for throughput/depth
// statistics.
func (t *Tree) Iterate(rng *rand.Rand) (int, error) {
	state := t.RootState.Clone()
	node := t.Root
	path := []*Node{node}

	for !node.IsTerminal && len(node.Children) > 0 {
		var child *Node
		if node.HasChanceChildren {
			child, state = selectOrGrowChanceChild(node, state, rng)
		} else {
			child = selectUCTChild(node, node.PlayerToMove)
			if err := state.DoMove(child.Edge.Move); err != nil {
				return 0, err
			}
		}
		node = child
		path = append(path, node)
	}

	var value []float64
	if node.IsTerminal {
		value = node.CachedTerminalValue
	} else {
		v, err := expand(node, state, rng)
		if err != nil {
			return 0, err
		}
		value = v
	}

	for _, n := range path {
		n.N++
		for p := range n.Q {
			n.Q[p] += value[p]
		}
	}
	return len(path) - 1, nil
}

// expand generates node's children from state (a position node has never
// been expanded at before) and returns the rollout value backed up from
// this new leaf.
func expand(node *Node, state *game.GameState, rng *rand.Rand) ([]float64, error) {
	var list movegen.MoveList
	result, err := movegen.PossibleMoves(state, &list, rng)
	if err != nil {
		return nil, err
	}

	if result == movegen.GameOver {
		node.IsTerminal = true
		node.CachedTerminalValue = playout.ValueVector(state)
		return node.CachedTerminalValue, nil
	}

	node.PlayerToMove = state.CurrentPlayer
	if len(node.Q) != state.NumPlayers {
		node.Q = make([]float64, state.NumPlayers)
	}

	if result == movegen.RoundOver {
		chance := newChanceNode(captureOutcome(state), state.NumPlayers, state.CurrentPlayer)
		for _, m := range list.Moves {
			chance.Children = append(chance.Children, newMoveNode(m, state.NumPlayers))
		}
		node.Children = []*Node{chance}
		node.HasChanceChildren = true
	} else {
		for _, m := range list.Moves {
			node.Children = append(node.Children, newMoveNode(m, state.NumPlayers))
		}
	}

	return playout.Rollout(state, rng)
}

func captureOutcome(state *game.GameState) ProbabilisticOutcome {
	factories := make([][tile.NumColors]uint8, len(state.Factories))
	copy(factories, state.Factories)
	return ProbabilisticOutcome{Factories: factories, Bag: state.Bag, OutOfBag: state.OutOfBag}
}

func applyOutcome(state *game.GameState, outcome ProbabilisticOutcome) {
	state.EvaluateRound()
	factories := make([][tile.NumColors]uint8, len(outcome.Factories))
	copy(factories, outcome.Factories)
	state.Factories = factories
	state.Bag = outcome.Bag
	state.OutOfBag = outcome.OutOfBag
}

// selectOrGrowChanceChild implements the probabilistic expansion schedule:
// the target chance-child count is ceil(sqrt(N)/2) of the deterministic
// parent's visits. Below target, a fresh outcome is sampled and attached;
// at or above target, an existing chance child is chosen uniformly. state
// must be the pre-refill position at parent. Returns the chosen child and
// the post-refill state to continue descending from.
func selectOrGrowChanceChild(parent *Node, state *game.GameState, rng *rand.Rand) (*Node, *game.GameState) {
	target := int(math.Ceil(math.Sqrt(parent.N) / 2))
	if target < 1 {
		target = 1
	}

	if len(parent.Children) < target {
		clone := state.Clone()
		clone.EvaluateRound()
		clone.FillFactories(rng)

		chance := newChanceNode(captureOutcome(clone), clone.NumPlayers, clone.CurrentPlayer)
		var list movegen.MoveList
		movegen.Generate(clone, &list)
		for _, m := range list.Moves {
			chance.Children = append(chance.Children, newMoveNode(m, clone.NumPlayers))
		}
		parent.Children = append(parent.Children, chance)
		return chance, clone
	}

	chosen := parent.Children[rng.Intn(len(parent.Children))]
	applyOutcome(state, chosen.Edge.Outcome)
	return chosen, state
}

// AdvanceRoot reroots the tree at new_state. If the current root has a
// child reached by observedEdge, that subtree is promoted and reused;
// otherwise the tree is discarded and a fresh one started. Chance
// transitions are never externally observed, so a root with
// has_chance_children always falls into the discard path.
func (t *Tree) AdvanceRoot(newState *game.GameState, observedEdge *Edge) {
	if observedEdge != nil {
		for _, child := range t.Root.Children {
			if child.Edge.Equal(*observedEdge) {
				t.Root = child
				t.RootState = newState.Clone()
				return
			}
		}
	}
	t.Root = &Node{Q: make([]float64, newState.NumPlayers), PlayerToMove: newState.CurrentPlayer}
	t.RootState = newState.Clone()
}

// BestMove returns the root's current best move policy, transparently
// unwrapping a chance-child layer at the root if one exists (picking the
// most-sampled realized refill, then the best move under it).
func (t *Tree) BestMove() (move.Move, bool) {
	node := t.Root
	if node.HasChanceChildren {
		if len(node.Children) == 0 {
			return move.Move{}, false
		}
		node = mostVisitedChild(node.Children)
	}
	if len(node.Children) == 0 {
		return move.Move{}, false
	}
	best := bestChildByValue(node.Children, node.PlayerToMove)
	if best == nil {
		return move.Move{}, false
	}
	return best.Edge.Move, true
}

// RankedMoves returns the root's legal moves ordered best-first by
// current value estimate, transparently unwrapping a chance layer at the
// root the same way BestMove does. Used by strength-limited play to
// sample among the top-K rated moves instead of always the single best.
func (t *Tree) RankedMoves() []move.Move {
	values := t.RankedMoveValues()
	moves := make([]move.Move, len(values))
	for i, v := range values {
		moves[i] = v.Move
	}
	return moves
}

// MoveValue pairs a root move with the search's current value estimate
// for the player to move.
type MoveValue struct {
	Move  move.Move
	Value float64
}

// RankedMoveValues is RankedMoves with each move's value estimate
// alongside it, for callers (the post-game analyzer) that need the
// estimate itself rather than just the ordering.
func (t *Tree) RankedMoveValues() []MoveValue {
	node := t.Root
	if node.HasChanceChildren {
		if len(node.Children) == 0 {
			return nil
		}
		node = mostVisitedChild(node.Children)
	}
	if len(node.Children) == 0 {
		return nil
	}

	player := node.PlayerToMove
	ranked := make([]*Node, len(node.Children))
	copy(ranked, node.Children)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Value(player) > ranked[j].Value(player)
	})

	values := make([]MoveValue, len(ranked))
	for i, n := range ranked {
		values[i] = MoveValue{Move: n.Edge.Move, Value: n.Value(player)}
	}
	return values
}

// PrincipalVariation walks the highest-value child at each deterministic
// node from the root, transparently descending through chance layers,
// until reaching an unexpanded leaf.
func (t *Tree) PrincipalVariation() []move.Move {
	var pv []move.Move
	node := t.Root
	state := t.RootState.Clone()

	for len(node.Children) > 0 {
		if node.HasChanceChildren {
			best := mostVisitedChild(node.Children)
			if best == nil {
				break
			}
			applyOutcome(state, best.Edge.Outcome)
			node = best
			continue
		}

		best := bestChildByValue(node.Children, node.PlayerToMove)
		if best == nil {
			break
		}
		if err := state.DoMove(best.Edge.Move); err != nil {
			break
		}
		pv = append(pv, best.Edge.Move)
		node = best
	}
	return pv
}
