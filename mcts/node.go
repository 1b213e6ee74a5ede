// Package mcts implements the Monte Carlo tree search used to pick moves:
// a tree of deterministic (move) and chance (factory-refill) nodes, UCT
// selection, a lazy chance-expansion schedule, and a background search
// driver built around a command channel and a read-only statistics
// snapshot.
package mcts

import (
	"math"

	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/tile"
)

// EdgeKind distinguishes a deterministic move transition from a sampled
// factory-refill transition.
type EdgeKind uint8

const (
	MoveEdge EdgeKind = iota
	ChanceEdge
)

// ProbabilisticOutcome captures the realized result of a round's factory
// refill: which colors ended up where. Replaying it against a cloned
// pre-refill state deterministically reproduces the chance child's
// position without re-drawing from the bag.
type ProbabilisticOutcome struct {
	Factories [][tile.NumColors]uint8
	Bag       [tile.NumColors]uint8
	OutOfBag  [tile.NumColors]uint8
}

// Edge is the label on the link from a node to its parent: either the
// move played or the outcome sampled.
type Edge struct {
	Kind    EdgeKind
	Move    move.Move
	Outcome ProbabilisticOutcome
}

// Equal reports whether two edges represent the same transition. Chance
// edges never compare equal to each other here — tree reuse only ever
// matches against an externally observed move.
func (e Edge) Equal(other Edge) bool {
	if e.Kind != other.Kind {
		return false
	}
	if e.Kind == MoveEdge {
		return e.Move.Equal(other.Move)
	}
	return false
}

// Node is one position in the search tree. PlayerToMove and Children are
// populated at expansion time; until then the node is an unexpanded leaf.
type Node struct {
	Edge     Edge
	Children []*Node

	N float64
	Q []float64

	PlayerToMove int

	IsTerminal          bool
	HasChanceChildren   bool
	CachedTerminalValue []float64
}

func newMoveNode(m move.Move, numPlayers int) *Node {
	return &Node{Edge: Edge{Kind: MoveEdge, Move: m}, Q: make([]float64, numPlayers)}
}

func newChanceNode(outcome ProbabilisticOutcome, numPlayers, playerToMove int) *Node {
	return &Node{
		Edge:         Edge{Kind: ChanceEdge, Outcome: outcome},
		Q:            make([]float64, numPlayers),
		PlayerToMove: playerToMove,
	}
}

// Value returns Q/N for player p, or negative infinity if the node has
// never been visited.
func (n *Node) Value(p int) float64 {
	if n.N == 0 {
		return math.Inf(-1)
	}
	return n.Q[p] / n.N
}

// bestChildByValue picks the child with the highest Value for player p,
// used both by principal-variation extraction and the root move policy.
func bestChildByValue(children []*Node, p int) *Node {
	var best *Node
	bestVal := math.Inf(-1)
	for _, c := range children {
		v := c.Value(p)
		if v > bestVal {
			bestVal = v
			best = c
		}
	}
	return best
}

func mostVisitedChild(children []*Node) *Node {
	var best *Node
	bestN := -1.0
	for _, c := range children {
		if c.N > bestN {
			bestN = c.N
			best = c
		}
	}
	return best
}
