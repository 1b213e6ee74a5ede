package player

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/tile"
)

// lineDescription labels pattern-line index 0..4 and the floor line at
// index 5, matching Move.Distribution's layout.
var lineDescription = [6]string{"1st", "2nd", "3rd", "4th", "5th", "floor"}

// HumanPlayer narrows the legal move list down to one by prompting for a
// factory, then a color, then a pattern line, reprompting at each step
// until only one candidate remains. It is meant for an interactive
// terminal session, not the stdio engine protocol.
type HumanPlayer struct {
	name string
	rng  *rand.Rand
	rl   *readline.Instance
}

// NewHumanPlayer opens a readline instance against the process's stdio.
// Callers must call Close when done with the player.
func NewHumanPlayer(seed int64) (*HumanPlayer, error) {
	rl, err := readline.New("azul> ")
	if err != nil {
		return nil, err
	}
	return &HumanPlayer{name: "Human", rng: rand.New(rand.NewSource(seed)), rl: rl}, nil
}

func (p *HumanPlayer) Close() error { return p.rl.Close() }

func (p *HumanPlayer) GetName() string     { return p.name }
func (p *HumanPlayer) SetName(name string) { p.name = name }

func (p *HumanPlayer) GetMove(_ context.Context, state *game.GameState) (move.Move, error) {
	var list movegen.MoveList
	result, err := movegen.PossibleMoves(state.Clone(), &list, p.rng)
	if err != nil {
		return move.Move{}, err
	}
	if result == movegen.GameOver || len(list.Moves) == 0 {
		return move.Move{}, errs.InvalidGameState("no legal moves at get_move")
	}

	for {
		remaining := append([]move.Move(nil), list.Moves...)

		remaining, err := p.promptFactory(remaining)
		if err != nil {
			return move.Move{}, err
		}
		remaining, err = p.promptColor(remaining)
		if err != nil {
			return move.Move{}, err
		}
		remaining, err = p.promptLine(remaining)
		if err != nil {
			return move.Move{}, err
		}

		if len(remaining) == 1 {
			return remaining[0], nil
		}
		fmt.Fprintln(p.rl.Stderr(), "that still matches more than one move, try again")
	}
}

func (p *HumanPlayer) promptFactory(candidates []move.Move) ([]move.Move, error) {
	factories := map[uint8]bool{}
	for _, m := range candidates {
		factories[m.FactoryIndex] = true
	}
	if len(factories) == 1 {
		return candidates, nil
	}

	options := make([]string, 0, len(factories))
	for idx := range factories {
		if idx == move.CenterFactoryIndex {
			options = append(options, "C")
		} else {
			options = append(options, strconv.Itoa(int(idx)))
		}
	}
	sort.Strings(options)
	fmt.Fprintf(p.rl.Stderr(), "select a factory (%s): ", strings.Join(options, ", "))

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	line = strings.TrimSpace(strings.ToUpper(line))

	var chosen uint8
	if line == "C" {
		chosen = move.CenterFactoryIndex
	} else {
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.rl.Stderr(), "not a valid factory")
			return p.promptFactory(candidates)
		}
		chosen = uint8(n)
	}
	if !factories[chosen] {
		fmt.Fprintln(p.rl.Stderr(), "that factory is not offering a legal move")
		return p.promptFactory(candidates)
	}

	out := candidates[:0:0]
	for _, m := range candidates {
		if m.FactoryIndex == chosen {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *HumanPlayer) promptColor(candidates []move.Move) ([]move.Move, error) {
	colors := map[tile.Color]bool{}
	for _, m := range candidates {
		colors[m.Color] = true
	}
	if len(colors) == 1 {
		return candidates, nil
	}

	var options []string
	for c := range colors {
		options = append(options, string(c.Char()))
	}
	sort.Strings(options)
	fmt.Fprintf(p.rl.Stderr(), "select a color (%s): ", strings.Join(options, ", "))

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	line = strings.TrimSpace(strings.ToUpper(line))
	if len(line) != 1 {
		fmt.Fprintln(p.rl.Stderr(), "not a valid color")
		return p.promptColor(candidates)
	}
	chosen, ok := tile.FromChar(line[0])
	if !ok || !colors[chosen] {
		fmt.Fprintln(p.rl.Stderr(), "that color is not available")
		return p.promptColor(candidates)
	}

	out := candidates[:0:0]
	for _, m := range candidates {
		if m.Color == chosen {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *HumanPlayer) promptLine(candidates []move.Move) ([]move.Move, error) {
	if len(candidates) == 1 {
		return candidates, nil
	}

	lines := map[int]bool{}
	for _, m := range candidates {
		for i, n := range m.Distribution {
			if n > 0 {
				lines[i] = true
			}
		}
	}
	var options []string
	for i := 0; i < 6; i++ {
		if lines[i] {
			options = append(options, fmt.Sprintf("%d=%s", i+1, lineDescription[i]))
		}
	}
	fmt.Fprintf(p.rl.Stderr(), "select a pattern line (%s): ", strings.Join(options, ", "))

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > 6 || !lines[n-1] {
		fmt.Fprintln(p.rl.Stderr(), "not a valid pattern line")
		return p.promptLine(candidates)
	}
	row := n - 1

	out := candidates[:0:0]
	for _, m := range candidates {
		if m.Distribution[row] > 0 {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *HumanPlayer) readLine() (string, error) {
	line, err := p.rl.Readline()
	if err == io.EOF || err == readline.ErrInterrupt {
		return "", errs.InvalidGameState("input closed")
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (p *HumanPlayer) NotifyMove(_ *game.GameState, m move.Move) {
	fmt.Fprintf(p.rl.Stderr(), "opponent played %s\n", m)
}
func (p *HumanPlayer) NotifyFactoriesRefilled(*game.GameState) {
	fmt.Fprintln(p.rl.Stderr(), "factories refilled")
}
func (p *HumanPlayer) NotifyGameOver(state *game.GameState) {
	fmt.Fprintf(p.rl.Stderr(), "game over, scores: %v\n", state.Scores)
}
func (p *HumanPlayer) SetTime(mcts.TimeControl)  {}
func (p *HumanPlayer) NotifyRemainingTime(int64) {}
func (p *HumanPlayer) Reset()                    {}
