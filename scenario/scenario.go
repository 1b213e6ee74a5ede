// Package scenario replays a fixed sequence of game actions from a Lua
// script, giving integration tests a compact way to drive a full Azul
// game (new_game, do_move, fill_factories, check_integrity, ...)
// deterministically without hand-writing hundreds of Go calls for each
// fixture.
package scenario

import (
	"fmt"
	"math/rand"

	lua "github.com/yuin/gopher-lua"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/move"
)

// Runner holds the single GameState a script manipulates, plus the RNG
// used for factory refills so a script is reproducible given the same
// seed.
type Runner struct {
	state *game.GameState
	rng   *rand.Rand
	log   []string
}

// State returns the runner's current game state, or nil if new_game was
// never called by the script.
func (r *Runner) State() *game.GameState { return r.state }

// Log returns every action the script performed, in order, useful for
// failure messages in tests built on top of a scenario.
func (r *Runner) Log() []string { return r.log }

// RunFile executes the Lua script at path against a fresh Runner seeded
// from seed and returns the runner for post-script assertions.
func RunFile(path string, seed int64) (*Runner, error) {
	return run(seed, func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString executes an inline Lua script, for scenarios small enough to
// embed directly in a _test.go file.
func RunString(script string, seed int64) (*Runner, error) {
	return run(seed, func(L *lua.LState) error { return L.DoString(script) })
}

func run(seed int64, exec func(*lua.LState) error) (*Runner, error) {
	r := &Runner{rng: rand.New(rand.NewSource(seed))}

	L := lua.NewState()
	defer L.Close()
	registerAPI(L, r)

	if err := exec(L); err != nil {
		return r, fmt.Errorf("scenario: %w", err)
	}
	return r, nil
}

// registerAPI exposes new_game/do_move/fill_factories/evaluate_round/
// check_integrity/score as Lua globals, each closing over r.
func registerAPI(L *lua.LState, r *Runner) {
	L.SetGlobal("new_game", L.NewFunction(func(L *lua.LState) int {
		numPlayers := L.CheckInt(1)
		state, err := game.New(numPlayers, r.rng)
		if err != nil {
			L.RaiseError("new_game: %v", err)
			return 0
		}
		r.state = state
		r.log = append(r.log, fmt.Sprintf("new_game(%d)", numPlayers))
		return 0
	}))

	L.SetGlobal("fill_factories", L.NewFunction(func(L *lua.LState) int {
		if r.state == nil {
			L.RaiseError("fill_factories: call new_game first")
			return 0
		}
		r.state.FillFactories(r.rng)
		r.log = append(r.log, "fill_factories()")
		return 0
	}))

	L.SetGlobal("do_move", L.NewFunction(func(L *lua.LState) int {
		if r.state == nil {
			L.RaiseError("do_move: call new_game first")
			return 0
		}
		token := L.CheckString(1)
		m, err := move.Parse(token)
		if err != nil {
			L.RaiseError("do_move: parsing %q: %v", token, err)
			return 0
		}
		if err := r.state.DoMove(m); err != nil {
			L.RaiseError("do_move: %q: %v", token, err)
			return 0
		}
		r.log = append(r.log, fmt.Sprintf("do_move(%q)", token))
		return 0
	}))

	L.SetGlobal("evaluate_round", L.NewFunction(func(L *lua.LState) int {
		if r.state == nil {
			L.RaiseError("evaluate_round: call new_game first")
			return 0
		}
		gameOver := r.state.EvaluateRound()
		r.log = append(r.log, "evaluate_round()")
		L.Push(lua.LBool(gameOver))
		return 1
	}))

	L.SetGlobal("check_integrity", L.NewFunction(func(L *lua.LState) int {
		if r.state == nil {
			L.RaiseError("check_integrity: call new_game first")
			return 0
		}
		if err := r.state.CheckIntegrity(); err != nil {
			L.RaiseError("check_integrity: %v", err)
			return 0
		}
		r.log = append(r.log, "check_integrity()")
		return 0
	}))

	L.SetGlobal("score", L.NewFunction(func(L *lua.LState) int {
		if r.state == nil {
			L.RaiseError("score: call new_game first")
			return 0
		}
		player := L.CheckInt(1)
		if player < 0 || player >= len(r.state.Scores) {
			L.RaiseError("score: player %d out of range", player)
			return 0
		}
		L.Push(lua.LNumber(r.state.Scores[player]))
		return 1
	}))
}
