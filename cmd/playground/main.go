// Command playground runs one full in-process match between configured
// players and prints each turn, the same exploratory tool the original
// Rust playground binary was: build some players, run_match, watch.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nikohass/azulcore/config"
	"github.com/nikohass/azulcore/errs"
	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/movegen"
	"github.com/nikohass/azulcore/player"
)

func main() {
	configPath := flag.String("config", "", "path to a match TOML file; if empty, runs a default 2-player MCTS-vs-MCTS match")
	verbose := flag.Bool("verbose", true, "print every turn as it's played")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	mc, err := loadOrDefault(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading match config")
	}

	players, err := buildPlayers(mc)
	if err != nil {
		log.Fatal().Err(err).Msg("building players")
	}

	rng := rand.New(rand.NewSource(mc.Game.Seed))
	state, err := game.New(mc.Game.NumPlayers, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("creating game")
	}

	if err := runMatch(state, players, rng, *verbose); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}

func loadOrDefault(path string) (*config.MatchConfig, error) {
	if path == "" {
		return &config.MatchConfig{
			Game: config.GameConfig{
				NumPlayers:  2,
				TimeControl: mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: config.DefaultMillisecondsPerMove},
			},
			Players: []config.PlayerConfig{
				{Name: "Player 1", Kind: config.KindMCTS, Level: 5, Seed: 1, ThinkTimeMillis: config.DefaultMillisecondsPerMove},
				{Name: "Player 2", Kind: config.KindMCTS, Level: 5, Seed: 2, ThinkTimeMillis: config.DefaultMillisecondsPerMove},
			},
		}, nil
	}
	return config.Load(path)
}

func buildPlayers(mc *config.MatchConfig) ([]player.Player, error) {
	players := make([]player.Player, 0, len(mc.Players))
	for _, pc := range mc.Players {
		switch pc.Kind {
		case config.KindRandom:
			p := player.NewRandomPlayer(pc.Seed)
			p.SetName(pc.Name)
			players = append(players, p)
		case config.KindHeuristic:
			p := player.NewHeuristicPlayer(pc.Seed)
			p.SetName(pc.Name)
			players = append(players, p)
		case config.KindMCTS:
			inner := player.NewMCTSPlayer(pc.Seed, pc.TimeControl())
			inner.SetName(pc.Name)
			level := player.StrengthLevel(pc.Level)
			if level < player.Strength1 || level > player.Strength5 {
				level = player.Strength5
			}
			players = append(players, player.NewStrengthLimitedPlayer(inner, level, pc.Seed))
		case config.KindHuman:
			p, err := player.NewHumanPlayer(pc.Seed)
			if err != nil {
				return nil, fmt.Errorf("building human player %q: %w", pc.Name, err)
			}
			p.SetName(pc.Name)
			players = append(players, p)
		case config.KindExternal:
			return nil, fmt.Errorf("player %q: external engine players are out of scope for this playground; use cmd/engine directly from a match runner", pc.Name)
		default:
			return nil, fmt.Errorf("player %q: unknown kind %q", pc.Name, pc.Kind)
		}
	}
	return players, nil
}

// runMatch mirrors the original playground's run_match loop: refill
// notifications, a verbose per-turn trace, illegal-move detection
// against the freshly generated legal set, and the end-of-game
// notify/reset sweep.
func runMatch(state *game.GameState, players []player.Player, rng *rand.Rand, verbose bool) error {
	if len(players) != state.NumPlayers {
		return errs.PlayerCountMismatch(len(players))
	}

	if err := state.CheckIntegrity(); err != nil {
		return err
	}
	for _, p := range players {
		p.NotifyFactoriesRefilled(state)
	}

	var list movegen.MoveList
	for {
		if verbose {
			fmt.Println(state.Serialize())
		}

		result, err := movegen.PossibleMoves(state, &list, rng)
		if err != nil {
			return err
		}
		if result == movegen.GameOver {
			break
		}
		if result == movegen.RoundOver {
			if verbose {
				fmt.Println("factories refilled")
			}
			for _, p := range players {
				p.NotifyFactoriesRefilled(state)
			}
		}

		current := state.CurrentPlayer
		start := time.Now()
		m, err := players[current].GetMove(context.Background(), state)
		elapsed := time.Since(start)

		if !containsMove(list.Moves, m) {
			return errs.IllegalMove(m.String(), fmt.Sprintf("player %d returned a move absent from the legal set", current))
		}
		if verbose {
			fmt.Printf("player %d: %s (%s)\n", current, m.String(), elapsed.Round(time.Millisecond))
		}

		if err := state.DoMove(m); err != nil {
			return err
		}
		for _, p := range players {
			p.NotifyMove(state, m)
		}
		if err := state.CheckIntegrity(); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Println(state.Serialize())
		fmt.Println("scores:", state.Scores)
	}
	for _, p := range players {
		p.NotifyGameOver(state)
		p.Reset()
	}
	return nil
}

func containsMove(legal []move.Move, m move.Move) bool {
	for _, candidate := range legal {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}
