// Package config loads match configuration from TOML: the shared
// [game] section (player count, time control) and one [player_N]
// section per seat, each naming either a built-in player kind or an
// external engine executable. It never spawns a process itself — that
// is the job of whatever match runner consumes Argv().
package config

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/viper"

	"github.com/nikohass/azulcore/mcts"
)

// Default values used when a TOML file omits a key entirely.
const (
	DefaultNumPlayers          = 2
	DefaultMillisecondsPerMove = 1000
)

// GameConfig is the parsed [game] section.
type GameConfig struct {
	NumPlayers  int
	TimeControl mcts.TimeControl
	Seed        int64
}

// PlayerKind names a built-in player implementation selectable from a
// [player_N] section's "kind" key.
type PlayerKind string

const (
	KindRandom    PlayerKind = "random"
	KindHeuristic PlayerKind = "heuristic"
	KindHuman     PlayerKind = "human"
	KindMCTS      PlayerKind = "mcts"
	KindExternal  PlayerKind = "external"
)

// PlayerConfig is the parsed [player_N] section for one seat.
type PlayerConfig struct {
	Name   string
	Kind   PlayerKind
	Level  int // 1..5, only meaningful when Kind == KindMCTS
	Seed   int64

	// ThinkTimeMillis is this seat's own move time budget ("think_time").
	// Only meaningful for Kind == KindMCTS and KindExternal; cmd/playground
	// builds a KindMCTS seat's MCTSPlayer with TimeControl(), and other
	// kinds ignore it.
	ThinkTimeMillis int64

	// Executable is the raw "executable" string from TOML, used only
	// when Kind == KindExternal. Tokenize it with Argv before handing
	// it to an external process launcher.
	Executable string
}

// TimeControl builds the mcts.TimeControl this seat's GetMove should be
// bound by, from ThinkTimeMillis.
func (pc PlayerConfig) TimeControl() mcts.TimeControl {
	return mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: pc.ThinkTimeMillis}
}

// Argv tokenizes Executable with shell-word splitting rules (quoting,
// escapes), the same splitting a shell would apply before exec'ing it.
// It returns an error if Executable is not valid shell syntax (e.g. an
// unterminated quote).
func (pc PlayerConfig) Argv() ([]string, error) {
	if strings.TrimSpace(pc.Executable) == "" {
		return nil, fmt.Errorf("config: player %q has no executable", pc.Name)
	}
	return shellquote.Split(pc.Executable)
}

// MatchConfig is a fully parsed match configuration: one GameConfig plus
// one PlayerConfig per seat, indexed 0..NumPlayers-1.
type MatchConfig struct {
	Game    GameConfig
	Players []PlayerConfig
}

// Load reads and validates a TOML match configuration from path.
func Load(path string) (*MatchConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetDefault("game.num_players", DefaultNumPlayers)
	v.SetDefault("game.time_control_ms", DefaultMillisecondsPerMove)
	v.SetDefault("game.seed", 0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	numPlayers := v.GetInt("game.num_players")
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("config: game.num_players must be 2..4, got %d", numPlayers)
	}

	mc := &MatchConfig{
		Game: GameConfig{
			NumPlayers: numPlayers,
			TimeControl: mcts.TimeControl{
				Kind:                mcts.ConstantTimePerMove,
				MillisecondsPerMove: v.GetInt64("game.time_control_ms"),
			},
			Seed: v.GetInt64("game.seed"),
		},
	}

	for i := 0; i < numPlayers; i++ {
		section := fmt.Sprintf("player_%d", i+1)
		sub := v.Sub(section)
		if sub == nil {
			return nil, fmt.Errorf("config: missing [%s] section", section)
		}
		sub.SetDefault("kind", string(KindMCTS))
		sub.SetDefault("level", 5)
		sub.SetDefault("name", fmt.Sprintf("Player %d", i+1))
		sub.SetDefault("think_time", v.GetInt64("game.time_control_ms"))

		pc := PlayerConfig{
			Name:            sub.GetString("name"),
			Kind:            PlayerKind(sub.GetString("kind")),
			Level:           sub.GetInt("level"),
			Seed:            sub.GetInt64("seed"),
			ThinkTimeMillis: sub.GetInt64("think_time"),
			Executable:      sub.GetString("executable"),
		}
		if pc.Kind == KindExternal && strings.TrimSpace(pc.Executable) == "" {
			return nil, fmt.Errorf("config: [%s] kind=external requires an executable", section)
		}
		mc.Players = append(mc.Players, pc)
	}

	return mc, nil
}
