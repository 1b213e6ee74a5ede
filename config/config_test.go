package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/config"
	"github.com/nikohass/azulcore/mcts"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]

[player_1]

[player_2]
`)
	mc, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, mc.Game.NumPlayers)
	require.Equal(t, mcts.ConstantTimePerMove, mc.Game.TimeControl.Kind)
	require.Equal(t, int64(config.DefaultMillisecondsPerMove), mc.Game.TimeControl.MillisecondsPerMove)

	require.Len(t, mc.Players, 2)
	require.Equal(t, config.KindMCTS, mc.Players[0].Kind)
	require.Equal(t, 5, mc.Players[0].Level)
	require.Equal(t, "Player 1", mc.Players[0].Name)
	require.Equal(t, int64(config.DefaultMillisecondsPerMove), mc.Players[0].ThinkTimeMillis)
}

func TestLoadAppliesPerPlayerThinkTimeOverride(t *testing.T) {
	path := writeConfig(t, `
[game]
time_control_ms = 1000

[player_1]
think_time = 5000

[player_2]
`)
	mc, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, int64(5000), mc.Players[0].ThinkTimeMillis)
	require.Equal(t, int64(1000), mc.Players[1].ThinkTimeMillis)

	tc := mc.Players[0].TimeControl()
	require.Equal(t, mcts.ConstantTimePerMove, tc.Kind)
	require.Equal(t, int64(5000), tc.MillisecondsPerMove)
}

func TestLoadRejectsOutOfRangePlayerCount(t *testing.T) {
	path := writeConfig(t, `
[game]
num_players = 7
`)
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRequiresExecutableForExternalPlayers(t *testing.T) {
	path := writeConfig(t, `
[game]
num_players = 2

[player_1]
kind = "external"

[player_2]
kind = "random"
`)
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestPlayerConfigArgvTokenizesExecutable(t *testing.T) {
	path := writeConfig(t, `
[game]
num_players = 2

[player_1]
kind = "external"
executable = "./bot --level 3 --name 'My Bot'"

[player_2]
kind = "heuristic"
`)
	mc, err := config.Load(path)
	require.NoError(t, err)

	argv, err := mc.Players[0].Argv()
	require.NoError(t, err)
	require.Equal(t, []string{"./bot", "--level", "3", "--name", "My Bot"}, argv)
}

func TestPlayerConfigArgvRejectsEmptyExecutable(t *testing.T) {
	pc := config.PlayerConfig{Name: "p", Kind: config.KindMCTS}
	_, err := pc.Argv()
	require.Error(t, err)
}
