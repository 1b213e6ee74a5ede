package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikohass/azulcore/scenario"
)

func TestRunStringNewGameFillFactoriesCheckIntegrity(t *testing.T) {
	script := `
new_game(2)
fill_factories()
check_integrity()
`
	r, err := scenario.RunString(script, 1)
	require.NoError(t, err)
	require.NotNil(t, r.State())
	require.Equal(t, []string{"new_game(2)", "fill_factories()", "check_integrity()"}, r.Log())
}

func TestRunStringScoreStartsAtZero(t *testing.T) {
	script := `
new_game(3)
s = score(0)
`
	r, err := scenario.RunString(script, 2)
	require.NoError(t, err)
	require.EqualValues(t, 0, r.State().Scores[0])
}

func TestRunStringRejectsDoMoveBeforeNewGame(t *testing.T) {
	script := `do_move("0:B:1,0,0,0,0,0")`
	_, err := scenario.RunString(script, 3)
	require.Error(t, err)
}

func TestRunStringRejectsIllegalMoveToken(t *testing.T) {
	script := `
new_game(2)
fill_factories()
do_move("99:B:1,0,0,0,0,0")
`
	_, err := scenario.RunString(script, 4)
	require.Error(t, err)
}

func TestRunFileReturnsErrorForMissingScript(t *testing.T) {
	_, err := scenario.RunFile("/nonexistent/path/does-not-exist.lua", 1)
	require.Error(t, err)
}
