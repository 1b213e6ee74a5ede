package game_test

import (
	"math/rand"
	"testing"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/tile"
	"github.com/stretchr/testify/require"
)

func TestNewStatePassesIntegrity(t *testing.T) {
	s, err := game.New(2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, s.CheckIntegrity())
	require.Equal(t, 5, game.NumDisplayFactories(2))
	require.Equal(t, 7, game.NumDisplayFactories(3))
	require.Equal(t, 9, game.NumDisplayFactories(4))
}

func TestNewRejectsBadPlayerCount(t *testing.T) {
	_, err := game.New(1, nil)
	require.Error(t, err)
	_, err = game.New(5, nil)
	require.Error(t, err)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	s, err := game.New(3, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	s.FillFactories(rand.New(rand.NewSource(2)))
	s.Scores[0] = 7
	s.FloorLineProgress[1] = 2
	s.FloorTiles[1][tile.Blue] = 2
	s.PatternLineCount[0][3] = 2
	s.PatternLineColor[0][3] = tile.Red
	s.Walls[2] = 0b100001

	serialized := s.Serialize()
	got, err := game.Deserialize(serialized)
	require.NoError(t, err)
	require.Equal(t, serialized, got.Serialize())
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	s, err := game.New(2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	f1 := s.Fingerprint()
	f2 := s.Fingerprint()
	require.Equal(t, f1, f2)

	clone := s.Clone()
	clone.Scores[0] = 3
	clone.FloorLineProgress[0] = 1
	require.NotEqual(t, f1, clone.Fingerprint())
}

func TestCloneIsIndependent(t *testing.T) {
	s, err := game.New(2, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	c := s.Clone()
	c.Bag[0] = 0
	require.NotEqual(t, s.Bag[0], c.Bag[0])
}
