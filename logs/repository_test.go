package logs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Repository {
	repo, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func game(p1, p2, winner string, forfeit bool, moves int) *Game {
	result := "1-0"
	if winner == "player2" {
		result = "0-1"
	}
	return &Game{
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Size:      "7x7",
		Player1:   p1,
		Player2:   p2,
		Winner:    winner,
		Result:    result,
		Forfeit:   forfeit,
		Moves:     moves,
	}
}

func TestInsertGame(t *testing.T) {
	repo := open(t)
	g := game("minimax:6", "random", "player1", false, 12)
	g.Record = "[Size \"7x7\"]\n\n1. a1 b2\n1-0\n"
	require.NoError(t, repo.InsertGame(g))
	assert.NotZero(t, g.ID)

	gs, err := repo.Games("")
	require.NoError(t, err)
	require.Len(t, gs, 1)
	got := gs[0]
	assert.Equal(t, g.ID, got.ID)
	assert.True(t, g.Timestamp.Equal(got.Timestamp), "time %v != %v", got.Timestamp, g.Timestamp)
	got.Timestamp = g.Timestamp
	assert.Equal(t, *g, got)
}

func TestInsertGames(t *testing.T) {
	repo := open(t)
	require.NoError(t, repo.InsertGames([]*Game{
		game("a", "b", "player1", false, 10),
		game("b", "a", "player1", true, 3),
		game("a", "c", "player2", false, 20),
	}))

	gs, err := repo.Games("")
	require.NoError(t, err)
	assert.Len(t, gs, 3)

	gs, err = repo.Games("b")
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, "a", gs[0].Player1)
	assert.Equal(t, "b", gs[1].Player1)
	assert.True(t, gs[1].Forfeit)

	gs, err = repo.Games("nobody")
	require.NoError(t, err)
	assert.Empty(t, gs)
}

func TestPlayerStats(t *testing.T) {
	repo := open(t)
	for _, g := range []*Game{
		game("a", "b", "player1", false, 10),
		game("b", "a", "player1", false, 4),
		game("c", "a", "player1", true, 2),
	} {
		require.NoError(t, repo.InsertGame(g))
	}
	st, err := repo.PlayerStats()
	require.NoError(t, err)
	assert.Equal(t, []PlayerStats{
		{Player: "a", Games: 3, Wins: 1, Forfeits: 1, Moves: 16.0 / 3},
		{Player: "b", Games: 2, Wins: 1, Forfeits: 0, Moves: 7},
		{Player: "c", Games: 1, Wins: 1, Forfeits: 0, Moves: 2},
	}, st)
}
