package logs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/notation"
)

func TestFromRecord(t *testing.T) {
	rec, err := notation.ParseRecord(strings.NewReader(`[Size "5x5"]
[Player1 "minimax:3"]
[Player2 "random"]
[Termination "forfeit"]

1. c3 a1
2. d5
1-0
`))
	require.NoError(t, err)
	g, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "5x5", g.Size)
	assert.Equal(t, "minimax:3", g.Player1)
	assert.Equal(t, "random", g.Player2)
	assert.Equal(t, "player1", g.Winner)
	assert.Equal(t, "1-0", g.Result)
	assert.True(t, g.Forfeit)
	assert.Equal(t, 3, g.Moves)
	assert.Equal(t, rec.Render(), g.Record)

	rec.Result = ""
	_, err = FromRecord(rec)
	assert.Error(t, err)
}
