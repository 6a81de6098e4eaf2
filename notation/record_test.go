package notation

import (
	"strings"
	"testing"

	"github.com/nelhage/isolation/isolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `[Size "5x5"]
[Player1 "minimax"]
[Player2 "random"]

1. c3 a1
2. d5 b3
0-1
`

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord(strings.NewReader(sampleRecord))
	require.NoError(t, err)
	assert.Equal(t, "5x5", r.FindTag("Size"))
	assert.Equal(t, "random", r.FindTag("Player2"))
	assert.Equal(t, "", r.FindTag("Missing"))
	assert.Equal(t, "c3 a1 d5 b3", FormatMoves(r.Moves))
	assert.Equal(t, ResultPlayer2, r.Result)
	assert.Equal(t, isolation.Player2, ParseResult(r.Result))

	p, err := r.PositionAt(-1)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Ply())
	assert.Equal(t, isolation.Cell{X: 3, Y: 4}, p.Loc(isolation.Player1))

	p, err = r.PositionAt(1)
	require.NoError(t, err)
	assert.Equal(t, "...../...../..1../...../..... 1", FormatPosition(p))
}

func TestRecordRoundTrip(t *testing.T) {
	r, err := ParseRecord(strings.NewReader(sampleRecord))
	require.NoError(t, err)
	again, err := ParseRecord(strings.NewReader(r.Render()))
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestRecordStart(t *testing.T) {
	r := &Record{}
	r.SetTag("Size", "3x3")
	r.SetTag("Start", ".../.1./... 1")
	r.Moves = []isolation.Action{{To: isolation.Cell{X: 0, Y: 0}}}

	p, err := r.PositionAt(-1)
	require.NoError(t, err)
	over, winner := p.GameOver()
	assert.True(t, over)
	assert.Equal(t, isolation.Player2, winner)

	r.SetTag("Size", "4x4")
	_, err = r.InitialPosition()
	assert.Error(t, err)
}

func TestRenderFromOddPly(t *testing.T) {
	r := &Record{}
	r.SetTag("Size", "5x5")
	r.SetTag("Start", "x..../..2../...../.1.../..... 3")
	r.Moves = []isolation.Action{
		{To: isolation.Cell{X: 3, Y: 1}},
		{To: isolation.Cell{X: 3, Y: 2}},
		{To: isolation.Cell{X: 4, Y: 3}},
	}
	text := r.Render()
	assert.Contains(t, text, "\n2. ... d2\n3. d3 e4\n")

	p, err := r.PositionAt(-1)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Ply())

	again, err := ParseRecord(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestRecordIllegalMove(t *testing.T) {
	r, err := ParseRecord(strings.NewReader("[Size \"5x5\"]\n1. c3 c3\n"))
	require.NoError(t, err)
	_, err = r.PositionAt(-1)
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	cfg, err := ParseSize("11x9")
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Width)
	assert.Equal(t, 9, cfg.Height)
	for _, bad := range []string{"11", "ax9", "20x20", "11x9x1"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}
