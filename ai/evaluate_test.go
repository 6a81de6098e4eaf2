package ai

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateCorners(t *testing.T) {
	// a1 has two liberties, b3 and c2, and each of those has five
	// more; e5 mirrors it.
	p := isotest.Parse("....2/...../...../...../1.... 2")
	assert.Equal(t, -12.0, DefaultEvaluate(p, isolation.Player1))
	assert.Equal(t, -12.0, DefaultEvaluate(p, isolation.Player2))
}

func TestEvaluateWeights(t *testing.T) {
	p := isotest.Parse("....2/...../...../...../1.... 2")
	own := MakeEvaluator(&Weights{Liberties: 1, Reach: 1})
	assert.Equal(t, 12.0, own(p, isolation.Player1))

	opp := MakeEvaluator(&Weights{OppLiberties: 1})
	assert.Equal(t, 2.0, opp(p, isolation.Player1))
}

func TestEvaluateBlocked(t *testing.T) {
	// Player 2's only liberty from e5 is d3; c4 is closed.
	p := isotest.Parse("....2/..x../...../...../1.... 2")
	one := measure(p, p.Loc(isolation.Player1))
	two := measure(p, p.Loc(isolation.Player2))
	assert.Equal(t, mobility{moves: 2, reach: 10}, one)
	assert.Equal(t, 1, two.moves)
	assert.Equal(t, float64(2-2*1+10-2*two.reach), DefaultEvaluate(p, isolation.Player1))
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func TestEvaluateSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := isotest.RandomPlayout(isolation.Config{Width: 7, Height: 7}, r, 2+r.Intn(12))
		if over, _ := p.GameOver(); over {
			continue
		}
		a := measure(p, p.Loc(isolation.Player1))
		b := measure(p, p.Loc(isolation.Player2))
		one := DefaultEvaluate(p, isolation.Player1)
		two := DefaultEvaluate(p, isolation.Player2)
		assert.Equal(t,
			sign(float64(a.moves+a.reach-b.moves-b.reach)),
			sign(one-two),
			"one=%v two=%v", one, two)
	}
}

func TestFormatScore(t *testing.T) {
	p := isotest.Parse(".../.1./2.. 2")
	assert.Equal(t, "-inf", FormatScore(p.Utility(isolation.Player1)))
	assert.Equal(t, "+inf", FormatScore(p.Utility(isolation.Player2)))
	assert.Equal(t, "-12", FormatScore(-12))
	assert.Equal(t, "0", FormatScore(0))
}

func TestExplainScore(t *testing.T) {
	var buf bytes.Buffer
	ExplainScore(&buf, nil, isotest.Parse("....2/...../...../...../1.... 2"))
	out := buf.String()
	assert.Contains(t, out, "liberties")
	assert.Contains(t, out, "-12")
}
