package analyze

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isotest"
)

func TestAnalyzePrintsEveryDepth(t *testing.T) {
	var out bytes.Buffer
	a := &minimaxAnalysis{
		cfg:     ai.MinimaxConfig{Depth: 3},
		weights: &ai.DefaultWeights,
		out:     &out,
		quiet:   true,
	}
	a.Analyze(context.Background(), isotest.Parse("...../..2../...../.1.../..... 2"))
	s := out.String()
	assert.Contains(t, s, " depth=1 move=")
	assert.Contains(t, s, " depth=2 move=")
	assert.Contains(t, s, " depth=3 move=")
	assert.NotContains(t, s, "depth=4")
	assert.Contains(t, s, "visited=")
}

func TestAnalyzeEvaluate(t *testing.T) {
	var out bytes.Buffer
	a := &minimaxAnalysis{
		weights: &ai.DefaultWeights,
		out:     &out,
		quiet:   true,
		eval:    true,
	}
	a.Analyze(context.Background(), isotest.Parse("....2/...../...../...../1.... 2"))
	assert.Equal(t, " value=-12\n", out.String())

	out.Reset()
	a.Analyze(context.Background(), isotest.Parse(".../.1./2.. 2"))
	assert.Equal(t, " game over: player2 wins\n", out.String())
}

func TestApplyVariation(t *testing.T) {
	p := isotest.Parse("...../...../...../...../..... 0")
	p, err := applyVariation(p, "c3 a1  b5")
	assert.NoError(t, err)
	assert.Equal(t, 3, p.Ply())

	_, err = applyVariation(p, "c4")
	assert.Error(t, err)
}
