package ai

import (
	"math/rand"

	"github.com/nelhage/isolation/isolation"
	"golang.org/x/net/context"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, p *isolation.Position) isolation.Action {
	moves := p.Actions()
	if len(moves) == 0 {
		return isolation.NoAction
	}
	return moves[r.r.Intn(len(moves))]
}

func NewRandom(seed int64) Player {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
