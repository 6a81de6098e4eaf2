package ai

import (
	"github.com/nelhage/isolation/isolation"
	"golang.org/x/net/context"
)

// Player picks a move for the side to move in p. Implementations
// that search should return their best move so far once ctx is
// done.
type Player interface {
	GetMove(ctx context.Context, p *isolation.Position) isolation.Action
}
