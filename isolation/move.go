package isolation

import (
	"errors"
	"fmt"
)

// Action moves the side to move onto To. Before a player's first
// move any open cell is legal; afterwards only a knight's jump onto
// an open cell.
type Action struct {
	To Cell
}

// NoAction is returned by players that have nothing to offer.
var NoAction = Action{To: NoCell}

type Direction struct {
	Name   string
	DX, DY int
}

// Directions lists knight jumps in action enumeration order.
var Directions = [8]Direction{
	{"NNE", 1, 2},
	{"ENE", 2, 1},
	{"ESE", 2, -1},
	{"SSE", 1, -2},
	{"SSW", -1, -2},
	{"WSW", -2, -1},
	{"WNW", -2, 1},
	{"NNW", -1, 2},
}

var (
	ErrOffBoard    = errors.New("cell is off the board")
	ErrClosed      = errors.New("cell is closed")
	ErrIllegalMove = errors.New("not a knight's move")
)

// Actions lists the legal moves for the side to move, in a stable
// order.
func (p *Position) Actions() []Action {
	libs := p.Liberties(p.Loc(p.ToMove()))
	out := make([]Action, len(libs))
	for i, c := range libs {
		out[i] = Action{To: c}
	}
	return out
}

// Move returns the position after the side to move plays a, or an
// error if a is not legal.
func (p *Position) Move(a Action) (*Position, error) {
	if !p.OnBoard(a.To) {
		return nil, ErrOffBoard
	}
	i := p.index(a.To)
	if !p.open.Has(i) {
		return nil, ErrClosed
	}
	me := p.ToMove()
	if !p.libertyBits(p.Loc(me)).Has(i) {
		return nil, ErrIllegalMove
	}
	next := *p
	next.open = next.open.Clear(i)
	next.locs[me] = int(i)
	next.ply++
	return &next, nil
}

// Result is Move for callers that only ever pass actions generated
// by p.Actions. An illegal action panics.
func (p *Position) Result(a Action) *Position {
	next, err := p.Move(a)
	if err != nil {
		panic(fmt.Sprintf("Result(%v): %v", a.To, err))
	}
	return next
}
