package isotest

import (
	"math/rand"
	"strings"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

func Move(s string) isolation.Action {
	m, e := notation.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

func Moves(s string) []isolation.Action {
	if s == "" {
		return nil
	}
	var ms []isolation.Action
	for _, b := range strings.Fields(s) {
		ms = append(ms, Move(b))
	}
	return ms
}

// Position plays the space-separated moves ms from the empty board.
func Position(cfg isolation.Config, ms string) *isolation.Position {
	p := isolation.New(cfg)
	var e error
	for _, m := range Moves(ms) {
		p, e = p.Move(m)
		if e != nil {
			panic(e)
		}
	}
	return p
}

// Parse is notation.ParsePosition for positions known to be valid.
func Parse(s string) *isolation.Position {
	p, e := notation.ParsePosition(s)
	if e != nil {
		panic(e)
	}
	return p
}

// RandomPlayout plays up to plies uniformly random moves, stopping
// early if the game ends.
func RandomPlayout(cfg isolation.Config, r *rand.Rand, plies int) *isolation.Position {
	p := isolation.New(cfg)
	for i := 0; i < plies; i++ {
		if over, _ := p.GameOver(); over {
			break
		}
		ms := p.Actions()
		p = p.Result(ms[r.Intn(len(ms))])
	}
	return p
}
