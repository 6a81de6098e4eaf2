package ai

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/nelhage/isolation/isolation"
)

// Weights scale the four mobility terms of the evaluation. Each
// term is counted for the player being scored ("own") or for its
// opponent ("opp").
type Weights struct {
	// Liberties counts cells reachable in one move.
	Liberties    int `json:"liberties"`
	OppLiberties int `json:"opp_liberties"`
	// Reach sums, over each one-move liberty, that cell's own
	// liberties: two-move mobility counted once per path.
	Reach    int `json:"reach"`
	OppReach int `json:"opp_reach"`
}

// DefaultWeights count opponent mobility twice as heavily as our
// own.
var DefaultWeights = Weights{
	Liberties:    1,
	OppLiberties: -2,
	Reach:        1,
	OppReach:     -2,
}

// EvaluationFunc scores a non-terminal position for pl. It must be
// a pure function of its arguments.
type EvaluationFunc func(p *isolation.Position, pl isolation.Player) float64

func MakeEvaluator(w *Weights) EvaluationFunc {
	return func(p *isolation.Position, pl isolation.Player) float64 {
		return evaluate(w, p, pl)
	}
}

var DefaultEvaluate = MakeEvaluator(&DefaultWeights)

type mobility struct {
	moves int
	reach int
}

func measure(p *isolation.Position, c isolation.Cell) mobility {
	var m mobility
	for _, l := range p.Liberties(c) {
		m.moves++
		m.reach += p.LibertyCount(l)
	}
	return m
}

func evaluate(w *Weights, p *isolation.Position, pl isolation.Player) float64 {
	own := measure(p, p.Loc(pl))
	opp := measure(p, p.Loc(pl.Flip()))
	return float64(w.Liberties*own.moves +
		w.OppLiberties*opp.moves +
		w.Reach*own.reach +
		w.OppReach*opp.reach)
}

// FormatScore renders a score for humans and text protocols. Exact
// game results print as "+inf" and "-inf".
func FormatScore(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ExplainScore(out io.Writer, w *Weights, p *isolation.Position) {
	if w == nil {
		w = &DefaultWeights
	}
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	one := measure(p, p.Loc(isolation.Player1))
	two := measure(p, p.Loc(isolation.Player2))
	fmt.Fprintf(tw, "\tplayer1\tplayer2\n")
	fmt.Fprintf(tw, "liberties\t%d\t%d\n", one.moves, two.moves)
	fmt.Fprintf(tw, "reach\t%d\t%d\n", one.reach, two.reach)
	fmt.Fprintf(tw, "score\t%s\t%s\n",
		FormatScore(evaluate(w, p, isolation.Player1)),
		FormatScore(evaluate(w, p, isolation.Player2)))
	tw.Flush()
}
