package analyze

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cli"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

type minimaxAnalysis struct {
	cfg     ai.MinimaxConfig
	weights *ai.Weights
	out     io.Writer

	quiet     bool
	eval      bool
	explain   bool
	timeLimit time.Duration
}

func (m *minimaxAnalysis) Analyze(ctx context.Context, p *isolation.Position) {
	if m.timeLimit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeLimit)
		defer cancel()
	}
	if !m.quiet {
		cli.RenderBoard(m.out, p)
		if m.explain {
			ai.ExplainScore(m.out, m.weights, p)
		}
	}
	if over, winner := p.GameOver(); over {
		fmt.Fprintf(m.out, " game over: %s wins\n", winner)
		return
	}
	if m.eval {
		val := ai.MakeEvaluator(m.weights)(p, p.ToMove())
		fmt.Fprintf(m.out, " value=%s\n", ai.FormatScore(val))
		return
	}

	fmt.Fprintf(m.out, "AI analysis:\n")
	engine := ai.NewMinimax(m.cfg)
	var last ai.Result
	st := engine.ChooseAction(ctx, p, ai.PublisherFunc(func(r ai.Result) {
		last = r
		if r.Depth == 0 {
			fmt.Fprintf(m.out, " move=%s (opening, not searched)\n",
				notation.FormatMove(r.Action))
			return
		}
		fmt.Fprintf(m.out, " depth=%d move=%s value=%s\n",
			r.Depth, notation.FormatMove(r.Action), ai.FormatScore(r.Score))
	}))
	pr := message.NewPrinter(language.English)
	pr.Fprintf(m.out, " visited=%d evaluated=%d terminal=%d cut=%d time=%s\n",
		st.Visited, st.Evaluated, st.Terminal, st.CutNodes, st.Elapsed)
	fmt.Fprintln(m.out)

	if last.Action == isolation.NoAction || m.quiet {
		return
	}
	fmt.Fprintln(m.out, "Resulting position:")
	cli.RenderBoard(m.out, p.Result(last.Action))
	fmt.Fprintln(m.out)
}
