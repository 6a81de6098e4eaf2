package analyze

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

type Command struct {
	/* Global options / output options */
	quiet bool

	/* Options to select which position(s) to analyze */
	position  string
	move      int
	all       bool
	variation string

	timeLimit time.Duration

	/* Options for the minimax engine  */
	eval    bool
	explain bool
	mmopt   opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position from a game record" }
func (*Command) Usage() string {
	return `analyze [options] [FILE]

Evaluate a position from a game record, or the position given by
-position.

By default evaluates the final position in the file; use -move to
select an earlier one, and -variation to play additional moves prior
to analysis.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")

	flags.StringVar(&c.position, "position", "", "analyze this position instead of a file")
	flags.IntVar(&c.move, "move", -1, "analyze the position after this many moves")
	flags.BoolVar(&c.all, "all", false, "analyze all positions in the record")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")

	flags.DurationVar(&c.timeLimit, "limit", time.Minute, "limit of how much time to use")
	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.analysis()
	if err != nil {
		log.Error().Err(err).Msg("engine flags")
		return subcommands.ExitUsageError
	}

	if c.position != "" {
		p, e := notation.ParsePosition(c.position)
		if e != nil {
			log.Error().Err(e).Msg("-position")
			return subcommands.ExitUsageError
		}
		if p, e = applyVariation(p, c.variation); e != nil {
			log.Fatal().Err(e).Msg("-variation")
		}
		a.Analyze(ctx, p)
		return subcommands.ExitSuccess
	}

	if flag.NArg() != 1 {
		log.Error().Msg("must supply a game record or -position")
		return subcommands.ExitUsageError
	}
	rec, e := notation.ParseFile(flag.Arg(0))
	if e != nil {
		log.Fatal().Err(e).Msg("parse")
	}

	if !c.all {
		p, e := rec.PositionAt(c.move)
		if e != nil {
			log.Fatal().Err(e).Msg("find move")
		}
		if p, e = applyVariation(p, c.variation); e != nil {
			log.Fatal().Err(e).Msg("-variation")
		}
		a.Analyze(ctx, p)
		return subcommands.ExitSuccess
	}

	p, e := rec.InitialPosition()
	if e != nil {
		log.Fatal().Err(e).Msg("initial")
	}
	for _, m := range rec.Moves {
		if p.ToMove() == isolation.Player1 {
			fmt.Printf("%d. %s\n", p.Ply()/2+1, notation.FormatMove(m))
		} else {
			fmt.Printf("%d. ... %s\n", p.Ply()/2+1, notation.FormatMove(m))
		}
		a.Analyze(ctx, p)
		next, e := p.Move(m)
		if e != nil {
			log.Fatal().Err(e).Int("ply", p.Ply()).Msg("replay")
		}
		p = next
	}
	return subcommands.ExitSuccess
}

func applyVariation(p *isolation.Position, variant string) (*isolation.Position, error) {
	for _, moveStr := range strings.Fields(variant) {
		m, e := notation.ParseMove(moveStr)
		if e != nil {
			return nil, e
		}
		p, e = p.Move(m)
		if e != nil {
			return nil, fmt.Errorf("bad move `%s': %w", moveStr, e)
		}
	}
	return p, nil
}

func (c *Command) analysis() (*minimaxAnalysis, error) {
	cfg, err := c.mmopt.BuildConfig()
	if err != nil {
		return nil, err
	}
	w, err := c.mmopt.ParseWeights()
	if err != nil {
		return nil, err
	}
	return &minimaxAnalysis{
		cfg:       cfg,
		weights:   w,
		out:       os.Stdout,
		quiet:     c.quiet,
		eval:      c.eval,
		explain:   c.explain,
		timeLimit: c.timeLimit,
	}, nil
}
