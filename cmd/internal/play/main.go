package play

import (
	"bufio"
	"context"
	"flag"
	"io/ioutil"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/cli"
	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

type Command struct {
	p1    string
	p2    string
	size  string
	start string
	limit time.Duration
	out   string

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Isolation from the command line" }
func (*Command) Usage() string {
	return `play

Play knight's Isolation on the command-line, against a human or AI.
Players are human, random[:SEED], minimax[:DEPTH], or reference[:DEPTH].
Moves are entered as cells, e.g. "c4".
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "human", "player1")
	flags.StringVar(&c.p2, "p2", "minimax", "player2")
	flags.StringVar(&c.size, "size", "11x9", "board size, WIDTHxHEIGHT")
	flags.StringVar(&c.start, "start", "", "position to start from")
	flags.DurationVar(&c.limit, "limit", time.Second, "ai time limit per move")
	flags.StringVar(&c.out, "out", "", "write the game record to file")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	board, err := notation.ParseSize(c.size)
	if err != nil {
		log.Error().Err(err).Msg("-size")
		return subcommands.ExitUsageError
	}
	var initial *isolation.Position
	if c.start != "" {
		if initial, err = notation.ParsePosition(c.start); err != nil {
			log.Error().Err(err).Msg("-start")
			return subcommands.ExitUsageError
		}
		board = initial.Config()
	}
	base, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("engine flags")
		return subcommands.ExitUsageError
	}

	in := bufio.NewReader(os.Stdin)
	var players [2]cli.Player
	for i, spec := range []string{c.p1, c.p2} {
		if players[i], err = opt.BuildPlayer(in, spec, base, c.limit); err != nil {
			log.Error().Err(err).Msg("player")
			return subcommands.ExitUsageError
		}
	}
	st := &cli.CLI{
		Config:  board,
		Initial: initial,
		Out:     os.Stdout,
		Player1: players[0],
		Player2: players[1],
	}
	st.Play()
	if c.out != "" {
		winner, forfeit := st.Winner()
		rec := &notation.Record{
			Tags: []notation.Tag{
				{Name: "Size", Value: notation.FormatSize(board)},
				{Name: "Player1", Value: c.p1},
				{Name: "Player2", Value: c.p2},
			},
			Moves:  st.Moves(),
			Result: notation.FormatResult(winner),
		}
		if c.start != "" {
			rec.SetTag("Start", c.start)
		}
		if forfeit {
			rec.SetTag("Termination", "forfeit")
		}
		if err := ioutil.WriteFile(c.out, []byte(rec.Render()), 0644); err != nil {
			log.Error().Err(err).Msg("write record")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
