package selfplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/logs"
	"github.com/nelhage/isolation/notation"
)

type Command struct {
	size  string
	start string
	p1    string
	p2    string
	seed  int64

	games int
	swap  bool

	limit   time.Duration
	threads int

	out     string
	db      string
	verbose bool

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]

Players are given as random[:SEED], minimax[:DEPTH], or
reference[:DEPTH]. Engine flags apply to both minimax players.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.size, "size", "11x9", "board size, WIDTHxHEIGHT")
	flags.StringVar(&c.start, "start", "", "position to start every game from")
	flags.StringVar(&c.p1, "p1", "minimax", "player1")
	flags.StringVar(&c.p2, "p2", "reference", "player2")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per color")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.DurationVar(&c.limit, "limit", time.Second, "amount of time to search each move")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel threads")
	flags.StringVar(&c.out, "out", "", "directory to write game records to")
	flags.StringVar(&c.db, "db", "", "sqlite database to log games to")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
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
	}
	base, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("engine flags")
		return subcommands.ExitUsageError
	}

	cfg := &Config{
		Games:   c.games,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
		Limit:   c.limit,
		Board:   board,
		Initial: initial,
		P1:      c.p1,
		P2:      c.p2,
		Base:    base,
		Verbose: c.verbose,
	}
	st, err := Simulate(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if err := writeGames(c.out, cfg, &st); err != nil {
			log.Error().Err(err).Msg("write games")
		}
	}
	if c.db != "" {
		if err := logGames(c.db, cfg, &st); err != nil {
			log.Error().Err(err).Msg("log games")
		}
	}

	log.Info().
		Int("games", st.Count()).
		Int64("seed", c.seed).
		Int("first", st.First).
		Int("second", st.Second).
		Dur("limit", c.limit).
		Msg("done")
	printSummary(os.Stdout, cfg, &st)
	return subcommands.ExitSuccess
}

func printSummary(out io.Writer, cfg *Config, st *Stats) {
	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\tfirst\tsecond\twins\tforfeits\n")
	for i, name := range []string{cfg.P1, cfg.P2} {
		p := st.Players[i]
		pr.Fprintf(tw, "p%d %s\t%d\t%d\t%d\t%d\n", i+1, name,
			p.FirstWins, p.SecondWins, p.Wins, p.Forfeits)
	}
	pr.Fprintf(tw, "sum\t%d\t%d\t%d\t\n", st.First, st.Second, st.Count())
	tw.Flush()
}

func writeGames(dir string, cfg *Config, st *Stats) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := range st.Games {
		r := &st.Games[i]
		name := path.Join(dir, fmt.Sprintf("game-%03d.txt", r.spec.i))
		if err := ioutil.WriteFile(name, []byte(r.Record(cfg).Render()), 0644); err != nil {
			return err
		}
	}
	return nil
}

func logGames(db string, cfg *Config, st *Stats) error {
	repo, err := logs.Open(db)
	if err != nil {
		return err
	}
	defer repo.Close()
	return repo.InsertGames(LogEntries(cfg, st))
}

// LogEntries converts finished games into game log rows.
func LogEntries(cfg *Config, st *Stats) []*logs.Game {
	now := time.Now()
	var gs []*logs.Game
	for i := range st.Games {
		g, err := logs.FromRecord(st.Games[i].Record(cfg))
		if err != nil {
			log.Error().Err(err).Int("game", st.Games[i].spec.i).Msg("log entry")
			continue
		}
		g.Timestamp = now
		gs = append(gs, g)
	}
	return gs
}
