package history

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/isolation/logs"
	"github.com/nelhage/isolation/notation"
)

type Command struct {
	db     string
	player string
	list   bool
	index  string
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "Report results from a game log" }
func (*Command) Usage() string {
	return `history -db GAMES.db [options]

Prints per-player results from a game log written by selfplay -db.
-import indexes a directory of game records (selfplay -out) into the
log first.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite game log")
	flags.StringVar(&c.player, "player", "", "only list games involving this player")
	flags.BoolVar(&c.list, "list", false, "list individual games")
	flags.StringVar(&c.index, "import", "", "import game records from this directory")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		log.Error().Msg("-db is required")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Fatal().Err(err).Msg("open")
	}
	defer repo.Close()

	if c.index != "" {
		n, err := importDir(repo, c.index)
		if err != nil {
			log.Fatal().Err(err).Msg("import")
		}
		log.Info().Int("games", n).Str("dir", c.index).Msg("imported")
	}

	if err := report(os.Stdout, repo, c.player, c.list); err != nil {
		log.Fatal().Err(err).Msg("report")
	}
	return subcommands.ExitSuccess
}

func importDir(repo *logs.Repository, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0, err
	}
	var gs []*logs.Game
	for _, path := range paths {
		rec, err := notation.ParseFile(path)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		g, err := logs.FromRecord(rec)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping")
			continue
		}
		if fi, err := os.Stat(path); err == nil {
			g.Timestamp = fi.ModTime()
		}
		gs = append(gs, g)
	}
	return len(gs), repo.InsertGames(gs)
}

func report(out io.Writer, repo *logs.Repository, player string, list bool) error {
	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	if list {
		gs, err := repo.Games(player)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "id\tsize\tplayer1\tplayer2\tresult\tmoves\t\n")
		for _, g := range gs {
			result := g.Result
			if g.Forfeit {
				result += " (forfeit)"
			}
			pr.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t\n",
				g.ID, g.Size, g.Player1, g.Player2, result, g.Moves)
		}
		fmt.Fprintln(tw)
	}

	st, err := repo.PlayerStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(tw, "player\tgames\twins\twin%%\tforfeits\tavg moves\t\n")
	for _, s := range st {
		if player != "" && s.Player != player {
			continue
		}
		pr.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%d\t%.1f\t\n",
			s.Player, s.Games, s.Wins, 100*float64(s.Wins)/float64(s.Games),
			s.Forfeits, s.Moves)
	}
	return nil
}
