package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cmd/internal/opt"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

type Config struct {
	// Games is the number of games per seat assignment.
	Games   int
	Swap    bool
	Threads int
	Seed    int64
	// Limit is the wall-clock budget per move. A player with
	// nothing to show when it runs out forfeits.
	Limit time.Duration

	Board   isolation.Config
	Initial *isolation.Position

	P1, P2 string
	Base   ai.MinimaxConfig

	// NewPlayer builds a fresh player for one game. It defaults
	// to opt.ParsePlayer.
	NewPlayer func(spec string, base ai.MinimaxConfig) (ai.Player, error)

	Verbose bool
}

type Stats struct {
	Players [2]struct {
		Wins       int
		FirstWins  int
		SecondWins int
		Forfeits   int
	}
	// First and Second count wins by seat.
	First, Second int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.First + s.Second
}

type gameSpec struct {
	i int
	// swapped is set when P2 moves first.
	swapped bool
	seed    int64
}

type Result struct {
	spec     gameSpec
	Initial  *isolation.Position
	Position *isolation.Position
	Moves    []isolation.Action
	// Winner is the seat that won.
	Winner  isolation.Player
	Forfeit bool
}

// Names returns the player specs in seat order.
func (r *Result) Names(c *Config) [2]string {
	if r.spec.swapped {
		return [2]string{c.P2, c.P1}
	}
	return [2]string{c.P1, c.P2}
}

// Record renders r as a game record.
func (r *Result) Record(c *Config) *notation.Record {
	names := r.Names(c)
	rec := &notation.Record{
		Tags: []notation.Tag{
			{Name: "Size", Value: notation.FormatSize(r.Initial.Config())},
			{Name: "Player1", Value: names[0]},
			{Name: "Player2", Value: names[1]},
		},
		Moves:  r.Moves,
		Result: notation.FormatResult(r.Winner),
	}
	if r.Initial.Ply() != 0 {
		rec.SetTag("Start", notation.FormatPosition(r.Initial))
	}
	if r.Forfeit {
		rec.SetTag("Termination", "forfeit")
	}
	return rec
}

// Simulate plays every game c describes on c.Threads workers and
// tallies the results. It stops early if ctx is done or a player
// cannot be built.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	if c.NewPlayer == nil {
		c.NewPlayer = opt.ParsePlayer
	}
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}

	grp, ctx := errgroup.WithContext(ctx)
	specs := make(chan gameSpec)
	results := make(chan Result)
	grp.Go(func() error {
		defer close(specs)
		return startGames(ctx, c, specs)
	})
	for i := 0; i < threads; i++ {
		grp.Go(func() error {
			return worker(ctx, c, specs, results)
		})
	}
	errc := make(chan error, 1)
	go func() {
		errc <- grp.Wait()
		close(results)
	}()

	var st Stats
	for r := range results {
		if c.Verbose {
			log.Info().
				Int("game", r.spec.i).
				Bool("swapped", r.spec.swapped).
				Int("plies", len(r.Moves)).
				Stringer("winner", r.Winner).
				Bool("forfeit", r.Forfeit).
				Msg("game over")
		}
		st.add(&r)
	}
	return st, <-errc
}

func (st *Stats) add(r *Result) {
	if r.Winner == isolation.Player1 {
		st.First++
	} else {
		st.Second++
	}
	// Spec index of the winner and loser.
	w := int(r.Winner)
	if r.spec.swapped {
		w = 1 - w
	}
	pst := &st.Players[w]
	pst.Wins++
	if r.Winner == isolation.Player1 {
		pst.FirstWins++
	} else {
		pst.SecondWins++
	}
	if r.Forfeit {
		st.Players[1-w].Forfeits++
	}
	st.Games = append(st.Games, *r)
}

func startGames(ctx context.Context, c *Config, specs chan<- gameSpec) error {
	r := rand.New(rand.NewSource(c.Seed))
	n := c.Games
	if c.Swap {
		n *= 2
	}
	for g := 0; g < n; g++ {
		spec := gameSpec{
			i:       g,
			swapped: c.Swap && g%2 == 1,
			seed:    r.Int63(),
		}
		select {
		case specs <- spec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func worker(ctx context.Context, c *Config, specs <-chan gameSpec, out chan<- Result) error {
	for g := range specs {
		r, err := playGame(ctx, c, g)
		if err != nil {
			return err
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func playGame(ctx context.Context, c *Config, g gameSpec) (Result, error) {
	specs := [2]string{c.P1, c.P2}
	if g.swapped {
		specs[0], specs[1] = specs[1], specs[0]
	}
	var players [2]ai.Player
	for i, spec := range specs {
		base := c.Base
		base.Seed = g.seed + int64(i)
		p, err := c.NewPlayer(spec, base)
		if err != nil {
			return Result{}, fmt.Errorf("player %q: %w", spec, err)
		}
		players[i] = p
	}

	p := c.Initial
	if p == nil {
		p = isolation.New(c.Board)
	}
	res := Result{spec: g, Initial: p}
	for {
		if over, winner := p.GameOver(); over {
			res.Winner = winner
			break
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if c.Limit > 0 {
			mctx, cancel = context.WithTimeout(ctx, c.Limit)
		}
		m := players[p.ToMove()].GetMove(mctx, p)
		cancel()

		next, err := p.Move(m)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			log.Debug().
				Str("player", specs[p.ToMove()]).
				Str("move", notation.FormatMove(m)).
				Err(err).
				Msg("forfeit")
			res.Winner = p.ToMove().Flip()
			res.Forfeit = true
			break
		}
		p = next
		res.Moves = append(res.Moves, m)
	}
	res.Position = p
	return res, nil
}
