package ai

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

const defaultDepth = 6

// Pruning selects how the searcher cuts off branches.
type Pruning int

const (
	// Symmetric is classical fail-soft alpha-beta: both the
	// maximizing and the minimizing loop stop at a cutoff.
	Symmetric Pruning = iota

	// Reference reproduces the original agent's search. The
	// maximizing loop raises alpha at a cutoff but keeps going, and
	// the root hands each reply a beta of -Inf.
	Reference
)

func (p Pruning) String() string {
	if p == Reference {
		return "reference"
	}
	return "symmetric"
}

type MinimaxConfig struct {
	// Depth is the deepest iteration to run. 0 means 6.
	Depth int
	// Seed seeds the choice of opening move. 0 means seed from the
	// clock.
	Seed  int64
	Debug int

	Pruning Pruning
	// StopWhenDecided ends deepening once a search proves a win or
	// a loss.
	StopWhenDecided bool

	Evaluate EvaluationFunc
}

type Stats struct {
	Depth     int
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	CutNodes  uint64
	Elapsed   time.Duration
}

// MinimaxAI is an anytime alpha-beta searcher. A MinimaxAI runs one
// search at a time.
type MinimaxAI struct {
	cfg      MinimaxConfig
	rand     *rand.Rand
	evaluate EvaluationFunc

	// self is the player the current search is choosing a move
	// for; every score is from its point of view.
	self isolation.Player
	st   Stats

	cancel *int32
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	m := &MinimaxAI{cfg: cfg, cancel: new(int32)}
	if m.cfg.Depth == 0 {
		m.cfg.Depth = defaultDepth
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.rand = rand.New(rand.NewSource(seed))
	m.evaluate = cfg.Evaluate
	if m.evaluate == nil {
		m.evaluate = DefaultEvaluate
	}
	return m
}

func (ai *MinimaxAI) Config() MinimaxConfig {
	return ai.cfg
}

func (ai *MinimaxAI) GetMove(ctx context.Context, p *isolation.Position) isolation.Action {
	r, _, ok := ai.Analyze(ctx, p)
	if !ok {
		return isolation.NoAction
	}
	return r.Action
}

// Analyze runs ChooseAction until it finishes or ctx is done, and
// returns the last result it published. ok is false if nothing was
// published in time.
func (ai *MinimaxAI) Analyze(ctx context.Context, p *isolation.Position) (r Result, st Stats, ok bool) {
	q := NewQueue()
	st = ai.ChooseAction(ctx, p, q)
	r, ok = q.Latest()
	return r, st, ok
}

func (ai *MinimaxAI) cancelled() bool {
	return atomic.LoadInt32(ai.cancel) != 0
}

// ChooseAction publishes a move for the side to move in p to out,
// then keeps publishing better-informed moves from successively
// deeper searches. It returns after the deepest configured search,
// or shortly after ctx is done; a search interrupted by ctx is
// discarded, so everything published is a complete legal move.
//
// Before both players have been placed, it publishes one uniformly
// random legal move and returns.
func (ai *MinimaxAI) ChooseAction(ctx context.Context, p *isolation.Position, out Publisher) Stats {
	var cancel int32
	ai.cancel = &cancel
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&cancel, 1)
		case <-done:
		}
	}()

	ai.self = p.ToMove()
	ai.st = Stats{}
	top := time.Now()

	if p.Ply() < 2 {
		moves := p.Actions()
		m := moves[ai.rand.Intn(len(moves))]
		out.Publish(Result{Action: m})
		if ai.cfg.Debug > 0 {
			log.Info().
				Int("ply", p.Ply()).
				Str("move", notation.FormatMove(m)).
				Msg("random opening move")
		}
		ai.st.Elapsed = time.Since(top)
		return ai.st
	}

	for depth := 1; depth <= ai.cfg.Depth; depth++ {
		if ctx.Err() != nil || ai.cancelled() {
			break
		}
		start := time.Now()
		m, v, ok := ai.searchRoot(p, depth)
		if !ok {
			break
		}
		ai.st.Depth = depth
		out.Publish(Result{Action: m, Score: v, Depth: depth})

		if ai.cfg.Debug > 0 {
			log.Info().
				Int("depth", depth).
				Str("score", FormatScore(v)).
				Str("move", notation.FormatMove(m)).
				Dur("time", time.Since(start)).
				Dur("total", time.Since(top)).
				Uint64("evaluated", ai.st.Evaluated).
				Msg("deepen")
		}
		if ai.cfg.Debug > 1 {
			log.Debug().
				Int("depth", depth).
				Uint64("visited", ai.st.Visited).
				Uint64("terminal", ai.st.Terminal).
				Uint64("cut", ai.st.CutNodes).
				Msg("stats")
		}
		if ai.cfg.StopWhenDecided && math.IsInf(v, 0) {
			break
		}
	}
	ai.st.Elapsed = time.Since(top)
	return ai.st
}

// searchRoot scores every root action to the given depth and returns
// the best one. Among equal scores the last action enumerated
// wins. ok is false if the search was cancelled part way.
func (ai *MinimaxAI) searchRoot(p *isolation.Position, depth int) (best isolation.Action, score float64, ok bool) {
	moves := p.Actions()
	if len(moves) == 0 {
		panic("ChooseAction: no legal actions")
	}
	best, score = isolation.NoAction, math.Inf(-1)
	α := math.Inf(-1)
	for _, m := range moves {
		child := p.Result(m)
		var v float64
		if ai.cfg.Pruning == Reference {
			v = ai.minValue(child, α, math.Inf(-1), depth-1)
		} else {
			// Search just below the best score so far, so that
			// a fail-soft bound can never equal it: a reply
			// scoring exactly α is a true tie.
			v = ai.minValue(child, math.Nextafter(α, math.Inf(-1)), math.Inf(1), depth-1)
		}
		if ai.cancelled() {
			return isolation.NoAction, 0, false
		}
		α = math.Max(α, v)
		if v >= score {
			best, score = m, v
		}
	}
	return best, score, true
}

func (ai *MinimaxAI) maxValue(p *isolation.Position, α, β float64, depth int) float64 {
	if over, _ := p.GameOver(); over {
		ai.st.Terminal++
		return p.Utility(ai.self)
	}
	if depth <= 0 {
		ai.st.Evaluated++
		return ai.evaluate(p, ai.self)
	}
	ai.st.Visited++

	v := math.Inf(-1)
	for _, m := range p.Actions() {
		v = math.Max(v, ai.minValue(p.Result(m), α, β, depth-1))
		if ai.cancelled() {
			return 0
		}
		if ai.cfg.Pruning == Reference {
			if v >= β {
				α = math.Max(α, v)
			}
			continue
		}
		if v >= β {
			ai.st.CutNodes++
			return v
		}
		α = math.Max(α, v)
	}
	return v
}

func (ai *MinimaxAI) minValue(p *isolation.Position, α, β float64, depth int) float64 {
	if over, _ := p.GameOver(); over {
		ai.st.Terminal++
		return p.Utility(ai.self)
	}
	if depth <= 0 {
		ai.st.Evaluated++
		return ai.evaluate(p, ai.self)
	}
	ai.st.Visited++

	v := math.Inf(1)
	for _, m := range p.Actions() {
		v = math.Min(v, ai.maxValue(p.Result(m), α, β, depth-1))
		if ai.cancelled() {
			return 0
		}
		if v <= α {
			ai.st.CutNodes++
			return v
		}
		β = math.Min(β, v)
	}
	return v
}
