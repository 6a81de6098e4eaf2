package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
)

type scripted struct {
	moves []isolation.Action
}

func (s *scripted) GetMove(*isolation.Position) isolation.Action {
	if len(s.moves) == 0 {
		return isolation.NoAction
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m
}

// patient is a scripted player that gets another try after an
// illegal move.
type patient struct {
	scripted
}

func (*patient) RetryIllegal() bool { return true }

type stubborn struct {
	m isolation.Action
}

func (s stubborn) GetMove(context.Context, *isolation.Position) isolation.Action {
	return s.m
}

func TestPlayToCompletion(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Config:  isolation.Config{Width: 3, Height: 3},
		Out:     &out,
		Player1: &scripted{isotest.Moves("b2")},
		Player2: &scripted{isotest.Moves("a1")},
	}
	p := c.Play()
	assert.Equal(t, 2, p.Ply())
	assert.Equal(t, isotest.Moves("b2 a1"), c.Moves())
	winner, forfeit := c.Winner()
	assert.Equal(t, isolation.Player2, winner)
	assert.False(t, forfeit)
	assert.Contains(t, out.String(), "1. b2")
	assert.Contains(t, out.String(), "1. ... a1")
	assert.Contains(t, out.String(), "player2 wins")
}

func TestPlayForfeit(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Config:  isolation.Config{Width: 5, Height: 5},
		Out:     &out,
		Quiet:   true,
		Player1: &scripted{isotest.Moves("c3")},
		Player2: &scripted{},
	}
	p := c.Play()
	assert.Equal(t, 1, p.Ply())
	winner, forfeit := c.Winner()
	assert.Equal(t, isolation.Player1, winner)
	assert.True(t, forfeit)
	assert.Contains(t, out.String(), "player2 forfeits")
}

func TestPlayIllegalMoveRetries(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Config:  isolation.Config{Width: 3, Height: 3},
		Out:     &out,
		Quiet:   true,
		Player1: &patient{scripted{isotest.Moves("e5 b2")}},
		Player2: &patient{scripted{isotest.Moves("b2 a1")}},
	}
	c.Play()
	assert.Equal(t, isotest.Moves("b2 a1"), c.Moves())
	assert.Equal(t, 2, strings.Count(out.String(), "illegal move"))
}

func TestPlayIllegalAIMoveForfeits(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Config:  isolation.Config{Width: 5, Height: 5},
		Out:     &out,
		Quiet:   true,
		Player1: &scripted{isotest.Moves("c3")},
		Player2: &TimedPlayer{Limit: time.Second, AI: stubborn{isotest.Move("c3")}},
	}
	p := c.Play()
	assert.Equal(t, 1, p.Ply())
	assert.Equal(t, isotest.Moves("c3"), c.Moves())
	winner, forfeit := c.Winner()
	assert.Equal(t, isolation.Player1, winner)
	assert.True(t, forfeit)
	assert.Equal(t, 1, strings.Count(out.String(), "illegal move"))
	assert.Contains(t, out.String(), "player2 forfeits")
}

func TestPlayFromInitial(t *testing.T) {
	var out bytes.Buffer
	c := &CLI{
		Initial: isotest.Parse(".../.1./2.. 2"),
		Out:     &out,
		Quiet:   true,
		Player1: &scripted{},
		Player2: &scripted{},
	}
	c.Play()
	assert.Empty(t, c.Moves())
	winner, _ := c.Winner()
	assert.Equal(t, isolation.Player2, winner)
}

func TestRenderBoard(t *testing.T) {
	var out bytes.Buffer
	o := termenv.NewOutput(&out, termenv.WithProfile(termenv.Ascii))
	renderBoard(o, isotest.Parse(".x./.1./2.. 2"))
	assert.Equal(t, `
[player1 to move, ply 2]
 3 . x .
 2 . 1 .
 1 2 . .
   a b c
`, out.String())
}

func TestCLIPlayer(t *testing.T) {
	var out bytes.Buffer
	pl := NewCLIPlayer(&out, bufio.NewReader(strings.NewReader("zz\nc3\n")))
	p := isolation.New(isolation.Config{Width: 5, Height: 5})
	assert.Equal(t, isotest.Move("c3"), pl.GetMove(p))
	assert.Contains(t, out.String(), "parse error")
	assert.Equal(t, isolation.NoAction, pl.GetMove(p), "end of input resigns")

	r, ok := pl.(Retrier)
	assert.True(t, ok && r.RetryIllegal(), "humans may retry illegal moves")
	_, ok = Player(&TimedPlayer{}).(Retrier)
	assert.False(t, ok)
}

type stalling struct{}

func (stalling) GetMove(ctx context.Context, p *isolation.Position) isolation.Action {
	<-ctx.Done()
	return isolation.NoAction
}

func TestTimedPlayer(t *testing.T) {
	p := isolation.New(isolation.Config{Width: 5, Height: 5})
	m := (&TimedPlayer{Limit: time.Second, AI: ai.NewRandom(1)}).GetMove(p)
	assert.Contains(t, p.Actions(), m)

	start := time.Now()
	m = (&TimedPlayer{Limit: 10 * time.Millisecond, AI: stalling{}}).GetMove(p)
	assert.Equal(t, isolation.NoAction, m)
	assert.Less(t, int64(time.Since(start)), int64(time.Second))
}
