package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

type Player interface {
	GetMove(p *isolation.Position) isolation.Action
}

type CLI struct {
	moves   []isolation.Action
	p       *isolation.Position
	winner  isolation.Player
	forfeit bool

	Config isolation.Config
	// Initial, if set, is played from instead of the empty board.
	Initial *isolation.Position
	Out     io.Writer
	// Quiet suppresses the board after every move.
	Quiet   bool
	Player1 Player
	Player2 Player
}

// Retrier is implemented by players who may be asked again after an
// illegal move, such as a human at a prompt.
type Retrier interface {
	RetryIllegal() bool
}

// Play runs one game to completion and returns the final
// position. A player that answers with isolation.NoAction forfeits,
// as does one that makes an illegal move, unless it is a Retrier.
func (c *CLI) Play() *isolation.Position {
	c.moves = nil
	c.winner = isolation.NoPlayer
	c.forfeit = false
	c.p = c.Initial
	if c.p == nil {
		c.p = isolation.New(c.Config)
	}
	for {
		c.render()
		if over, winner := c.p.GameOver(); over {
			c.winner = winner
			fmt.Fprintf(c.Out, "Game over! %s wins: %s has no moves.\n",
				winner, c.p.ToMove())
			return c.p
		}
		m := c.current().GetMove(c.p)
		if m == isolation.NoAction {
			c.winner = c.p.ToMove().Flip()
			c.forfeit = true
			fmt.Fprintf(c.Out, "%s forfeits. %s wins.\n", c.p.ToMove(), c.winner)
			return c.p
		}
		p, e := c.p.Move(m)
		if e != nil {
			fmt.Fprintf(c.Out, "illegal move %s: %v\n", notation.FormatMove(m), e)
			if r, ok := c.current().(Retrier); ok && r.RetryIllegal() {
				continue
			}
			c.winner = c.p.ToMove().Flip()
			c.forfeit = true
			fmt.Fprintf(c.Out, "%s forfeits. %s wins.\n", c.p.ToMove(), c.winner)
			return c.p
		}
		if c.p.ToMove() == isolation.Player1 {
			fmt.Fprintf(c.Out, "%d. %s\n", c.p.Ply()/2+1, notation.FormatMove(m))
		} else {
			fmt.Fprintf(c.Out, "%d. ... %s\n", c.p.Ply()/2+1, notation.FormatMove(m))
		}
		c.p = p
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) current() Player {
	if c.p.ToMove() == isolation.Player1 {
		return c.Player1
	}
	return c.Player2
}

func (c *CLI) Moves() []isolation.Action {
	return c.moves
}

// Winner reports the winner of the last game played, and whether
// it was decided by forfeit.
func (c *CLI) Winner() (winner isolation.Player, forfeit bool) {
	return c.winner, c.forfeit
}

func (c *CLI) render() {
	if c.Quiet {
		return
	}
	RenderBoard(c.Out, c.p)
}

// RenderBoard draws p with row 1 at the bottom. Colors are used only
// when out is a terminal that supports them.
func RenderBoard(out io.Writer, p *isolation.Position) {
	renderBoard(termenv.NewOutput(out), p)
}

func renderBoard(o *termenv.Output, p *isolation.Position) {
	glyphs := [2]string{
		o.String("1").Foreground(o.Color("1")).Bold().String(),
		o.String("2").Foreground(o.Color("4")).Bold().String(),
	}
	blocked := o.String("x").Faint().String()

	fmt.Fprintf(o, "\n[%s to move, ply %d]\n", p.ToMove(), p.Ply())
	for y := p.Height() - 1; y >= 0; y-- {
		fmt.Fprintf(o, "%2d", y+1)
		for x := 0; x < p.Width(); x++ {
			c := isolation.Cell{X: x, Y: y}
			switch {
			case c == p.Loc(isolation.Player1):
				fmt.Fprintf(o, " %s", glyphs[0])
			case c == p.Loc(isolation.Player2):
				fmt.Fprintf(o, " %s", glyphs[1])
			case p.Open(c):
				fmt.Fprint(o, " .")
			default:
				fmt.Fprintf(o, " %s", blocked)
			}
		}
		fmt.Fprintln(o)
	}
	fmt.Fprint(o, "  ")
	for x := 0; x < p.Width(); x++ {
		fmt.Fprintf(o, " %c", 'a'+x)
	}
	fmt.Fprintln(o)
}
