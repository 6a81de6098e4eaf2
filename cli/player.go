package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

// NewCLIPlayer reads moves from in, prompting on out. End of input
// resigns.
func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) RetryIllegal() bool { return true }

func (c *cliPlayer) GetMove(p *isolation.Position) isolation.Action {
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return isolation.NoAction
		}
		m, err := notation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		return m
	}
}

// TimedPlayer gives an AI player a fixed amount of wall-clock time
// per move. The AI's answer is whatever it has published when the
// deadline passes. A zero Limit means no deadline.
type TimedPlayer struct {
	Limit time.Duration
	AI    ai.Player
}

func (t *TimedPlayer) GetMove(p *isolation.Position) isolation.Action {
	ctx := context.Background()
	if t.Limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(t.Limit))
		defer cancel()
	}
	return t.AI.GetMove(ctx, p)
}
