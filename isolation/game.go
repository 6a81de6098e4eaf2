package isolation

import (
	"errors"
	"fmt"
	"math"

	"github.com/nelhage/isolation/bitboard"
)

const (
	DefaultWidth  = 11
	DefaultHeight = 9
)

type Config struct {
	Width  int
	Height int

	c bitboard.Constants
}

func (g *Config) defaults() {
	if g.Width == 0 && g.Height == 0 {
		g.Width = DefaultWidth
		g.Height = DefaultHeight
	}
}

// Validate reports whether a board of the configured dimensions can
// be represented.
func (g Config) Validate() error {
	g.defaults()
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("bad board size: %dx%d", g.Width, g.Height)
	}
	if g.Width > 26 {
		return fmt.Errorf("board too wide: %d > 26", g.Width)
	}
	if g.Width*g.Height > bitboard.MaxCells {
		return fmt.Errorf("board too large: %dx%d > %d cells",
			g.Width, g.Height, bitboard.MaxCells)
	}
	return nil
}

// New returns the empty starting position. It panics if the
// configuration does not Validate.
func New(g Config) *Position {
	if err := g.Validate(); err != nil {
		panic(err.Error())
	}
	g.defaults()
	g.c = bitboard.Precompute(uint(g.Width), uint(g.Height))
	return &Position{
		cfg:  &g,
		open: g.c.Mask,
		locs: [2]int{-1, -1},
	}
}

// Position is an immutable snapshot of a game. Cells that either
// player has ever occupied are closed for the rest of the game.
type Position struct {
	cfg  *Config
	open bitboard.Bits
	locs [2]int
	ply  int
}

// FromCells builds a position with the given closed cells and player
// locations after `ply` moves. A player's location must be NoCell
// exactly when that player has not moved yet.
func FromCells(cfg Config, blocked []Cell, locs [2]Cell, ply int) (*Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ply < 0 {
		return nil, fmt.Errorf("bad ply: %d", ply)
	}
	p := New(cfg)
	p.ply = ply
	for _, c := range blocked {
		if !p.OnBoard(c) {
			return nil, fmt.Errorf("blocked cell off board: %v", c)
		}
		p.open = p.open.Clear(p.index(c))
	}
	for i, c := range locs {
		placed := ply > i
		if c == NoCell {
			if placed {
				return nil, fmt.Errorf("%s has moved but has no location", Player(i))
			}
			continue
		}
		if !placed {
			return nil, fmt.Errorf("%s has a location before moving", Player(i))
		}
		if !p.OnBoard(c) {
			return nil, fmt.Errorf("%s off board: %v", Player(i), c)
		}
		p.locs[i] = int(p.index(c))
		p.open = p.open.Clear(p.index(c))
	}
	if p.locs[0] >= 0 && p.locs[0] == p.locs[1] {
		return nil, errors.New("players share a cell")
	}
	if closed := bitboard.Count(p.cfg.c.Mask.AndNot(p.open)); closed < ply {
		return nil, fmt.Errorf("%d closed cells after %d moves", closed, ply)
	}
	return p, nil
}

func (p *Position) Config() Config {
	return *p.cfg
}

func (p *Position) Width() int {
	return p.cfg.Width
}

func (p *Position) Height() int {
	return p.cfg.Height
}

// Ply is the number of moves made so far by both players.
func (p *Position) Ply() int {
	return p.ply
}

func (p *Position) ToMove() Player {
	return Player(p.ply % 2)
}

func (p *Position) Loc(pl Player) Cell {
	i := p.locs[pl]
	if i < 0 {
		return NoCell
	}
	return p.cell(uint(i))
}

func (p *Position) OnBoard(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < p.cfg.Width && c.Y < p.cfg.Height
}

func (p *Position) Open(c Cell) bool {
	return p.OnBoard(c) && p.open.Has(p.index(c))
}

// OpenCells returns the number of cells not yet closed.
func (p *Position) OpenCells() int {
	return bitboard.Count(p.open)
}

func (p *Position) index(c Cell) uint {
	return uint(c.Y*p.cfg.Width + c.X)
}

func (p *Position) cell(i uint) Cell {
	x, y := bitboard.BitCoords(&p.cfg.c, i)
	return Cell{int(x), int(y)}
}

func (p *Position) libertyBits(c Cell) bitboard.Bits {
	if c == NoCell {
		return p.open
	}
	return p.cfg.c.Knight[p.index(c)].And(p.open)
}

// Liberties returns the open cells a piece on c could move to
// next. The liberties of NoCell are every open cell, in row-major
// order; otherwise cells are listed in direction order.
func (p *Position) Liberties(c Cell) []Cell {
	if c == NoCell {
		out := make([]Cell, 0, bitboard.Count(p.open))
		for rest := p.open; !rest.Empty(); {
			i := bitboard.Lowest(rest)
			rest = rest.Clear(i)
			out = append(out, p.cell(i))
		}
		return out
	}
	var out []Cell
	for _, d := range Directions {
		n := Cell{c.X + d.DX, c.Y + d.DY}
		if p.Open(n) {
			out = append(out, n)
		}
	}
	return out
}

// LibertyCount is len(p.Liberties(c)), without allocating.
func (p *Position) LibertyCount(c Cell) int {
	return bitboard.Count(p.libertyBits(c))
}

// GameOver reports whether the side to move is out of moves. If so,
// the other side is the winner.
func (p *Position) GameOver() (over bool, winner Player) {
	if p.libertyBits(p.Loc(p.ToMove())).Empty() {
		return true, p.ToMove().Flip()
	}
	return false, NoPlayer
}

// Utility is the exact value of a finished game for pl: +Inf for a
// win and -Inf for a loss. It is 0 for a game in progress.
func (p *Position) Utility(pl Player) float64 {
	over, winner := p.GameOver()
	switch {
	case !over:
		return 0
	case winner == pl:
		return math.Inf(1)
	default:
		return math.Inf(-1)
	}
}
