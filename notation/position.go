package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/isolation/isolation"
)

// ParsePosition reads a position string: rows from the top of the
// board down, separated by '/', one character per cell ('.' open,
// 'x' closed, '1' and '2' the players), then a space and the ply.
//
//	"x..../..1../...../.2.x./..... 3"
func ParsePosition(s string) (*isolation.Position, error) {
	words := strings.Fields(s)
	if len(words) != 2 {
		return nil, errors.New("bad position: wrong number of words")
	}
	ply, err := strconv.Atoi(words[1])
	if err != nil || ply < 0 {
		return nil, fmt.Errorf("bad ply: %s", words[1])
	}
	rows := strings.Split(words[0], "/")
	h := len(rows)
	w := len(rows[0])
	cfg := isolation.Config{Width: w, Height: h}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var blocked []isolation.Cell
	locs := [2]isolation.Cell{isolation.NoCell, isolation.NoCell}
	for i, r := range rows {
		if len(r) != w {
			return nil, fmt.Errorf("row %d bad length: %d", i+1, len(r))
		}
		y := h - 1 - i
		for x, ch := range r {
			c := isolation.Cell{X: x, Y: y}
			switch ch {
			case '.':
			case 'x':
				blocked = append(blocked, c)
			case '1', '2':
				pl := ch - '1'
				if locs[pl] != isolation.NoCell {
					return nil, fmt.Errorf("player %c appears twice", ch)
				}
				locs[pl] = c
			default:
				return nil, fmt.Errorf("bad cell %q in row %d", ch, i+1)
			}
		}
	}
	return isolation.FromCells(cfg, blocked, locs, ply)
}

func FormatPosition(p *isolation.Position) string {
	var rows []string
	for y := p.Height() - 1; y >= 0; y-- {
		var row strings.Builder
		for x := 0; x < p.Width(); x++ {
			c := isolation.Cell{X: x, Y: y}
			switch {
			case c == p.Loc(isolation.Player1):
				row.WriteByte('1')
			case c == p.Loc(isolation.Player2):
				row.WriteByte('2')
			case p.Open(c):
				row.WriteByte('.')
			default:
				row.WriteByte('x')
			}
		}
		rows = append(rows, row.String())
	}
	return fmt.Sprintf("%s %d", strings.Join(rows, "/"), p.Ply())
}
