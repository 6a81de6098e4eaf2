package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/isolation/isolation"
)

var ErrBadCell = errors.New("bad cell")

// FormatCell renders a cell as a column letter followed by a 1-based
// row, e.g. "c4".
func FormatCell(c isolation.Cell) string {
	if c == isolation.NoCell {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
}

func ParseCell(s string) (isolation.Cell, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return isolation.NoCell, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	col := s[0]
	if col < 'a' || col > 'z' {
		return isolation.NoCell, fmt.Errorf("%w: bad column in %q", ErrBadCell, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return isolation.NoCell, fmt.Errorf("%w: bad row in %q", ErrBadCell, s)
	}
	return isolation.Cell{X: int(col - 'a'), Y: row - 1}, nil
}

func FormatMove(m isolation.Action) string {
	return FormatCell(m.To)
}

func ParseMove(s string) (isolation.Action, error) {
	c, err := ParseCell(s)
	if err != nil {
		return isolation.NoAction, err
	}
	return isolation.Action{To: c}, nil
}

func FormatMoves(ms []isolation.Action) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}
