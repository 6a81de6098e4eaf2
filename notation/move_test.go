package notation

import (
	"errors"
	"testing"

	"github.com/nelhage/isolation/isolation"
	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want isolation.Cell
		err  bool
	}{
		{"a1", isolation.Cell{X: 0, Y: 0}, false},
		{"c4", isolation.Cell{X: 2, Y: 3}, false},
		{"k9", isolation.Cell{X: 10, Y: 8}, false},
		{"b12", isolation.Cell{X: 1, Y: 11}, false},
		{" d2\n", isolation.Cell{X: 3, Y: 1}, false},
		{"a0", isolation.NoCell, true},
		{"A1", isolation.NoCell, true},
		{"a", isolation.NoCell, true},
		{"", isolation.NoCell, true},
		{"1a", isolation.NoCell, true},
	}
	for _, tc := range cases {
		got, err := ParseCell(tc.in)
		if tc.err {
			assert.True(t, errors.Is(err, ErrBadCell), "ParseCell(%q) err=%v", tc.in, err)
			continue
		}
		if assert.NoError(t, err, tc.in) {
			assert.Equal(t, tc.want, got, tc.in)
			assert.Equal(t, tc.want, mustParse(t, FormatCell(got)))
		}
	}
}

func mustParse(t *testing.T, s string) isolation.Cell {
	c, err := ParseCell(s)
	if err != nil {
		t.Fatalf("ParseCell(%q): %v", s, err)
	}
	return c
}

func TestFormatMoves(t *testing.T) {
	ms := []isolation.Action{
		{To: isolation.Cell{X: 0, Y: 0}},
		{To: isolation.Cell{X: 4, Y: 6}},
	}
	assert.Equal(t, "a1 e7", FormatMoves(ms))
	assert.Equal(t, "-", FormatMove(isolation.NoAction))
}
