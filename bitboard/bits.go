package bitboard

import "math/bits"

// MaxCells is the largest board a Bits can describe.
const MaxCells = 128

// Bits is a set of board cells. Cell i lives in word i/64, bit i%64;
// cells are numbered row-major starting from the bottom-left corner.
type Bits [2]uint64

type Constants struct {
	W, H uint
	Mask Bits

	// Knight[i] is the set of cells a knight standing on cell i
	// could jump to on an empty board.
	Knight []Bits
}

var knightSteps = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func Precompute(w, h uint) Constants {
	if w*h > MaxCells {
		panic("Precompute: board too large")
	}
	c := Constants{W: w, H: h, Knight: make([]Bits, w*h)}
	for i := uint(0); i < w*h; i++ {
		c.Mask = c.Mask.Set(i)
	}
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			var k Bits
			for _, s := range knightSteps {
				nx, ny := x+s[0], y+s[1]
				if nx < 0 || ny < 0 || nx >= int(w) || ny >= int(h) {
					continue
				}
				k = k.Set(uint(ny)*w + uint(nx))
			}
			c.Knight[uint(y)*w+uint(x)] = k
		}
	}
	return c
}

func Bit(i uint) Bits {
	var b Bits
	b[i>>6] = 1 << (i & 63)
	return b
}

func (b Bits) Has(i uint) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}

func (b Bits) Set(i uint) Bits {
	b[i>>6] |= 1 << (i & 63)
	return b
}

func (b Bits) Clear(i uint) Bits {
	b[i>>6] &^= 1 << (i & 63)
	return b
}

func (b Bits) And(o Bits) Bits {
	return Bits{b[0] & o[0], b[1] & o[1]}
}

func (b Bits) AndNot(o Bits) Bits {
	return Bits{b[0] &^ o[0], b[1] &^ o[1]}
}

func (b Bits) Or(o Bits) Bits {
	return Bits{b[0] | o[0], b[1] | o[1]}
}

func (b Bits) Empty() bool {
	return b[0] == 0 && b[1] == 0
}

func Count(b Bits) int {
	return Popcount(b[0]) + Popcount(b[1])
}

// Lowest returns the index of the lowest set cell. b must be non-empty.
func Lowest(b Bits) uint {
	if b[0] != 0 {
		return TrailingZeros(b[0])
	}
	if b[1] == 0 {
		panic("Lowest: empty")
	}
	return 64 + TrailingZeros(b[1])
}

func Popcount(x uint64) int {
	return bits.OnesCount64(x)
}

func TrailingZeros(x uint64) uint {
	return uint(bits.TrailingZeros64(x))
}

func BitCoords(c *Constants, i uint) (x, y uint) {
	if i >= c.W*c.H {
		panic("BitCoords: out of range")
	}
	return i % c.W, i / c.W
}
