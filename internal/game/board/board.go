package board

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	Size  = 10
	Cells = Size * Size

	// Number of low-order bits that never hold a cell.
	Gap = 128 - Cells
)

// Board is a 10x10 grid packed into 128 bits.
//
// The high-order 100 bits hold the grid in row-major order, the most
// significant bit being the top-left cell (0, 0). The low-order `Gap`
// bits are padding and must always be zero.
type Board struct {
	hi, lo uint64
}

var (
	Empty = Board{}
	Cell  = Board{hi: 1 << 63}
	Line  = Board{hi: (1<<Size - 1) << (64 - Size)}
	Mask  = Board{hi: ^uint64(0), lo: (1<<(64-Gap) - 1) << Gap}

	TopBorder    = Line
	BottomBorder = Line.Shift(Size-1, Down)
	LeftBorder   = Line.Transpose()
	RightBorder  = LeftBorder.rsh(Size - 1)
)

var (
	ErrPadding = errors.New("padding bits are set")
	ErrFormat  = errors.New("malformed board")
)

func (b Board) lsh(n uint) Board {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Board{hi: b.lo << (n - 64)}
	default:
		return Board{hi: b.hi<<n | b.lo>>(64-n), lo: b.lo << n}
	}
}

func (b Board) rsh(n uint) Board {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Board{lo: b.hi >> (n - 64)}
	default:
		return Board{hi: b.hi >> n, lo: b.lo>>n | b.hi<<(64-n)}
	}
}

func (b Board) Or(o Board) Board {
	return Board{b.hi | o.hi, b.lo | o.lo}
}

func (b Board) And(o Board) Board {
	return Board{b.hi & o.hi, b.lo & o.lo}
}

func (b Board) AndNot(o Board) Board {
	return Board{b.hi &^ o.hi, b.lo &^ o.lo}
}

func (b Board) IsZero() bool {
	return b.hi == 0 && b.lo == 0
}

// Reports whether every set cell of `o` is also set in `b`.
func (b Board) Covers(o Board) bool {
	return o.AndNot(b).IsZero()
}

func (b Board) Intersects(o Board) bool {
	return !b.And(o).IsZero()
}

// Number of set cells.
func (b Board) Count() int {
	return bits.OnesCount64(b.hi) + bits.OnesCount64(b.lo)
}

// Reports whether no padding bit is set.
func (b Board) Valid() bool {
	return b.AndNot(Mask).IsZero()
}

func bitIndex(x, y int) uint {
	assert(x >= 0 && x < Size, "x out of range")
	assert(y >= 0 && y < Size, "y out of range")

	return uint(Size*(Size-1-y) + Gap + (Size - 1 - x))
}

// Returns a board with the single cell (x, y) set.
func At(x, y int) Board {
	return Board{lo: 1}.lsh(bitIndex(x, y))
}

func (b Board) Get(x, y int) bool {
	assertValid(b)
	return b.Intersects(At(x, y))
}

func (b Board) Set(x, y int, value bool) Board {
	assertValid(b)
	if value {
		return b.Or(At(x, y))
	}
	return b.AndNot(At(x, y))
}

// Iterates over set cells, row by row.
func (b Board) Points() iter.Seq2[int, int] {
	return func(yield func(x, y int) bool) {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if b.Get(x, y) && !yield(x, y) {
					return
				}
			}
		}
	}
}

// Returns the two 64-bit words of the board, high word first.
func (b Board) Words() (hi, lo uint64) {
	return b.hi, b.lo
}

func FromWords(hi, lo uint64) (Board, error) {
	b := Board{hi, lo}
	if !b.Valid() {
		return Empty, ErrPadding
	}
	return b, nil
}

func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Cells + Size)

	for y := 0; y < Size; y++ {
		if y != 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Size; x++ {
			if b.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}

// Parses the `String` form back. Whitespace is ignored, `#` marks
// a set cell and `.` an empty one.
func Parse(s string) (Board, error) {
	var b Board
	var n int

	for _, c := range s {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '#', '.':
		default:
			return Empty, fmt.Errorf("%w: unexpected %q", ErrFormat, c)
		}

		if n >= Cells {
			return Empty, fmt.Errorf("%w: more than %d cells", ErrFormat, Cells)
		}
		if c == '#' {
			b = b.Set(n%Size, n/Size, true)
		}
		n++
	}

	if n != Cells {
		return Empty, fmt.Errorf("%w: got %d cells, want %d", ErrFormat, n, Cells)
	}

	return b, nil
}

// Like `Parse`, but panics on error. Intended for fixtures.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}
