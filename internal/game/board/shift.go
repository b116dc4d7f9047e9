package board

import "fmt"

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		panic("invalid direction")
	}
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", s)
	}
}

// Border cells a shape must not occupy to move one step in `d`
// without leaving the grid.
func (d Direction) Border() Board {
	switch d {
	case Up:
		return TopBorder
	case Down:
		return BottomBorder
	case Left:
		return LeftBorder
	case Right:
		return RightBorder
	default:
		panic("invalid direction")
	}
}

// Shifts the board by `n` cells in direction `d`, treating the grid
// as a flat run of bits.
//
// Horizontal shifts wrap across rows: a cell pushed off the right edge
// shows up on the left edge of the next row. Cells pushed above the
// top row or below the bottom row are dropped.
//
// Only safe when the caller knows the shape stays clear of the edge
// it moves towards. See `CuttingShift` and `SaturatedShift`.
func (b Board) Shift(n int, d Direction) Board {
	assertValid(b)
	assert(n >= 0, "negative shift")

	switch d {
	case Up:
		return b.lsh(uint(n * Size))
	case Down:
		return b.rsh(uint(n * Size)).And(Mask)
	case Left:
		return b.lsh(uint(n))
	case Right:
		return b.rsh(uint(n)).And(Mask)
	default:
		panic("invalid direction")
	}
}

// Moves the board one cell in direction `d`. Cells lying on the border
// in that direction are cleared first, so nothing wraps around.
func (b Board) CuttingShift(d Direction) Board {
	return b.AndNot(d.Border()).Shift(1, d)
}

// Moves the board one cell in direction `d` unless some cell already
// lies on the border in that direction, in which case the board is
// returned unchanged. Reports whether the board moved.
func (b Board) SaturatedShift(d Direction) (Board, bool) {
	if b.Intersects(d.Border()) {
		return b, false
	}
	return b.Shift(1, d), true
}

// Returns the shape dilated by one cell in all eight directions,
// including the shape itself and clipped at the grid edges.
func (b Board) SurroundMask() Board {
	h := b.Or(b.CuttingShift(Left)).Or(b.CuttingShift(Right))
	return h.Or(h.CuttingShift(Up)).Or(h.CuttingShift(Down))
}

// Reflects the board across its main diagonal.
func (b Board) Transpose() Board {
	assertValid(b)

	result := b
	for i := 1; i < Size; i++ {
		for j := 0; j < i; j++ {
			result = result.Set(i, j, b.Get(j, i))
			result = result.Set(j, i, b.Get(i, j))
		}
	}

	return result
}
