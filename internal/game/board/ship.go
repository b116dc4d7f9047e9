package board

import (
	"errors"
	"fmt"
)

const MaxShipSize = 5

var ErrOutOfBounds = errors.New("ship out of bounds")

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		panic("invalid orientation")
	}
}

// Creates a horizontal ship of the given size in the top-left corner.
func NewShip(size int) Board {
	assert(size >= 1 && size <= MaxShipSize, "ship size must be in 1..5")
	return Line.AndNot(Line.Shift(size, Right))
}

// Creates a ship of the given size whose top-left cell is (x, y).
func PlaceShip(size, x, y int, o Orientation) (Board, error) {
	if size < 1 || size > MaxShipSize {
		return Empty, fmt.Errorf("invalid ship size %d", size)
	}

	w, h := size, 1
	if o == Vertical {
		w, h = 1, size
	}

	if x < 0 || y < 0 || x+w > Size || y+h > Size {
		return Empty, fmt.Errorf("%w: %d%s at (%d, %d)", ErrOutOfBounds, size, o, x, y)
	}

	ship := NewShip(size)
	if o == Vertical {
		ship = ship.Transpose()
	}

	return ship.Shift(x, Right).Shift(y, Down), nil
}
