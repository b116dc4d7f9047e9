//go:build !seabattle_noassert

package board

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestAssert_Padding(t *testing.T) {
	malformed := Board{lo: 1}

	tassert.False(t, malformed.Valid())
	tassert.Panics(t, func() { malformed.Transpose() })
	tassert.Panics(t, func() { malformed.Get(0, 0) })
	tassert.Panics(t, func() { malformed.Set(0, 0, true) })
	tassert.Panics(t, func() { malformed.Shift(1, Up) })
	tassert.Panics(t, func() { malformed.SurroundMask() })
}

func TestAssert_NegativeShift(t *testing.T) {
	tassert.Panics(t, func() { Cell.Shift(-1, Down) })
}

func TestAssert_OutOfRange(t *testing.T) {
	tassert.Panics(t, func() { Empty.Get(10, 0) })
	tassert.Panics(t, func() { Empty.Get(0, 10) })
	tassert.Panics(t, func() { Empty.Set(-1, 0, true) })
	tassert.Panics(t, func() { At(0, -1) })
}

func TestAssert_ShipSize(t *testing.T) {
	tassert.Panics(t, func() { NewShip(0) })
	tassert.Panics(t, func() { NewShip(MaxShipSize + 1) })
}
