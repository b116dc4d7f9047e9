package game

import (
	"fmt"

	"github.com/mrsobakin/seabattle/internal/game/board"
)

const FleetSize = 5

// Ship sizes per fleet slot. Slot `i` of a fleet holds a ship of
// size `ShipSizes[i]`.
var ShipSizes = [FleetSize]int{5, 4, 3, 3, 2}

var shipClasses = [FleetSize]string{
	"carrier",
	"cruiser",
	"destroyer",
	"submarine",
	"patrol boat",
}

// Name of the ship class occupying the given fleet slot.
func ShipClass(slot int) string {
	if slot < 0 || slot >= FleetSize {
		panic("invalid fleet slot")
	}
	return shipClasses[slot]
}

// Ship placement as players describe it: top-left cell, size and
// orientation.
type Ship struct {
	X, Y     int
	Size     int
	Vertical bool
}

func (s Ship) Orientation() board.Orientation {
	if s.Vertical {
		return board.Vertical
	}
	return board.Horizontal
}

func (s Ship) Board() (board.Board, error) {
	return board.PlaceShip(s.Size, s.X, s.Y, s.Orientation())
}

func (s Ship) String() string {
	return fmt.Sprintf("%d %s %d %d", s.Size, s.Orientation(), s.X, s.Y)
}
