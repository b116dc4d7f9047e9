package match

import (
	"context"

	"github.com/mrsobakin/seabattle/internal/game"
)

// Player is one side of a match, as seen by the referee.
//
// Every call receives a context bounded by the player's remaining
// time budget. Implementations that block must give up once it is done.
type Player interface {
	// Returns the ship for the given fleet slot. Slots are requested
	// in order, each exactly once.
	PlaceShip(ctx context.Context, slot, size int) (game.Ship, error)

	// Returns the cell to fire at.
	Shot(ctx context.Context) (x, y int, err error)

	// Reports the outcome of the last shot.
	SetResult(ctx context.Context, result game.ShotResult) error

	// Terminates player session.
	Close() error
}
