package game

import (
	"errors"
	"fmt"

	"github.com/mrsobakin/seabattle/internal/game/board"
)

var (
	ErrPlacementRejected = errors.New("ship overlaps or touches another ship")
	ErrOutOfBounds       = errors.New("ship is outside of the grid")
)

// Game holds both fleets and the shots fired by each player.
//
// Ship layers are the source of truth: a player's board is always
// recomputed from them. Shots only ever grow.
//
// Game does not track whose turn it is; callers sequence the calls.
type Game struct {
	fleets [2][FleetSize]board.Board
	shots  [2]board.Board
}

func New() *Game {
	return &Game{}
}

func checkPlayer(p Player) {
	if p != Alpha && p != Beta {
		panic("invalid player")
	}
}

// Union of all ship layers of the player.
func (g *Game) Board(p Player) board.Board {
	checkPlayer(p)

	var b board.Board
	for _, layer := range g.fleets[p] {
		b = b.Or(layer)
	}
	return b
}

// All cells the player has fired at, including the cells revealed
// around ships it sank.
func (g *Game) Shots(p Player) board.Board {
	checkPlayer(p)
	return g.shots[p]
}

func (g *Game) Layer(p Player, slot int) board.Board {
	checkPlayer(p)
	if slot < 0 || slot >= FleetSize {
		panic("invalid fleet slot")
	}
	return g.fleets[p][slot]
}

// Reports whether `ship` neither overlaps nor touches, even
// diagonally, any ship the player has already placed.
func (g *Game) CanPlaceShip(p Player, ship board.Board) bool {
	return !ship.SurroundMask().Intersects(g.Board(p))
}

// Adds `ship` to the given fleet slot of the player.
//
// On error the game is left unchanged. Matching the ship size to the
// slot is up to the caller.
func (g *Game) AddShip(p Player, ship board.Board, slot int) error {
	checkPlayer(p)
	if slot < 0 || slot >= FleetSize {
		panic("invalid fleet slot")
	}

	if ship.IsZero() || !ship.Valid() {
		return ErrOutOfBounds
	}

	if !g.CanPlaceShip(p, ship) {
		return fmt.Errorf("%w: %s at slot %d", ErrPlacementRejected, p, slot)
	}

	g.fleets[p][slot] = g.fleets[p][slot].Or(ship)
	return nil
}

// Reports whether every slot of the player's fleet holds a ship.
func (g *Game) FleetReady(p Player) bool {
	checkPlayer(p)
	for _, layer := range g.fleets[p] {
		if layer.IsZero() {
			return false
		}
	}
	return true
}

// Fires the player's shot at `target`, which may cover several cells.
//
// Every opponent ship that ends up fully covered by the player's shots
// has its surrounding cells marked as shot too. Cells of other
// opponent ships are never marked this way.
func (g *Game) Shoot(p Player, target board.Board) ShotResult {
	checkPlayer(p)
	if !target.Valid() {
		panic("shot target has padding bits set")
	}

	victim := g.Board(p.Other())
	g.shots[p] = g.shots[p].Or(target)

	result := Miss
	if target.Intersects(victim) {
		result = Hit
	}

	for _, layer := range g.fleets[p.Other()] {
		if layer.IsZero() || !g.shots[p].Covers(layer) {
			continue
		}

		if target.Intersects(layer) {
			result = Kill
		}

		// AddShip keeps ships apart, so the mask never reaches `others`
		// in a game built through it.
		others := victim.AndNot(layer)
		g.shots[p] = g.shots[p].Or(layer.SurroundMask().AndNot(others))
	}

	return result
}

// Opponent ship cells the player has hit.
func (g *Game) Hits(p Player) board.Board {
	return g.Shots(p).And(g.Board(p.Other()))
}

// Opponent ship cells the player has not hit yet.
func (g *Game) Intact(p Player) board.Board {
	return g.Board(p.Other()).AndNot(g.Shots(p))
}

// Damage of the ship in the given slot of player `p`, as inflicted by
// the opponent.
func (g *Game) Damage(p Player, slot int) Damage {
	layer := g.Layer(p, slot)
	hit := layer.And(g.Shots(p.Other())).Count()

	switch {
	case hit == 0:
		return Intact
	case hit < layer.Count():
		return Damaged
	default:
		return Sunk
	}
}

// Reports whether the player has shot every cell of the opponent's
// fleet.
func (g *Game) Won(p Player) bool {
	return g.Intact(p).IsZero()
}

// Returns the winning player, if any. Alpha is checked first.
func (g *Game) Winner() (Player, bool) {
	for _, p := range []Player{Alpha, Beta} {
		if g.Won(p) {
			return p, true
		}
	}
	return Alpha, false
}

func (g *Game) IsOver() bool {
	_, ok := g.Winner()
	return ok
}
