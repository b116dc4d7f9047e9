package game

import "fmt"

type ShotResult int

const (
	Miss ShotResult = iota
	Hit
	Kill
)

func (r *ShotResult) FromString(str string) error {
	switch str {
	case "miss":
		*r = Miss
	case "hit":
		*r = Hit
	case "kill":
		*r = Kill
	default:
		return fmt.Errorf("invalid shot result %q", str)
	}
	return nil
}

func (r ShotResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Kill:
		return "kill"
	default:
		panic("invalid shot result")
	}
}

// Damage level of a single ship layer.
type Damage int

const (
	Intact Damage = iota
	Damaged
	Sunk
)

func (d Damage) String() string {
	switch d {
	case Intact:
		return "intact"
	case Damaged:
		return "damaged"
	case Sunk:
		return "sunk"
	default:
		panic("invalid damage")
	}
}
