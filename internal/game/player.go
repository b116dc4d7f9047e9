package game

import "fmt"

type Player int

const (
	Alpha Player = iota
	Beta
)

func (p Player) Other() Player {
	switch p {
	case Alpha:
		return Beta
	case Beta:
		return Alpha
	default:
		panic("invalid player")
	}
}

func (p Player) String() string {
	switch p {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	default:
		panic("invalid player")
	}
}

func (p *Player) FromString(str string) error {
	switch str {
	case "alpha":
		*p = Alpha
	case "beta":
		*p = Beta
	default:
		return fmt.Errorf("invalid player %q", str)
	}
	return nil
}
