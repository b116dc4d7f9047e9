package match

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mrsobakin/seabattle/internal/game"
)

type Result int

const (
	Tie Result = iota
	AlphaWon
	BetaWon
)

func (r Result) String() string {
	switch r {
	case Tie:
		return "tie"
	case AlphaWon:
		return "alpha"
	case BetaWon:
		return "beta"
	default:
		panic("invalid result")
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func ResultFromWinner(p game.Player) Result {
	switch p {
	case game.Alpha:
		return AlphaWon
	case game.Beta:
		return BetaWon
	default:
		panic("invalid player")
	}
}

type Reason int

const (
	Ok Reason = iota
	InvalidPlacement
	InvalidShot
	RuntimeError
	Timeout
	GlobalTimeout
	StepLimit
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "OK"
	case InvalidPlacement:
		return "IP"
	case InvalidShot:
		return "IS"
	case RuntimeError:
		return "RE"
	case Timeout:
		return "TL"
	case GlobalTimeout:
		return "GTL"
	case StepLimit:
		return "SL"
	default:
		panic("invalid reason")
	}
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type Verdict struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name,omitempty"`
	Winner  Result    `json:"winner"`
	Reason  Reason    `json:"reason"`
	Details string    `json:"details"`
	Steps   int       `json:"steps"`
}
