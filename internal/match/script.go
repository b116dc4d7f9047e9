package match

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrsobakin/seabattle/internal/game"
)

var ErrScriptExhausted = errors.New("script exhausted")

type Point struct {
	X, Y int
}

// Script is a prerecorded match: the fleet and the shots of both
// players.
//
// Text form, one command per line, `#` starts a comment:
//
//	alpha ship 5 h 0 0
//	beta shot 3 4
type Script struct {
	Ships [2][]game.Ship
	Shots [2][]Point
}

// Parses a ship in the `<size> <h|v> <x> <y>` form.
func ParseShip(str string) (game.Ship, error) {
	var ship game.Ship
	var direction rune

	n, err := fmt.Sscanf(str, "%d %c %d %d", &ship.Size, &direction, &ship.X, &ship.Y)
	if err != nil || n != 4 {
		return ship, fmt.Errorf("malformed ship %q", str)
	}

	switch direction {
	case 'v':
		ship.Vertical = true
	case 'h':
		ship.Vertical = false
	default:
		return ship, fmt.Errorf("invalid ship direction %q", direction)
	}

	return ship, nil
}

func ParseScript(src io.Reader) (*Script, error) {
	var script Script

	lines := bufio.NewScanner(src)
	for lineNo := 1; lines.Scan(); lineNo++ {
		line := lines.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: incomplete command", lineNo)
		}

		var p game.Player
		if err := p.FromString(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		args := strings.Join(fields[2:], " ")

		switch fields[1] {
		case "ship":
			ship, err := ParseShip(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			script.Ships[p] = append(script.Ships[p], ship)
		case "shot":
			var pt Point
			n, err := fmt.Sscanf(args, "%d %d", &pt.X, &pt.Y)
			if err != nil || n != 2 {
				return nil, fmt.Errorf("line %d: malformed shot %q", lineNo, args)
			}
			script.Shots[p] = append(script.Shots[p], pt)
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", lineNo, fields[1])
		}
	}

	if err := lines.Err(); err != nil {
		return nil, err
	}

	return &script, nil
}

// ScriptPlayer replays one side of a Script.
type ScriptPlayer struct {
	ships   []game.Ship
	shots   []Point
	next    int
	results []game.ShotResult
}

func NewScriptPlayer(script *Script, p game.Player) *ScriptPlayer {
	return &ScriptPlayer{
		ships: script.Ships[p],
		shots: script.Shots[p],
	}
}

func (p *ScriptPlayer) PlaceShip(_ context.Context, slot, _ int) (game.Ship, error) {
	if slot >= len(p.ships) {
		return game.Ship{}, fmt.Errorf("%w: no ship for slot %d", ErrScriptExhausted, slot)
	}
	return p.ships[slot], nil
}

func (p *ScriptPlayer) Shot(context.Context) (int, int, error) {
	if p.next >= len(p.shots) {
		return 0, 0, fmt.Errorf("%w: no shot left after %d", ErrScriptExhausted, p.next)
	}

	pt := p.shots[p.next]
	p.next++
	return pt.X, pt.Y, nil
}

func (p *ScriptPlayer) SetResult(_ context.Context, result game.ShotResult) error {
	p.results = append(p.results, result)
	return nil
}

// Results reported so far, one per shot.
func (p *ScriptPlayer) Results() []game.ShotResult {
	return p.results
}

func (p *ScriptPlayer) Close() error {
	return nil
}
