package match_test

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/match"
)

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

// Starts a bot answering commands with `respond`. An empty response
// means the bot stays silent.
func startBot(t testing.TB, respond func(cmd string) string) *match.StreamPlayer {
	cmdR, cmdW := io.Pipe()
	respR, respW := io.Pipe()

	go func() {
		defer respW.Close()

		scanner := bufio.NewScanner(cmdR)
		for scanner.Scan() {
			if resp := respond(scanner.Text()); resp != "" {
				if _, err := fmt.Fprintln(respW, resp); err != nil {
					return
				}
			}
		}
	}()

	p := match.NewStreamPlayer(respR, cmdW, closerFunc(cmdW.Close))
	t.Cleanup(func() { p.Close() })
	return p
}

// Bot that replays one side of a script over the stream protocol.
func scriptBot(script *match.Script, p game.Player) func(string) string {
	next := 0

	return func(cmd string) string {
		var slot, size int
		if n, _ := fmt.Sscanf(cmd, "place %d %d", &slot, &size); n == 2 {
			return script.Ships[p][slot].String()
		}

		if cmd == "shot" {
			pt := script.Shots[p][next]
			next++
			return fmt.Sprintf("%d %d", pt.X, pt.Y)
		}

		if strings.HasPrefix(cmd, "set result ") {
			return "ok"
		}

		return "unknown command"
	}
}

func TestStreamPlayer_Commands(t *testing.T) {
	var commands []string
	p := startBot(t, func(cmd string) string {
		commands = append(commands, cmd)
		switch cmd {
		case "place 0 5":
			return "5 v 1 2"
		case "shot":
			return "3 4"
		case "set result kill":
			return "ok"
		}
		return "nope"
	})

	ctx := context.Background()

	ship, err := p.PlaceShip(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, game.Ship{X: 1, Y: 2, Size: 5, Vertical: true}, ship)

	x, y, err := p.Shot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)

	assert.NoError(t, p.SetResult(ctx, game.Kill))
	assert.Error(t, p.SetResult(ctx, game.Miss))

	_, err = p.PlaceShip(ctx, 1, 4)
	assert.ErrorIs(t, err, match.ErrInvalidPlacement)

	_, _, err = p.Shot(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"place 0 5",
		"shot",
		"set result kill",
		"set result miss",
		"place 1 4",
		"shot",
	}, commands)
}

func TestStreamPlayer_MalformedShot(t *testing.T) {
	p := startBot(t, func(string) string { return "over there" })

	_, _, err := p.Shot(context.Background())
	assert.Error(t, err)
}

func TestStreamPlayer_Gone(t *testing.T) {
	r, w := io.Pipe()
	w.Close()

	p := match.NewStreamPlayer(r, io.Discard, nil)
	_, err := p.SendCommand(context.Background(), "shot")
	assert.ErrorIs(t, err, match.ErrPlayerGone)
	assert.NoError(t, p.Close())
}

func TestStreamPlayer_Context(t *testing.T) {
	p := startBot(t, func(string) string { return "" })

	cause := fmt.Errorf("too slow")
	ctx, cancel := context.WithTimeoutCause(context.Background(), 20*time.Millisecond, cause)
	defer cancel()

	_, err := p.SendCommand(ctx, "shot")
	assert.ErrorIs(t, err, cause)
}

func TestReferee_StreamPlayers(t *testing.T) {
	script := fullGame(t)

	alpha := startBot(t, scriptBot(script, game.Alpha))
	beta := startBot(t, scriptBot(script, game.Beta))

	ref := match.Referee{PlayerTimeout: 5 * time.Second}
	verdict := ref.Run(context.Background(), alpha, beta)

	assert.Equal(t, match.AlphaWon, verdict.Winner)
	assert.Equal(t, match.Ok, verdict.Reason)
	assert.Equal(t, 33, verdict.Steps)
}

func TestReferee_SilentStreamPlayer(t *testing.T) {
	script := fullGame(t)
	respond := scriptBot(script, game.Beta)

	beta := startBot(t, func(cmd string) string {
		if cmd == "shot" {
			return ""
		}
		return respond(cmd)
	})

	ref := match.Referee{PlayerTimeout: 50 * time.Millisecond}
	verdict := ref.Run(context.Background(), match.NewScriptPlayer(script, game.Alpha), beta)

	assert.Equal(t, match.AlphaWon, verdict.Winner)
	assert.Equal(t, match.Timeout, verdict.Reason)
	assert.Equal(t, 1, verdict.Steps)
}
