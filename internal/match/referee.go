package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/board"
	"github.com/mrsobakin/seabattle/internal/utils"
)

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrInvalidShot      = errors.New("invalid shot")
)

var (
	errTimeoutGlobal = errors.New("global timeout")
	errTimeoutAlpha  = errors.New("alpha timeout")
	errTimeoutBeta   = errors.New("beta timeout")
	errPlayerWon     = errors.New("player won")
	errStepLimit     = errors.New("step limit reached")
)

func timeoutCause(p game.Player) error {
	if p == game.Alpha {
		return errTimeoutAlpha
	}
	return errTimeoutBeta
}

type roleError struct {
	Role game.Player
	Err  error
}

func failedAs(role game.Player, err error) *roleError {
	return &roleError{
		role,
		err,
	}
}

func wonAs(role game.Player) *roleError {
	return &roleError{
		role,
		errPlayerWon,
	}
}

// Referee runs matches between two players.
//
// Zero durations and a zero step limit mean no limit.
type Referee struct {
	PlayerTimeout time.Duration
	GlobalTimeout time.Duration
	MaxSteps      int
	Logger        *zerolog.Logger
}

type round struct {
	players [2]Player
	clocks  [2]*utils.Stopwatch
	game    *game.Game
	steps   int
	log     zerolog.Logger
}

func (j *Referee) newRound(alpha, beta Player, log zerolog.Logger) *round {
	r := &round{
		players: [2]Player{alpha, beta},
		game:    game.New(),
		log:     log,
	}

	if j.PlayerTimeout > 0 {
		r.clocks[game.Alpha] = utils.NewStopwatch(j.PlayerTimeout)
		r.clocks[game.Beta] = utils.NewStopwatch(j.PlayerTimeout)
	}

	return r
}

// Calls `fn` on behalf of player `p`, charging the time to its clock.
func (r *round) call(ctx context.Context, p game.Player, fn func(context.Context) error) error {
	if clock := r.clocks[p]; clock != nil {
		var stop func()
		ctx, stop = clock.Lap(ctx, timeoutCause(p))
		defer stop()
	}

	err := fn(ctx)
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	return err
}

// Time player `p` has spent so far. Zero without a time budget.
func (r *round) thinkingTime(p game.Player) time.Duration {
	if clock := r.clocks[p]; clock != nil {
		return clock.Elapsed()
	}
	return 0
}

func (r *round) PlaceFleet(ctx context.Context, p game.Player) *roleError {
	player := r.players[p]

	for slot, size := range game.ShipSizes {
		class := game.ShipClass(slot)

		var ship game.Ship
		err := r.call(ctx, p, func(ctx context.Context) (err error) {
			ship, err = player.PlaceShip(ctx, slot, size)
			return
		})
		if err != nil {
			return failedAs(p, fmt.Errorf("failed to place %s: %w", class, err))
		}

		if ship.Size != size {
			return failedAs(p, fmt.Errorf("%w: %s must have size %d, got %d", ErrInvalidPlacement, class, size, ship.Size))
		}

		b, err := ship.Board()
		if err != nil {
			return failedAs(p, fmt.Errorf("%w: %s: %w", ErrInvalidPlacement, class, err))
		}

		if err := r.game.AddShip(p, b, slot); err != nil {
			return failedAs(p, fmt.Errorf("%w: %s at %q: %w", ErrInvalidPlacement, class, ship, err))
		}

		r.log.Debug().Stringer("player", p).Str("class", class).Stringer("ship", ship).Msg("ship placed")
	}

	return nil
}

func isValidShot(x, y int) bool {
	return x >= 0 && y >= 0 && x < board.Size && y < board.Size
}

func (r *round) Shoot(ctx context.Context, shooter game.Player) *roleError {
	player := r.players[shooter]

	var x, y int
	err := r.call(ctx, shooter, func(ctx context.Context) (err error) {
		x, y, err = player.Shot(ctx)
		return
	})
	if err != nil {
		return failedAs(shooter, fmt.Errorf("failed to request shot coordinates: %w", err))
	}

	if !isValidShot(x, y) {
		return failedAs(shooter, fmt.Errorf("%w: position %d %d", ErrInvalidShot, x, y))
	}

	result := r.game.Shoot(shooter, board.At(x, y))
	r.steps++

	r.log.Debug().
		Stringer("player", shooter).
		Int("x", x).
		Int("y", y).
		Stringer("result", result).
		Int("step", r.steps).
		Msg("shot")

	err = r.call(ctx, shooter, func(ctx context.Context) error {
		return player.SetResult(ctx, result)
	})
	if err != nil {
		return failedAs(shooter, fmt.Errorf("failed to set shot result: %w", err))
	}

	if r.game.Won(shooter) {
		return wonAs(shooter)
	}

	return nil
}

// Plays the round until somebody wins or fails. Never returns nil.
func (r *round) Judge(ctx context.Context, maxSteps int) *roleError {
	if err := r.PlaceFleet(ctx, game.Alpha); err != nil {
		return err
	}

	if err := r.PlaceFleet(ctx, game.Beta); err != nil {
		return err
	}

	currentPlayer := game.Alpha
	for {
		if maxSteps > 0 && r.steps >= maxSteps {
			return failedAs(currentPlayer, errStepLimit)
		}

		if err := r.Shoot(ctx, currentPlayer); err != nil {
			return err
		}

		currentPlayer = currentPlayer.Other()
	}
}

func (j *Referee) logger() zerolog.Logger {
	if j.Logger == nil {
		return zerolog.Nop()
	}
	return *j.Logger
}

// Runs a match. Alpha places first and shoots first; turns strictly
// alternate.
//
// As per our rules:
//   - If player sinks the whole opposing fleet, he wins.
//   - If player errors out, times out or breaks the rules, the other
//     player wins.
//   - If the global timeout or the step limit is hit, it's a tie.
func (j *Referee) Run(ctx context.Context, alpha, beta Player) Verdict {
	id := uuid.New()
	log := j.logger().With().Stringer("match", id).Logger()

	if j.GlobalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, j.GlobalTimeout, errTimeoutGlobal)
		defer cancel()
	}

	round := j.newRound(alpha, beta, log)
	result := round.Judge(ctx, j.MaxSteps)

	verdict := Verdict{
		ID:    id,
		Steps: round.steps,
	}

	loser := func(r Reason) Reason {
		verdict.Winner = ResultFromWinner(result.Role.Other())
		return r
	}

	verdict.Reason = func() Reason {
		switch {
		case errors.Is(result.Err, errPlayerWon):
			verdict.Winner = ResultFromWinner(result.Role)
			return Ok
		case errors.Is(result.Err, errStepLimit):
			return StepLimit
		case errors.Is(result.Err, errTimeoutGlobal):
			return GlobalTimeout
		case errors.Is(result.Err, errTimeoutAlpha), errors.Is(result.Err, errTimeoutBeta):
			return loser(Timeout)
		case errors.Is(result.Err, ErrInvalidPlacement):
			return loser(InvalidPlacement)
		case errors.Is(result.Err, ErrInvalidShot):
			return loser(InvalidShot)
		default:
			return loser(RuntimeError)
		}
	}()

	if verdict.Reason != Ok {
		verdict.Details = fmt.Sprintf("%s: %s", result.Role, result.Err)
	}

	log.Info().
		Stringer("winner", verdict.Winner).
		Stringer("reason", verdict.Reason).
		Int("steps", verdict.Steps).
		Dur("alpha_time", round.thinkingTime(game.Alpha)).
		Dur("beta_time", round.thinkingTime(game.Beta)).
		Str("details", verdict.Details).
		Msg("match finished")

	return verdict
}
