package match

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mrsobakin/seabattle/internal/game"
)

var ErrPlayerGone = errors.New("player closed its output")

// StreamPlayer talks to a bot over a line protocol. Every command is a
// single line and is answered with a single line:
//
//	place <slot> <size>         -> <size> <h|v> <x> <y>
//	shot                        -> <x> <y>
//	set result <miss|hit|kill>  -> ok
type StreamPlayer struct {
	w      io.Writer
	closer io.Closer
	lines  <-chan string

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{} // closed when the reader exits

	mu      sync.Mutex
	readErr error
}

// Creates a player reading responses from `r` and writing commands to
// `w`. `closer`, if not nil, is called on `Close`.
func NewStreamPlayer(r io.Reader, w io.Writer, closer io.Closer) *StreamPlayer {
	lines := make(chan string)

	p := &StreamPlayer{
		w:       w,
		closer:  closer,
		lines:   lines,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go func() {
		defer close(p.stopped)
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanLines)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-p.done:
				return
			}
		}

		p.mu.Lock()
		p.readErr = scanner.Err()
		p.mu.Unlock()
	}()

	return p
}

// Sends a command and receives a response for it.
func (p *StreamPlayer) SendCommand(ctx context.Context, cmd string) (string, error) {
	select {
	case <-p.done:
		return "", ErrPlayerGone
	default:
	}

	if _, err := io.WriteString(p.w, cmd+"\n"); err != nil {
		return "", err
	}

	select {
	case line, ok := <-p.lines:
		if ok {
			return line, nil
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.readErr != nil {
			return "", fmt.Errorf("%w: %w", ErrPlayerGone, p.readErr)
		}
		return "", ErrPlayerGone
	case <-ctx.Done():
		return "", context.Cause(ctx)
	}
}

func (p *StreamPlayer) Sendf(ctx context.Context, format string, a ...any) (string, error) {
	return p.SendCommand(ctx, fmt.Sprintf(format, a...))
}

func (p *StreamPlayer) SendScanf(ctx context.Context, cmd string, format string, a ...any) error {
	resp, err := p.SendCommand(ctx, cmd)
	if err != nil {
		return err
	}

	n, err := fmt.Sscanf(resp, format, a...)
	if err != nil {
		return fmt.Errorf("response %q does not match format: %w", resp, err)
	}
	if n != len(a) {
		return fmt.Errorf("response %q does not match format", resp)
	}

	return nil
}

func (p *StreamPlayer) expectOk(ctx context.Context, format string, a ...any) error {
	resp, err := p.Sendf(ctx, format, a...)
	if err != nil {
		return err
	}
	if resp != "ok" {
		return fmt.Errorf("command %q returned %q", fmt.Sprintf(format, a...), resp)
	}
	return nil
}

func (p *StreamPlayer) PlaceShip(ctx context.Context, slot, size int) (game.Ship, error) {
	resp, err := p.Sendf(ctx, "place %d %d", slot, size)
	if err != nil {
		return game.Ship{}, err
	}

	ship, err := ParseShip(resp)
	if err != nil {
		return game.Ship{}, fmt.Errorf("%w: %w", ErrInvalidPlacement, err)
	}

	return ship, nil
}

func (p *StreamPlayer) Shot(ctx context.Context) (x, y int, err error) {
	err = p.SendScanf(ctx, "shot", "%d %d", &x, &y)
	return
}

func (p *StreamPlayer) SetResult(ctx context.Context, result game.ShotResult) error {
	return p.expectOk(ctx, "set result %s", result)
}

// Stops reading responses and calls the closer. Lines the bot writes
// afterwards are dropped.
func (p *StreamPlayer) Close() (err error) {
	p.closeOnce.Do(func() {
		close(p.done)
		if p.closer != nil {
			err = p.closer.Close()
		}
	})
	return
}
