package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/match"
)

type runner struct {
	referee  *match.Referee
	registry *match.Registry
	jobs     *semaphore.Weighted
}

func newRunner(conf config.Config, logger *zerolog.Logger) *runner {
	return &runner{
		referee: &match.Referee{
			PlayerTimeout: conf.PlayerTimeout,
			GlobalTimeout: conf.GlobalTimeout,
			MaxSteps:      conf.MaxSteps,
			Logger:        logger,
		},
		registry: match.NewRegistry(0),
		jobs:     semaphore.NewWeighted(int64(conf.Jobs)),
	}
}

func loadScript(path string) (*match.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	script, err := match.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return script, nil
}

// Runs every script as a separate match. Verdicts are returned in the
// order of `paths`.
func (r *runner) RunScripts(ctx context.Context, paths []string) ([]match.Verdict, error) {
	verdicts := make([]match.Verdict, len(paths))
	eg, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		eg.Go(func() error {
			script, err := loadScript(path)
			if err != nil {
				return err
			}

			if err := r.jobs.Acquire(ctx, 1); err != nil {
				return err
			}
			defer r.jobs.Release(1)

			v := r.referee.Run(ctx, match.NewScriptPlayer(script, game.Alpha), match.NewScriptPlayer(script, game.Beta))
			v.Name = path

			r.registry.Add(v)
			verdicts[i] = v
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return verdicts, nil
}

type process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func startProcess(ctx context.Context, command string) (*match.StreamPlayer, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %q: %w", command, err)
	}

	return match.NewStreamPlayer(stdout, stdin, &process{cmd, stdin}), nil
}

// Closes the bot input and kills it, the match is already over.
func (p *process) Close() error {
	p.stdin.Close()
	p.cmd.Process.Kill()

	var exitErr *exec.ExitError
	if err := p.cmd.Wait(); err != nil && !errors.As(err, &exitErr) {
		return err
	}
	return nil
}

func (r *runner) RunBots(ctx context.Context, alphaCmd, betaCmd string) (match.Verdict, error) {
	if err := r.jobs.Acquire(ctx, 1); err != nil {
		return match.Verdict{}, err
	}
	defer r.jobs.Release(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	alpha, err := startProcess(ctx, alphaCmd)
	if err != nil {
		return match.Verdict{}, err
	}
	defer alpha.Close()

	beta, err := startProcess(ctx, betaCmd)
	if err != nil {
		return match.Verdict{}, err
	}
	defer beta.Close()

	v := r.referee.Run(ctx, alpha, beta)
	v.Name = fmt.Sprintf("%s vs %s", alphaCmd, betaCmd)
	r.registry.Add(v)

	return v, nil
}
