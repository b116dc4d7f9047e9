package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/match"
)

const fullGame = "../../internal/match/testdata/full_game.txt"

func testRunner(jobs int) *runner {
	conf := config.Default()
	conf.PlayerTimeout = time.Second
	conf.GlobalTimeout = 10 * time.Second
	conf.Jobs = jobs

	logger := zerolog.Nop()
	return newRunner(conf, &logger)
}

func TestRunScripts(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("alpha ship 5 h 0 0\n"), 0o644))

	r := testRunner(2)
	paths := []string{fullGame, short, fullGame, fullGame}

	verdicts, err := r.RunScripts(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, verdicts, len(paths))

	for i, v := range verdicts {
		assert.Equal(t, paths[i], v.Name)

		got, ok := r.registry.Get(v.ID)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}

	// Alpha's script runs out of ships on the second slot.
	assert.Equal(t, match.BetaWon, verdicts[1].Winner)
	assert.Equal(t, match.RuntimeError, verdicts[1].Reason)

	assert.Equal(t, map[match.Result]int{
		match.AlphaWon: 3,
		match.BetaWon:  1,
	}, r.registry.Tally())
}

func TestRunScripts_BadScript(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("gamma shot 1 1\n"), 0o644))

	r := testRunner(1)

	_, err := r.RunScripts(context.Background(), []string{fullGame, bad})
	assert.ErrorContains(t, err, bad)

	_, err = r.RunScripts(context.Background(), []string{filepath.Join(dir, "missing.txt")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStartProcess_Empty(t *testing.T) {
	_, err := startProcess(context.Background(), "   ")
	assert.Error(t, err)
}

func TestRunBots_SingleJob(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat is not available")
	}

	r := testRunner(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// cat echoes every command back, which is never a valid ship.
	v, err := r.RunBots(ctx, "cat", "cat")
	require.NoError(t, err)

	assert.Equal(t, match.BetaWon, v.Winner)
	assert.Equal(t, match.InvalidPlacement, v.Reason)
	assert.Equal(t, "cat vs cat", v.Name)
	assert.Equal(t, 1, r.registry.Len())

	// The job slot is released once the match is over.
	require.True(t, r.jobs.TryAcquire(1))
	r.jobs.Release(1)
}
