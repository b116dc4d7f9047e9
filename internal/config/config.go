package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultPlayerTimeout time.Duration = 2 * time.Minute
	DefaultGlobalTimeout time.Duration = 7 * time.Minute

	// Each player can fire at 100 distinct cells at most, so a match
	// that takes longer is stuck on repeated shots.
	DefaultMaxSteps = 4 * 100
)

type Config struct {
	PlayerTimeout time.Duration
	GlobalTimeout time.Duration
	MaxSteps      int
	Jobs          int
	LogLevel      zerolog.Level
}

func Default() Config {
	return Config{
		PlayerTimeout: DefaultPlayerTimeout,
		GlobalTimeout: DefaultGlobalTimeout,
		MaxSteps:      DefaultMaxSteps,
		Jobs:          runtime.NumCPU() * 2,
		LogLevel:      zerolog.InfoLevel,
	}
}

// Loads the given env files (`.env` if none), then reads the
// configuration from the environment. Missing files are skipped.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	conf := Default()

	durations := []struct {
		name string
		val  *time.Duration
	}{
		{"SEABATTLE_PLAYER_TIMEOUT", &conf.PlayerTimeout},
		{"SEABATTLE_GLOBAL_TIMEOUT", &conf.GlobalTimeout},
	}

	for _, d := range durations {
		str, ok := os.LookupEnv(d.name)
		if !ok {
			continue
		}

		v, err := time.ParseDuration(str)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.name, err)
		}
		if v < 0 {
			return Config{}, fmt.Errorf("%s: negative duration %s", d.name, v)
		}
		*d.val = v
	}

	ints := []struct {
		name string
		val  *int
		min  int
	}{
		{"SEABATTLE_MAX_STEPS", &conf.MaxSteps, 0},
		{"SEABATTLE_JOBS", &conf.Jobs, 1},
	}

	for _, i := range ints {
		str, ok := os.LookupEnv(i.name)
		if !ok {
			continue
		}

		v, err := strconv.Atoi(str)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", i.name, err)
		}
		if v < i.min {
			return Config{}, fmt.Errorf("%s: must be at least %d, got %d", i.name, i.min, v)
		}
		*i.val = v
	}

	if str, ok := os.LookupEnv("LOG_LEVEL"); ok {
		lvl, err := zerolog.ParseLevel(str)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		conf.LogLevel = lvl
	}

	return conf, nil
}
