package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/match"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n")
	fmt.Fprintf(flag.CommandLine.Output(), "  %s [flags] script...\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "  %s [flags] -alpha <command> -beta <command>\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(conf.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	alphaCmd := flag.String("alpha", "", "command running the alpha bot")
	betaCmd := flag.String("beta", "", "command running the beta bot")
	flag.DurationVar(&conf.PlayerTimeout, "player-timeout", conf.PlayerTimeout, "total thinking time per player, 0 for none")
	flag.DurationVar(&conf.GlobalTimeout, "global-timeout", conf.GlobalTimeout, "time limit per match, 0 for none")
	flag.IntVar(&conf.MaxSteps, "max-steps", conf.MaxSteps, "shot limit per match, 0 for none")
	flag.IntVar(&conf.Jobs, "jobs", conf.Jobs, "matches run in parallel")
	flag.Usage = usage
	flag.Parse()

	if conf.Jobs < 1 {
		log.Fatal().Int("jobs", conf.Jobs).Msg("-jobs must be at least 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := newRunner(conf, &log.Logger)
	out := json.NewEncoder(os.Stdout)

	var verdicts []match.Verdict

	switch {
	case *alphaCmd != "" || *betaCmd != "":
		if *alphaCmd == "" || *betaCmd == "" {
			log.Fatal().Msg("both -alpha and -beta must be given")
		}

		v, err := r.RunBots(ctx, *alphaCmd, *betaCmd)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run bots")
		}
		verdicts = append(verdicts, v)
	case flag.NArg() > 0:
		verdicts, err = r.RunScripts(ctx, flag.Args())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run scripts")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	for _, v := range verdicts {
		if err := out.Encode(v); err != nil {
			log.Fatal().Err(err).Msg("failed to write verdict")
		}
	}

	tally := r.registry.Tally()
	log.Info().
		Int("matches", r.registry.Len()).
		Int("alpha", tally[match.AlphaWon]).
		Int("beta", tally[match.BetaWon]).
		Int("tie", tally[match.Tie]).
		Msg("done")
}
