package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/console"
	"github.com/saeidalz13/battleship-backend/internal/config"
	"github.com/saeidalz13/battleship-backend/internal/logs"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("battleship", pflag.ExitOnError)
	config.RegisterFlags(fs)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		return err
	}

	// log lines would tear up the board
	cfg.Log.Quiet = true
	if err := logs.Init("battleship-console", cfg.Log); err != nil {
		return err
	}
	defer logs.Sync()

	rules := mb.DefaultRules()
	if cfg.RulesFile != "" {
		if rules, err = mb.LoadRules(cfg.RulesFile); err != nil {
			return err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logs.Info("console started", zap.Int64("seed", seed), zap.Int("gridSize", rules.GridSize))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := console.New(os.Stdin, os.Stdout,
		console.WithRules(rules),
		console.WithRand(rand.New(rand.NewSource(seed))),
	)
	err = c.Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Println()
		return nil
	}
	return err
}
