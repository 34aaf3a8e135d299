package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/api"
	"github.com/saeidalz13/battleship-backend/db"
	"github.com/saeidalz13/battleship-backend/db/sqlc"
	"github.com/saeidalz13/battleship-backend/internal/config"
	"github.com/saeidalz13/battleship-backend/internal/logs"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

const shutdownTimeout = time.Second * 10

func main() {
	fs := pflag.NewFlagSet("battleship-server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		panic(err)
	}

	cfg.Log.Dev = cfg.Log.Dev || !cfg.IsProd()
	if err := logs.Init("battleship-server", cfg.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()

	rules := mb.DefaultRules()
	if cfg.RulesFile != "" {
		if rules, err = mb.LoadRules(cfg.RulesFile); err != nil {
			logs.Fatal("failed to load rules", zap.String("file", cfg.RulesFile), zap.Error(err))
		}
	}

	gmOpts := make([]mb.GameManagerOption, 0, 1)
	if cfg.Seed != 0 {
		gmOpts = append(gmOpts, mb.WithSeed(cfg.Seed))
	}

	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithRules(rules),
	}
	if cfg.DatabaseUrl != "" {
		psql := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
		defer psql.Close()

		dbManager := sqlc.NewDbManager(sqlc.New(psql), api.ServerIpNet())
		opts = append(opts, api.WithAnalytics(dbManager.Analytics))
	} else {
		logs.Warn("database_url is empty, analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager()
	server := api.NewServer(sessionManager, mb.NewBattleshipGameManager(gmOpts...), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionManager.CleanupPeriodically(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logs.Fatal("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logs.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logs.Error("shutdown failed", zap.Error(err))
		}
	}
}
