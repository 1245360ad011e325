package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/besobot/besitos/internal/api"
	"github.com/besobot/besitos/internal/infra/logging"
	"github.com/besobot/besitos/internal/infra/pgutils"
	pgeconomy "github.com/besobot/besitos/internal/repos/economy/postgres"
	economysvc "github.com/besobot/besitos/internal/services/economy"
	"github.com/besobot/besitos/internal/services/streak"
	"github.com/besobot/besitos/internal/services/wallet"
	"github.com/besobot/besitos/pkg/envconf"
	"github.com/besobot/besitos/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON("besitos-api", cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		return dbConns.Close()
	})

	// --- Services ---
	econStore := pgeconomy.New(dbConns)
	econSrv := economysvc.New(econStore)
	walletSrv := wallet.New(dbConns, econStore)
	streakSrv := streak.New(dbConns, walletSrv, econStore)
	sweeper := streak.NewSweeper(dbConns)

	// --- Expiration sweep ---
	sweepCtx, stopSweep := context.WithCancel(context.Background())

	sweepDone := make(chan struct{})

	go func() {
		defer close(sweepDone)

		sweeper.Run(sweepCtx, cfg.SweepInterval)
	}()

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Stop expiration sweeper")
		stopSweep()
		<-sweepDone

		return nil
	})

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.NewHandler(walletSrv, streakSrv, econSrv))

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
