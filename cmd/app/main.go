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
	"time"
	_ "time/tzdata"

	"cafe/cmd"
	httpin "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/in/ws"
	"cafe/internal/adapters/out/notifier"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/adapters/out/rabbitmq"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/clock"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var envFile string

	root := &cobra.Command{
		Use:           "cafe",
		Short:         "Cafe order service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the live channel and the outbox relay",
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context(), envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			return migrate(envFile)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("cafe: %v", err)
	}
}

func migrate(envFile string) error {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	return postgres.Migrate(db)
}

func serve(ctx context.Context, envFile string) error {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	logger := cmd.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if cfg.DBAutoMigrate {
		if err = postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	hub := ws.NewHub(logger)
	broadcaster := notifier.NewBroadcaster(hub, cfg.EventBufferSize, logger)
	app := cmd.NewCompositionRoot(cfg, db, clock.System{}, broadcaster)

	var (
		publisher *rabbitmq.Publisher
		relayTo   ports.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		publisher, err = rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		relayTo = publisher
	} else {
		logger.Warn("RABBITMQ_URL is not set, order events stay in the outbox")
	}

	jobManager := app.CreateJobManager(relayTo, logger)

	e, err := httpin.NewRouter(app.CreateHTTPServer(logger), hub, logger)
	if err != nil {
		return err
	}

	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return broadcaster.Run(gctx)
	})
	g.Go(func() error {
		addr := ":" + cfg.HTTPPort
		logger.Info("Starting HTTP server", "addr", addr, "driver", cfg.DBDriver, "timezone", cfg.BusinessTimezone)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := e.Shutdown(shutdownCtx)
		hub.Close()
		jobManager.StopAll()
		if publisher != nil {
			publisher.Close()
		}
		return err
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
