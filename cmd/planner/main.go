package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-planner/internal/config"
	"github.com/andresuchdata/replenish-planner/internal/drive"
	"github.com/andresuchdata/replenish-planner/internal/repository/postgres"
	"github.com/andresuchdata/replenish-planner/internal/service"
	"github.com/andresuchdata/replenish-planner/internal/storage"
	"github.com/andresuchdata/replenish-planner/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "planner",
		Usage: "Suggest replenishment orders for every upcoming ordering platform",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json-logs",
				Usage:   "Write logs as JSON lines",
				EnvVars: []string{"LOG_JSON"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg := config.Load()
			json := cfg.Log.JSON
			if c.IsSet("json-logs") {
				json = c.Bool("json-logs")
			}
			level := cfg.Log.Level
			if c.IsSet("log-level") {
				level = c.String("log-level")
			}
			logger.Configure(os.Stderr, json)
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			runCommand(),
			historyCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newPlanService wires the optional archive, object storage and Drive
// collaborators enabled in cfg. The returned func releases them.
func newPlanService(ctx context.Context, cfg *config.Config) (*service.PlanService, func(), error) {
	deps := service.Dependencies{UploadPrefix: cfg.Storage.Prefix}
	cleanup := func() {}

	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("could not close database")
			}
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return nil, cleanup, err
		}
		deps.Repo = postgres.NewPlanRepository(db)
	}

	if cfg.Storage.Enabled {
		store, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, cleanup, err
		}
		deps.Store = store
	}

	if cfg.Drive.CredentialsJSON != "" {
		srv, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, cleanup, err
		}
		deps.Drive = drive.NewDownloader(srv)
	}

	return service.NewPlanService(deps), cleanup, nil
}
