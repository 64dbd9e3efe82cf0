package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/config"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/database/postgres"
	"github.com/kozaktomas/photo-people/internal/logging"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/rs/zerolog"
)

// loadConfig reads the configuration and installs the global logger
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Setup(cfg.Log)
	return cfg, logger, nil
}

// initBackend connects to PostgreSQL and registers all repositories.
func initBackend(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	logger.Debug().Msg("connecting to PostgreSQL")
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	pool := postgres.GetGlobalPool()

	fileRepo := postgres.NewFileRepository(pool)
	faceRepo := postgres.NewFaceRepository(pool)
	clusterRepo := postgres.NewClusterRepository(pool)
	groupRepo := postgres.NewClusterGroupRepository(pool)
	ignoredRepo := postgres.NewIgnoredClusterRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)

	database.RegisterPostgresBackend(
		func() database.FileReader { return fileRepo },
		func() database.FaceIndexReader { return faceRepo },
		func() database.ClusterReader { return clusterRepo },
		func() database.ClusterGroupReader { return groupRepo },
		func() database.IgnoredClusterStore { return ignoredRepo },
	)
	database.RegisterSnapshotWriter(func() database.SnapshotWriter { return snapshotRepo })
	return nil
}

// setupEngine loads config, connects the backend and builds the people engine
func setupEngine(ctx context.Context) (*config.Config, *people.Engine, zerolog.Logger, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, nil, logger, err
	}
	if err := initBackend(cfg, logger); err != nil {
		return nil, nil, logger, err
	}
	src, err := people.SourcesFromBackend(ctx)
	if err != nil {
		return nil, nil, logger, err
	}
	engine := people.NewEngine(src, cfg.Policy, people.WithLogger(logger))
	return cfg, engine, logger, nil
}

// closeBackend closes the global pool if one was opened
func closeBackend() {
	if postgres.IsAvailable() {
		postgres.GetGlobalPool().Close()
	}
}
