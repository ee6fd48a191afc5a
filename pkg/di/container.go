// Package di provides dependency injection container
package di

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ssargent/bookdb/pkg/config"
	"github.com/ssargent/bookdb/pkg/logging"
	"github.com/ssargent/bookdb/pkg/metrics"
	"github.com/ssargent/bookdb/pkg/store"
)

// Container holds all the dependencies for the application
type Container struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	store   *store.Store
}

// NewContainer wires logger, metrics and store from cfg.
// Log output goes to logWriter; nil means stderr.
func NewContainer(cfg *config.Config, logWriter io.Writer) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := logging.New(logging.Options{
		Writer:  logWriter,
		Level:   cfg.Logging.Level,
		NoColor: cfg.Logging.NoColor,
	})
	m := metrics.NewMetrics()

	s, err := store.NewStore(
		store.StoreConfig{FilePath: cfg.DBPath, Fsync: cfg.Store.Fsync},
		store.WithLogger(logger),
		store.WithObserver(m),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Debug("container ready", "db_path", cfg.DBPath, "fsync", cfg.Store.Fsync)

	return &Container{
		config:  cfg,
		logger:  logger,
		metrics: m,
		store:   s,
	}, nil
}

// GetConfig returns the resolved configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the process logger
func (c *Container) GetLogger() *slog.Logger {
	return c.logger
}

// GetMetrics returns the metrics collectors
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetStore returns the book store
func (c *Container) GetStore() *store.Store {
	return c.store
}

// SetStore allows overriding the store (for testing)
func (c *Container) SetStore(s *store.Store) {
	c.store = s
}

// Close flushes metrics to the configured textfile, if any
func (c *Container) Close() error {
	path := c.config.Metrics.TextfilePath
	if path == "" {
		return nil
	}
	if err := c.metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	c.logger.Debug("metrics written", "path", path)
	return nil
}
