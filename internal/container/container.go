// Package container wires the application's dependencies from configuration.
// Commands get everything they need from a Container instead of building
// collaborators themselves.
package container

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/mozzadell/cc-optimizer/internal/config"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/optimizer"
	"github.com/mozzadell/cc-optimizer/internal/profile"
	"github.com/mozzadell/cc-optimizer/internal/report"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	httpClient *http.Client
	optimizer  *optimizer.Client
	generator  *report.Generator
	profiles   *profile.Loader
}

// Option customizes how NewContainer builds dependencies.
type Option func(*Container)

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client built from the API configuration.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	// Logger first, everything else logs through it
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	}

	c.optimizer = optimizer.NewClient(c.httpClient, optimizer.Options{
		Endpoint:           cfg.API.URL,
		BreakerMaxFailures: cfg.API.Breaker.MaxFailures,
		BreakerOpenTimeout: time.Duration(cfg.API.Breaker.OpenSeconds) * time.Second,
	}, c.logger)

	delimiter, _ := utf8.DecodeRuneInString(cfg.Output.CSVDelimiter)
	if delimiter == utf8.RuneError {
		delimiter = ','
	}
	c.generator = report.NewGenerator(report.Options{
		Color:        cfg.Output.Color,
		CSVDelimiter: delimiter,
	}, c.logger)

	c.profiles = profile.NewLoader(c.logger)

	c.logger.Debug("Container initialized",
		logging.F(logging.FieldEndpoint, cfg.API.URL),
		logging.F(logging.FieldFormat, cfg.Output.Format))

	return c, nil
}

// GetLogger returns the container's logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetOptimizer returns the optimization service client.
func (c *Container) GetOptimizer() *optimizer.Client {
	return c.optimizer
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetProfileLoader returns the spending profile loader.
func (c *Container) GetProfileLoader() *profile.Loader {
	return c.profiles
}

// Close releases idle connections held by the HTTP client.
func (c *Container) Close() error {
	c.httpClient.CloseIdleConnections()
	c.logger.Debug("Container closed")
	return nil
}
