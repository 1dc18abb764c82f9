package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlenz/rosette/internal/api"
	"github.com/mlenz/rosette/pkg/cache"
	"github.com/mlenz/rosette/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rosette HTTP API",
		Long: `Run the rosette HTTP API.

The server exposes the layout and render pipeline over HTTP:

  POST /v1/layout  compute a layout from a document
  POST /v1/render  render a document to one or more formats
  POST /v1/stats   circular statistics for a document
  GET  /healthz    liveness probe

By default results are cached in the local file cache. Point --redis at a
Redis instance to share the cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache backend and runs the API server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	if redisURL == "" {
		redisURL = c.Config.RedisURL
	}

	var (
		backend cache.Cache
		err     error
	)
	switch {
	case noCache:
		backend = cache.NewNullCache()
	case redisURL != "":
		backend, err = cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "url", redisURL)
	default:
		backend, err = c.newCache(ctx, false)
		if err != nil {
			return fmt.Errorf("initialize cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(backend, nil, c.Logger)
	defer runner.Close()

	server := api.NewServer(runner, c.Logger)
	return server.ListenAndServe(ctx, addr)
}
