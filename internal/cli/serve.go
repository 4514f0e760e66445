package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/internal/server"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		redisURL string
		maxBody  int64
		defaults engine.Options
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

Endpoints:
  POST /v1/compact     compact a layout
  POST /v1/move        move a tile as a user would
  POST /v1/events      apply a drag or resize event
  POST /v1/responsive  resolve the layout for a viewport
  GET  /healthz        liveness check

The flags below set the default engine options. Each request may override
them in its "options" object. Compaction results are cached locally, or in
Redis with --redis so several instances can share them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := defaults.Validate(); err != nil {
				return err
			}
			defaults.Logger = nil

			store, err := c.newCache(ctx, noCache, redisURL)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			defer store.Close()

			printKeyValue("Address", StyleNumber.Render(addr))
			printKeyValue("Cache", cacheLabel(noCache, redisURL))
			printKeyValue("Columns", fmt.Sprint(defaults.Cols))

			srv := server.New(server.Config{
				Cache:        store,
				Logger:       c.Logger,
				Defaults:     defaults,
				MaxBodyBytes: maxBody,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "use a Redis cache (redis://host:port/db)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().IntVar(&defaults.Cols, "cols", engine.DefaultCols, "default number of grid columns")
	cmd.Flags().BoolVar(&defaults.VerticalCompact, "vertical-compact", true, "compact vertically by default")
	cmd.Flags().BoolVar(&defaults.PreventCollision, "prevent-collision", false, "reject colliding edits by default")

	return cmd
}

// cacheLabel describes the cache backend newCache picks.
func cacheLabel(noCache bool, redisURL string) string {
	switch {
	case noCache:
		return "disabled"
	case redisURL != "":
		return "redis"
	}
	return "file"
}
