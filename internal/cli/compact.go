package cli

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

// compactResult summarizes one compacted board file.
type compactResult struct {
	input   string
	output  string
	layouts int
	items   int
	height  int
	cached  bool
}

// compactCommand creates the compact command.
func (c *CLI) compactCommand() *cobra.Command {
	var (
		output   string
		inPlace  bool
		noCache  bool
		redisURL string
		flags    boardFlags
	)

	cmd := &cobra.Command{
		Use:   "compact [board...]",
		Short: "Compact the layouts of one or more board files",
		Long: `Compact the layouts of one or more board files.

Every layout in the board (the base layout and each breakpoint layout) is
packed: tiles rise as far as they fit and overlaps are pushed down. Static
tiles never move.

Several boards are compacted concurrently. Results are cached locally, or in
Redis with --redis.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output needs exactly one input, got %d", len(args))
			}
			if output != "" && inPlace {
				return fmt.Errorf("--output and --in-place are mutually exclusive")
			}
			return c.runCompact(cmd, args, &flags, output, inPlace, noCache, redisURL)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.compact.<ext>)")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "overwrite the input files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "use a Redis cache (redis://host:port/db)")
	flags.register(cmd)

	return cmd
}

// runCompact compacts every input concurrently and prints a summary.
func (c *CLI) runCompact(cmd *cobra.Command, inputs []string, flags *boardFlags, output string, inPlace, noCache bool, redisURL string) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Compacting %d board(s)...", len(inputs)))
	spinner.Start()

	var finished atomic.Int32
	results := make([]compactResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range inputs {
		out := output
		switch {
		case inPlace:
			out = input
		case out == "":
			out = derivedPath(input, "compact")
		}
		g.Go(func() error {
			b, err := flags.loadBoard(cmd, input)
			if err != nil {
				return err
			}
			res, err := compactBoard(gctx, runner, b)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			if err := board.WriteFile(out, b); err != nil {
				return err
			}
			res.input, res.output = input, out
			results[i] = res
			spinner.SetMessage(fmt.Sprintf("Compacted %d/%d board(s)...", finished.Add(1), len(inputs)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		spinner.StopWithError("Compaction failed")
		return err
	}
	spinner.Stop()

	for _, res := range results {
		printSuccess("Compacted %s", res.input)
		printFile(res.output)
		printStats(res.layouts, res.items, res.height, res.cached)
	}
	prog.done(fmt.Sprintf("Compacted %d board(s)", len(inputs)))
	if len(results) == 1 {
		printNewline()
		printNextStep("Preview", appName+" show "+results[0].output)
	}
	return nil
}

// compactBoard compacts every non-empty layout of b in place. The result
// counts as cached only when every layout came from the cache.
func compactBoard(ctx context.Context, runner *engine.Runner, b *board.Board) (compactResult, error) {
	opts := b.Options()
	res := compactResult{cached: true}

	names := []string{""}
	for name := range b.Layouts {
		names = append(names, name)
	}
	slices.Sort(names[1:])

	for _, name := range names {
		l, err := b.Select(name)
		if err != nil {
			return res, err
		}
		if len(l) == 0 {
			continue
		}
		_, hit, err := runner.Compact(ctx, l, opts)
		if err != nil {
			return res, fmt.Errorf("%s: %w", layoutLabel(name), err)
		}
		res.layouts++
		res.items += len(l)
		res.height = max(res.height, l.Height())
		res.cached = res.cached && hit
	}
	if res.layouts == 0 {
		res.cached = false
	}
	return res, nil
}
