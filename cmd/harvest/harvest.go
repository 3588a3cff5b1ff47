// Package harvest implements the one-shot harvest command.
package harvest

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/logger"
)

// Command returns the harvest command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest [source...]",
		Short: "Harvest demand signals from the configured portals",
		Long: `Fetches current listings from every enabled portal, classifies them
and stores the new ones. Pass source names to harvest only those.`,
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	// Restrict the registry when explicit sources were requested
	if len(args) > 0 {
		requested := make(map[string]bool, len(args))
		for _, name := range args {
			if _, ok := deps.Registry.Get(name); !ok {
				return fmt.Errorf("unknown source: %s", name)
			}
			requested[name] = true
		}
		for _, src := range deps.Registry.List() {
			if !requested[src.Name()] {
				deps.Registry.Disable(src.Name())
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if deps.Search.Enabled() {
		if err := deps.Search.EnsureIndex(ctx); err != nil {
			deps.Logger.Warn("failed to ensure search index", logger.Error(err))
		}
	}

	report := deps.Harvester.Run(ctx)

	for name, sr := range report.PerSource {
		if sr.Err != nil {
			deps.Logger.Error("source failed",
				logger.String("source", name),
				logger.Error(sr.Err),
			)
			continue
		}
		deps.Logger.Info("source harvested",
			logger.String("source", name),
			logger.Int("fetched", sr.Fetched),
			logger.Int("new", sr.New),
			logger.Int("duplicate", sr.Duplicate),
		)
	}

	if failed := report.Failed(); len(failed) == len(report.PerSource) && len(failed) > 0 {
		return fmt.Errorf("all %d sources failed", len(failed))
	}

	return nil
}
