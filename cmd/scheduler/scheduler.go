// Package scheduler implements the scheduler command for recurring
// harvests.
package scheduler

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/scheduler"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run harvests on the configured cron schedules",
		Long: `Starts a scheduler that harvests each enabled portal on its cron
expression. Per-source expressions come from harvest.schedules.<name>,
falling back to harvest.schedule; each run is offset by a random delay
up to harvest.jitter. Runs until interrupted with Ctrl+C.`,
		RunE: run,
	}
}

func run(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if deps.Search.Enabled() {
		if err := deps.Search.EnsureIndex(ctx); err != nil {
			deps.Logger.Warn("failed to ensure search index", logger.Error(err))
		}
	}

	sched := scheduler.New(deps.Config.Harvest.Jitter, deps.Logger)

	for _, src := range deps.Registry.Enabled() {
		name := src.Name()
		spec := deps.Config.Harvest.ScheduleFor(name)

		err = sched.Add(ctx, name, spec, func(runCtx context.Context) {
			if _, runErr := deps.Harvester.RunSource(runCtx, name); runErr != nil {
				deps.Logger.Warn("scheduled harvest failed",
					logger.String("source", name),
					logger.Error(runErr),
				)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule source: %w", err)
		}

		deps.Logger.Info("Source scheduled",
			logger.String("source", name),
			logger.String("schedule", spec),
		)
	}

	sched.Start()

	<-ctx.Done()

	deps.Logger.Info("Shutting down scheduler")
	sched.Stop()
	return nil
}
