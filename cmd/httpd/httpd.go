// Package httpd implements the HTTP server command.
package httpd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/api"
	"github.com/jonesrussell/goleads/internal/logger"
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP API server",
		Long: `Serves the REST API for signals, leads, campaigns and harvest
triggers. Runs until interrupted.`,
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

	router := api.NewRouter(api.Deps{
		Registry:  deps.Registry,
		Signals:   deps.Signals,
		Search:    deps.Search,
		Leads:     deps.Leads,
		Campaigns: deps.Campaigns,
		Analyzer:  deps.Analyzer,
		Importer:  deps.Importer,
		Harvester: deps.Harvester,
		Outreach:  deps.Runner,
		Metrics:   deps.Gatherer,
	}, deps.Logger)

	server := api.NewServer(deps.Config.Server, router, deps.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}

	return <-errCh
}
