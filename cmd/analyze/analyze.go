// Package analyze implements the analyze command that profiles a website
// without touching the database.
package analyze

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/analyzer"
)

// Command returns the analyze command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Crawl a company website and print its profile",
		Long: `Crawls the site's homepage and contact pages, extracting contacts,
detected technologies and e-shop hints. Prints the profile as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	deps, err := common.NewBaseDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	siteAnalyzer := analyzer.New(deps.NewFetcher(), deps.Logger)
	profile := siteAnalyzer.Analyze(cmd.Context(), args[0])

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(profile); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	return nil
}
