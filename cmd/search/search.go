// Package search implements the search command for querying indexed
// signals.
package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
)

const defaultSize = 20

// Command returns the search command.
func Command() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Full-text search over indexed signals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, strings.Join(args, " "), size)
		},
	}

	cmd.Flags().IntVar(&size, "size", defaultSize, "maximum number of results")
	return cmd
}

func run(cmd *cobra.Command, query string, size int) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	if !deps.Search.Enabled() {
		return fmt.Errorf("search is disabled; enable elasticsearch in the config")
	}

	signals, err := deps.Search.SearchSignals(cmd.Context(), query, size)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(signals) == 0 {
		fmt.Println("No signals matched.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Type", "Industry", "Title", "URL"})

	for _, sig := range signals {
		t.AppendRow(table.Row{
			sig.SourceName,
			sig.Type,
			sig.Industry,
			sig.Title,
			sig.URL,
		})
	}

	t.Render()
	return nil
}
