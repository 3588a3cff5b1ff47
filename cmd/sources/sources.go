// Package sources implements the sources command that lists the portal
// directory in a formatted table.
package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
)

// Command returns the sources command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage signal sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	return cmd
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered portal sources",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	counts, err := deps.Signals.CountBySource(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count signals: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Kind", "Enabled", "Signals"})

	for _, src := range deps.Registry.List() {
		t.AppendRow(table.Row{
			src.Name(),
			src.Kind(),
			deps.Registry.IsEnabled(src.Name()),
			counts[src.Name()],
		})
	}

	t.Render()
	return nil
}
