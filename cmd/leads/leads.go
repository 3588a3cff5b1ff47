// Package leads implements the leads command for inspecting and moving
// leads through their lifecycle.
package leads

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/domain"
)

// Command returns the leads command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Manage leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	cmd.AddCommand(stateCommand())
	return cmd
}

func listCommand() *cobra.Command {
	var state string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads, optionally filtered by state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Close()

			leads, err := deps.Leads.List(cmd.Context(), domain.LeadState(state), limit)
			if err != nil {
				return fmt.Errorf("failed to list leads: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "State", "Company", "Email", "Website", "IČO"})

			for _, lead := range leads {
				t.AppendRow(table.Row{
					lead.ID,
					lead.State,
					lead.CompanyName,
					lead.Email,
					lead.Website,
					lead.ICO,
				})
			}

			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by lead state (new, qualified, contacted, won, lost, discarded)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of leads to list")
	return cmd
}

func stateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state <lead-id> <new-state>",
		Short: "Move a lead to a new lifecycle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Close()

			id, state := args[0], domain.LeadState(args[1])
			if err := deps.Leads.UpdateState(cmd.Context(), id, state); err != nil {
				return fmt.Errorf("failed to update lead state: %w", err)
			}

			fmt.Printf("Lead %s moved to %s\n", id, state)
			return nil
		},
	}
}
