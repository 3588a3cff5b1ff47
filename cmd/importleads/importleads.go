// Package importleads implements the import command for loading leads
// from an Excel workbook.
package importleads

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goleads/cmd/common"
	"github.com/jonesrussell/goleads/internal/logger"
)

// Command returns the import command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import leads from an Excel workbook",
		Long: `Reads leads from the first sheet of an .xlsx workbook. Expected
columns: company name, website, email, phone and IČO, with a header row.
Rows with a known IČO are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	report, err := deps.Importer.Import(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	deps.Logger.Info("Import finished",
		logger.String("file", args[0]),
		logger.Int("created", report.Created),
		logger.Int("skipped", report.Skipped),
		logger.Int("errors", len(report.Errors)),
	)

	for _, importErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "row %d: %s\n", importErr.Row, importErr.Error)
	}

	fmt.Printf("Imported %d leads, skipped %d, %d rows with errors\n",
		report.Created, report.Skipped, len(report.Errors))
	return nil
}
