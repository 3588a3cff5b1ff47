// Package importer bulk-loads leads from Excel spreadsheets.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/extract"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

// Column indices for the lead spreadsheet (0-based).
const (
	colName    = 0 // Column A
	colWebsite = 1 // Column B
	colEmail   = 2 // Column C
	colPhone   = 3 // Column D
	colICO     = 4 // Column E

	headerRowIndex = 1 // Excel rows are 1-based, header is row 1
)

// LeadRow represents a parsed row from the spreadsheet.
type LeadRow struct {
	Row     int // Excel row number (for error reporting)
	Name    string
	Website string
	Email   string
	Phone   string
	ICO     string
}

// ImportError represents a validation error for a specific row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Report summarizes one import run.
type Report struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// LeadStore is the subset of the lead repository the importer needs.
type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) error
	ExistsByICO(ctx context.Context, ico string) (bool, error)
}

// ValidateRow validates a single row and returns an error message or empty
// string.
func ValidateRow(row LeadRow) string {
	if strings.TrimSpace(row.Name) == "" {
		return "name is required"
	}
	if row.Website != "" &&
		!strings.HasPrefix(row.Website, "http://") && !strings.HasPrefix(row.Website, "https://") {
		return "website must start with http:// or https://"
	}
	if row.Email != "" && !strings.Contains(row.Email, "@") {
		return "email is not a valid address"
	}
	if row.ICO != "" && !extract.ValidICO(row.ICO) {
		return "ico has an invalid checksum"
	}
	return ""
}

// ParseLeads reads the first sheet into lead rows. The header row is
// skipped; short rows are padded.
func ParseLeads(r io.Reader) ([]LeadRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var out []LeadRow
	for i, cells := range rows {
		rowNum := i + 1
		if rowNum == headerRowIndex {
			continue
		}

		cell := func(idx int) string {
			if idx < len(cells) {
				return strings.TrimSpace(cells[idx])
			}
			return ""
		}

		row := LeadRow{
			Row:     rowNum,
			Name:    cell(colName),
			Website: cell(colWebsite),
			Email:   cell(colEmail),
			Phone:   cell(colPhone),
			ICO:     cell(colICO),
		}
		if row == (LeadRow{Row: rowNum}) {
			continue
		}
		out = append(out, row)
	}

	return out, nil
}

// Importer creates leads from spreadsheet rows.
type Importer struct {
	leads  LeadStore
	logger logger.Logger
}

// New creates an importer.
func New(leads LeadStore, log logger.Logger) *Importer {
	return &Importer{leads: leads, logger: log}
}

// Import parses the spreadsheet and creates a lead per valid row. Rows
// with validation errors are reported, rows whose IČO already exists are
// skipped.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	rows, err := ParseLeads(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, row := range rows {
		if msg := ValidateRow(row); msg != "" {
			report.Errors = append(report.Errors, ImportError{Row: row.Row, Error: msg})
			continue
		}

		exists, existsErr := im.leads.ExistsByICO(ctx, row.ICO)
		if existsErr != nil {
			return report, fmt.Errorf("check row %d: %w", row.Row, existsErr)
		}
		if exists {
			report.Skipped++
			continue
		}

		website := row.Website
		if normalized, normErr := sources.NormalizeURL(website); normErr == nil {
			website = normalized
		}

		lead := &domain.Lead{
			State:       domain.LeadNew,
			CompanyName: row.Name,
			Website:     website,
			Email:       strings.ToLower(row.Email),
			Phone:       row.Phone,
			ICO:         row.ICO,
		}
		if createErr := im.leads.Create(ctx, lead); createErr != nil {
			return report, fmt.Errorf("create lead from row %d: %w", row.Row, createErr)
		}
		report.Created++
	}

	im.logger.Info("lead import finished",
		logger.Int("created", report.Created),
		logger.Int("skipped", report.Skipped),
		logger.Int("errors", len(report.Errors)),
	)
	return report, nil
}
