package sheets

import (
	"context"

	"moneytracker/internal/core"
)

// SummaryExport is everything a spreadsheet report shows for one user and period.
type SummaryExport struct {
	UserID       string
	StartDate    string
	EndDate      string
	Summary      core.Summary
	Transactions []core.Transaction
}

// SummaryExporter writes a report to an external spreadsheet and returns a
// reference to where it landed.
type SummaryExporter interface {
	ExportSummary(ctx context.Context, e SummaryExport) (ref string, err error)
}

// Period renders the export's date window for display.
func (e SummaryExport) Period() string {
	switch {
	case e.StartDate == "" && e.EndDate == "":
		return "all time"
	case e.StartDate == "":
		return "until " + e.EndDate
	case e.EndDate == "":
		return "from " + e.StartDate
	default:
		return e.StartDate + " to " + e.EndDate
	}
}
