package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"moneytracker/internal/core"
)

// DefaultPDFName is the file written in the working directory when no
// output path is given.
const DefaultPDFName = "transaction_summary.pdf"

const (
	pdfMargin     = 50.0
	pdfLineHeight = 20.0
)

// WritePDF renders s as a Letter sized PDF document.
func WritePDF(w io.Writer, s core.Summary) error {
	pdf := buildPDF(s)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// SavePDF writes the report to path, or to DefaultPDFName in the working
// directory when path is empty, and returns the path written.
func SavePDF(path string, s core.Summary) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(wd, DefaultPDFName)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pdf file: %w", err)
	}
	if err := WritePDF(f, s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close pdf file: %w", err)
	}
	return path, nil
}

func buildPDF(s core.Summary) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Transaction Summary Report", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, height := pdf.GetPageSize()

	y := pdfMargin
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMargin, y, "Transaction Summary Report")
	y += 2 * pdfLineHeight

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Total Transactions: %d", s.Count),
		"Total Income: " + Money(s.TotalIncome),
		"Total Expense: " + Money(s.TotalExpense),
		"Balance: " + Money(s.Balance),
	} {
		pdf.Text(pdfMargin, y, line)
		y += pdfLineHeight
	}
	y += pdfLineHeight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pdfMargin, y, "Category Breakdown:")
	y += pdfLineHeight

	pdf.SetFont("Helvetica", "", 12)
	for _, c := range s.CategoryTotals {
		pdf.Text(pdfMargin+10, y, tr(c.Category+": "+Money(c.Amount)))
		y += pdfLineHeight
		if y > height-pdfMargin {
			pdf.AddPage()
			y = pdfMargin
		}
	}
	return pdf
}
