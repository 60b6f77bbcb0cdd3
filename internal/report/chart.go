package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"moneytracker/internal/core"
)

// ErrNoExpenses is returned when there is nothing to chart.
var ErrNoExpenses = errors.New("no expense transactions")

var barColor = drawing.Color{R: 135, G: 206, B: 235, A: 255}

const (
	barWidth   = 50
	barSpacing = 20
)

// ChartFileName is the default chart file for owner at time now. Path
// separators in owner are replaced so the file stays in the working directory.
func ChartFileName(owner string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, owner)
	return fmt.Sprintf("category_spending_%s_%s.png", safe, now.Format("20060102_150405"))
}

// WriteExpenseChart renders a PNG bar chart of spending per category.
func WriteExpenseChart(w io.Writer, owner string, expenses []core.CategoryAmount) error {
	if len(expenses) == 0 {
		return ErrNoExpenses
	}

	bars := make([]chart.Value, 0, len(expenses))
	top := 0.0
	for _, e := range expenses {
		v := e.Amount.InexactFloat64()
		top = max(top, v)
		bars = append(bars, chart.Value{
			Label: e.Category,
			Value: v,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Category-Wise Spending for User %s", owner),
		Width:      max(640, len(bars)*(barWidth+barSpacing)+200),
		Height:     600,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Name:  "Amount Spent",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SaveExpenseChart writes the chart to path.
func SaveExpenseChart(path, owner string, expenses []core.CategoryAmount) error {
	if len(expenses) == 0 {
		return ErrNoExpenses
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := WriteExpenseChart(f, owner, expenses); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}
