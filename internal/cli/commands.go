package cli

import (
	"context"
	"fmt"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
	"moneytracker/internal/log"
	"moneytracker/internal/report"
	"moneytracker/internal/sheets"
)

func (a *App) runAdd(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	var amount amountFlag
	var kind kindFlag
	fs.Var(&amount, "amount", "Transaction amount")
	fs.Var(&kind, "type", "Transaction type (income|expense)")
	category := fs.String("category", "", "Transaction category")
	date := fs.String("date", a.Now().Format(core.DateLayout), "Transaction date (YYYY-MM-DD)")
	owner := fs.String("user-id", defaultUser, "User ID")
	if err := parse(fs, args, "amount", "type", "category"); err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		id, err := svc.AddTransaction(ctx, core.Transaction{
			Amount:   amount.value,
			Kind:     kind.value,
			Category: *category,
			Date:     *date,
			Owner:    *owner,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Transaction added successfully with ID %d\n", id)
		return nil
	})
}

func (a *App) runList(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	owner := fs.String("user-id", defaultUser, "User ID")
	period := addPeriodFlags(fs, false)
	if err := parse(fs, args); err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		txs, err := svc.ListTransactions(ctx, *owner, period.start, period.end)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Fprintln(a.Out, report.NoTransactions(*owner))
			return nil
		}
		return report.WriteTransactions(a.Out, *owner, txs)
	})
}

func (a *App) runSummary(ctx context.Context, args []string) error {
	fs := a.newFlagSet("summary")
	owner := fs.String("user-id", defaultUser, "User ID")
	period := addPeriodFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	return a.summarize(ctx, *owner, period, func(s core.Summary) error {
		return report.WriteSummary(a.Out, *owner, s)
	})
}

func (a *App) runReport(ctx context.Context, args []string) error {
	fs := a.newFlagSet("report")
	owner := fs.String("user-id", "", "User ID")
	period := addPeriodFlags(fs, true)
	if err := parse(fs, args, "user-id"); err != nil {
		return err
	}
	return a.summarize(ctx, *owner, period, func(s core.Summary) error {
		return report.WriteSummaryTable(a.Out, *owner, s)
	})
}

func (a *App) runReportPDF(ctx context.Context, args []string) error {
	fs := a.newFlagSet("report-pdf")
	owner := fs.String("user-id", "", "User ID")
	period := addPeriodFlags(fs, false)
	output := fs.String("output", "", "Output PDF file path (default ./"+report.DefaultPDFName+")")
	if err := parse(fs, args, "user-id"); err != nil {
		return err
	}
	return a.summarize(ctx, *owner, period, func(s core.Summary) error {
		path, err := report.SavePDF(*output, s)
		if err != nil {
			return err
		}
		a.reportLogger().InfoContext(ctx, "Exported PDF report",
			log.FieldOperation, log.OpRender,
			log.FieldUserID, *owner,
			log.FieldOutput, path)
		fmt.Fprintf(a.Out, "PDF report exported to: %s\n", path)
		return nil
	})
}

// summarize resolves the period, aggregates and hands a non-empty summary to render.
func (a *App) summarize(ctx context.Context, owner string, period *periodFlags, render func(core.Summary) error) error {
	start, end, err := period.resolve(a.Now())
	if err != nil {
		return err
	}
	return a.withService(ctx, func(svc *ledger.Service) error {
		s, err := svc.Summary(ctx, owner, start, end)
		if err != nil {
			return err
		}
		if s.IsEmpty() {
			fmt.Fprintln(a.Out, report.NoTransactions(owner))
			return nil
		}
		return render(s)
	})
}

func (a *App) runUpdate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	id := fs.Int64("id", 0, "Transaction ID")
	owner := fs.String("user-id", "", "User ID")
	var amount amountFlag
	var kind kindFlag
	fs.Var(&amount, "amount", "Transaction amount")
	fs.Var(&kind, "type", "Transaction type (income|expense)")
	category := fs.String("category", "", "Transaction category")
	date := fs.String("date", "", "Transaction date (YYYY-MM-DD)")
	if err := parse(fs, args, "id", "user-id", "amount", "type", "category", "date"); err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		ok, err := svc.UpdateTransaction(ctx, *id, *owner, core.Transaction{
			Amount:   amount.value,
			Kind:     kind.value,
			Category: *category,
			Date:     *date,
		})
		if err != nil {
			return err
		}
		if !ok {
			return core.NotFoundError(log.OpUpdate, *id, *owner)
		}
		fmt.Fprintf(a.Out, "Transaction %d updated\n", *id)
		return nil
	})
}

func (a *App) runDelete(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	id := fs.Int64("id", 0, "Transaction ID")
	owner := fs.String("user-id", "", "User ID")
	if err := parse(fs, args, "id", "user-id"); err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		ok, err := svc.DeleteTransaction(ctx, *id, *owner)
		if err != nil {
			return err
		}
		if !ok {
			return core.NotFoundError(log.OpDelete, *id, *owner)
		}
		fmt.Fprintf(a.Out, "Transaction %d deleted\n", *id)
		return nil
	})
}

func (a *App) runPlot(ctx context.Context, args []string) error {
	fs := a.newFlagSet("plot")
	owner := fs.String("user-id", "", "User ID")
	period := addPeriodFlags(fs, false)
	output := fs.String("output", "", "Output PNG file (default category_spending_<user>_<timestamp>.png)")
	if err := parse(fs, args, "user-id"); err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		txs, err := svc.ListTransactions(ctx, *owner, period.start, period.end)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Fprintln(a.Out, report.NoTransactions(*owner))
			return nil
		}
		expenses := core.ExpensesByCategory(txs)
		if len(expenses) == 0 {
			fmt.Fprintf(a.Out, "No expense transactions found for user %s\n", *owner)
			return nil
		}

		path := *output
		if path == "" {
			path = report.ChartFileName(*owner, a.Now())
		}
		if err := report.SaveExpenseChart(path, *owner, expenses); err != nil {
			return err
		}
		a.reportLogger().InfoContext(ctx, "Saved category spending chart",
			log.FieldOperation, log.OpRender,
			log.FieldUserID, *owner,
			log.FieldOutput, path)
		fmt.Fprintf(a.Out, "Chart saved as %s\n", path)
		return nil
	})
}

func (a *App) runExportSheets(ctx context.Context, args []string) error {
	fs := a.newFlagSet("export-sheets")
	owner := fs.String("user-id", "", "User ID")
	period := addPeriodFlags(fs, true)
	if err := parse(fs, args, "user-id"); err != nil {
		return err
	}
	if a.OpenExporter == nil {
		return fmt.Errorf("google sheets export is not configured: set GOOGLE_SPREADSHEET_ID")
	}

	start, end, err := period.resolve(a.Now())
	if err != nil {
		return err
	}

	return a.withService(ctx, func(svc *ledger.Service) error {
		txs, err := svc.ListTransactions(ctx, *owner, start, end)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Fprintln(a.Out, report.NoTransactions(*owner))
			return nil
		}

		exporter, err := a.OpenExporter(ctx)
		if err != nil {
			return err
		}
		ref, err := exporter.ExportSummary(ctx, sheets.SummaryExport{
			UserID:       *owner,
			StartDate:    start,
			EndDate:      end,
			Summary:      core.Summarize(txs),
			Transactions: txs,
		})
		if err != nil {
			return fmt.Errorf("export to google sheets: %w", err)
		}
		a.reportLogger().InfoContext(ctx, "Exported summary",
			log.FieldOperation, log.OpExport,
			log.FieldUserID, *owner,
			log.FieldOutput, ref)
		fmt.Fprintf(a.Out, "Summary exported to %s\n", ref)
		return nil
	})
}
