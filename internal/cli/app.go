package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
	"moneytracker/internal/log"
	"moneytracker/internal/sheets"
)

const defaultUser = "default_user"

// App runs one moneytracker command. Out receives command output, Err
// receives error messages and usage.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Now    func() time.Time
	Logger *log.Logger

	OpenService  func(ctx context.Context) (*ledger.Service, error)
	OpenExporter func(ctx context.Context) (sheets.SummaryExporter, error)
}

type command struct {
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"add":           {"Add a new income or expense transaction", (*App).runAdd},
	"list":          {"List transactions for a user, optionally filtered by date range", (*App).runList},
	"summary":       {"Display basic statistics for a user's transactions", (*App).runSummary},
	"update":        {"Replace the fields of an existing transaction", (*App).runUpdate},
	"delete":        {"Delete a transaction", (*App).runDelete},
	"plot":          {"Save a category-wise spending chart for a user", (*App).runPlot},
	"report":        {"Show tabular summary report for a user", (*App).runReport},
	"report-pdf":    {"Export summary report as PDF for a user", (*App).runReportPDF},
	"export-sheets": {"Export summary report to Google Sheets", (*App).runExportSheets},
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks bad invocations, reported with exit code 2. reported is
// set when the flag package already printed the problem.
type usageError struct {
	msg      string
	reported bool
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Run executes the command named by args[0] and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Logger == nil {
		a.Logger = log.Nop()
	}
	if len(args) == 0 {
		a.usage()
		return exitUsage
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return exitOK
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(a.Err, "Error: unknown command %q\n\n", name)
		a.usage()
		return exitUsage
	}

	logger := a.Logger.WithComponent(log.ComponentCLI).With(log.FieldCommand, name)
	err := cmd.run(a, ctx, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		if !uerr.reported {
			fmt.Fprintf(a.Err, "Error: %v\n", err)
		}
		return exitUsage
	}

	if core.IsValidation(err) {
		logger.WarnContext(ctx, "Invalid input",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
	} else {
		logger.ErrorContext(ctx, "Command failed",
			log.FieldErrorKind, core.KindOf(err).String(),
			log.FieldError, err)
	}
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	return exitError
}

func (a *App) usage() {
	fmt.Fprintln(a.Err, "Usage: moneytracker <command> [flags]")
	fmt.Fprintln(a.Err)
	fmt.Fprintln(a.Err, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.Err, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(a.Err)
	fmt.Fprintln(a.Err, `Run "moneytracker <command> -h" for command flags.`)
}

// withService opens the ledger for one command and closes it on every path.
func (a *App) withService(ctx context.Context, fn func(*ledger.Service) error) error {
	if a.OpenService == nil {
		return errors.New("ledger service not configured")
	}
	svc, err := a.OpenService(ctx)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			a.Logger.WarnContext(ctx, "Failed to close ledger", log.FieldError, cerr)
		}
	}()
	return fn(svc)
}

func (a *App) reportLogger() *log.Logger {
	return a.Logger.WithComponent(log.ComponentReport)
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("moneytracker "+name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

// parse parses args and checks that every flag in required was given.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error(), reported: true}
	}
	if fs.NArg() > 0 {
		return usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, name := range required {
		if !set[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return usagef("missing required flag(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// amountFlag parses a decimal amount.
type amountFlag struct{ value decimal.Decimal }

func (f *amountFlag) String() string { return f.value.String() }

func (f *amountFlag) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a valid number", s)
	}
	f.value = d
	return nil
}

// kindFlag accepts only income or expense.
type kindFlag struct{ value core.Kind }

func (f *kindFlag) String() string { return f.value.String() }

func (f *kindFlag) Set(s string) error {
	k, err := core.ParseKind(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return fmt.Errorf("%q is not one of %s, %s", s, core.Income, core.Expense)
	}
	f.value = k
	return nil
}

// periodFlags registers --start-date, --end-date and optionally --month.
type periodFlags struct {
	start string
	end   string
	month string
}

func addPeriodFlags(fs *flag.FlagSet, withMonth bool) *periodFlags {
	p := &periodFlags{}
	fs.StringVar(&p.start, "start-date", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&p.end, "end-date", "", "End date (YYYY-MM-DD)")
	if withMonth {
		fs.StringVar(&p.month, "month", "", "Month (YYYY-MM), takes precedence over start/end-date")
	}
	return p
}

// resolve returns the effective bounds; a month replaces explicit dates
// and its end is clamped to today.
func (p *periodFlags) resolve(now time.Time) (start, end string, err error) {
	if p.month != "" {
		return core.MonthRange(p.month, now)
	}
	return p.start, p.end, nil
}
