package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"

	"wealth/internal/cache"
	"wealth/internal/config"
	"wealth/internal/core"
	"wealth/internal/export"
	"wealth/internal/log"
	"wealth/internal/market"
	gsheet "wealth/internal/sheets/google"
	"wealth/internal/storage"
	"wealth/internal/worker"
)

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func openRepo() (*storage.SQLiteRepository, error) {
	return storage.NewSQLiteRepository(config.Load().SQLiteDBPath)
}

func yahooClient() *market.YahooClient {
	return market.NewYahooClient(config.Load().YahooBaseURL, &http.Client{Timeout: 8 * time.Second})
}

type migrateCmd struct{}

func (*migrateCmd) Name() string             { return "migrate" }
func (*migrateCmd) Synopsis() string         { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string            { return "wealthctl migrate\n" }
func (*migrateCmd) SetFlags(_ *flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dbPath := config.Load().SQLiteDBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fail(err)
	}
	if err := storage.RunMigrations(dbPath); err != nil {
		return fail(err)
	}
	version, dirty, err := storage.MigrationVersion(dbPath)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s at schema version %d (dirty=%v)\n", dbPath, version, dirty)
	return subcommands.ExitSuccess
}

type quoteCmd struct{}

func (*quoteCmd) Name() string             { return "quote" }
func (*quoteCmd) Synopsis() string         { return "print the current Yahoo quote of a symbol" }
func (*quoteCmd) Usage() string            { return "wealthctl quote <symbol>\n" }
func (*quoteCmd) SetFlags(_ *flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: quote takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	q, err := yahooClient().Quote(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	return printJSON(q)
}

type metalCmd struct{}

func (*metalCmd) Name() string             { return "metal" }
func (*metalCmd) Synopsis() string         { return "print the TRY per gram price of gold or silver" }
func (*metalCmd) Usage() string            { return "wealthctl metal gold|silver\n" }
func (*metalCmd) SetFlags(_ *flag.FlagSet) {}

func (*metalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: metal takes gold or silver")
		return subcommands.ExitUsageError
	}
	m := core.Metal(strings.ToUpper(f.Arg(0)))
	if m != core.Gold && m != core.Silver {
		fmt.Fprintf(os.Stderr, "Error: unknown metal %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	gw := market.NewMetalsGateway(yahooClient(), cache.NewTTLCache[market.MetalPrice](time.Minute, nil))
	price, err := gw.Price(ctx, m)
	if err != nil {
		return fail(err)
	}
	return printJSON(price)
}

type exportCmd struct {
	user string
	out  string
	from string
	to   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a user's incomes and expenses to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `wealthctl export -user <id> [-out wealth.xlsx] [-from YYYY-MM-DD] [-to YYYY-MM-DD]
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Owner whose records are exported.")
	f.StringVar(&c.out, "out", "wealth.xlsx", "Output workbook path.")
	f.StringVar(&c.from, "from", "", "Earliest transaction date to include.")
	f.StringVar(&c.to, "to", "", "Latest transaction date to include.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		return subcommands.ExitUsageError
	}
	from, to, err := parseRange(c.from, c.to)
	if err != nil {
		return fail(err)
	}

	repo, err := openRepo()
	if err != nil {
		return fail(err)
	}
	defer repo.Close()

	incomes, err := repo.ListIncomes(ctx, c.user, core.IncomeFilter{From: from, To: to})
	if err != nil {
		return fail(err)
	}
	expenses, err := repo.ListExpenses(ctx, c.user, core.ExpenseFilter{From: from, To: to})
	if err != nil {
		return fail(err)
	}

	file, err := os.Create(c.out)
	if err != nil {
		return fail(err)
	}
	if err := export.Write(file, incomes, expenses); err != nil {
		file.Close()
		return fail(err)
	}
	if err := file.Close(); err != nil {
		return fail(err)
	}
	fmt.Printf("Wrote %d incomes and %d expenses to %s\n", len(incomes), len(expenses), c.out)
	return subcommands.ExitSuccess
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = core.ParseDate(from); err != nil {
			return start, end, err
		}
	}
	if to != "" {
		if end, err = core.ParseDate(to); err != nil {
			return start, end, err
		}
	}
	return start, end, nil
}

type paymentCmd struct {
	kind     string
	user     string
	holding  string
	amount   string
	currency string
	date     string
	notes    string
}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "record a dividend, distribution or coupon payment" }
func (*paymentCmd) Usage() string {
	return `wealthctl payment -kind dividends|distributions|coupon_payments -user <id> -holding <id> -amount <n> [-currency TRY] [-date YYYY-MM-DD] [-notes text]
`
}

func (c *paymentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", string(storage.Dividends), "Payment table: dividends, distributions or coupon_payments.")
	f.StringVar(&c.user, "user", "", "Owner of the holding.")
	f.StringVar(&c.holding, "holding", "", "Stock, ETF or eurobond id.")
	f.StringVar(&c.amount, "amount", "", "Amount received.")
	f.StringVar(&c.currency, "currency", string(core.DefaultCurrency), "Currency of the amount.")
	f.StringVar(&c.date, "date", "", "Payment date. Defaults to today.")
	f.StringVar(&c.notes, "notes", "", "Optional note.")
}

func (c *paymentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" || c.holding == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -user, -holding and -amount are required")
		return subcommands.ExitUsageError
	}
	p, err := c.payment(time.Now())
	if err != nil {
		return fail(err)
	}

	repo, err := openRepo()
	if err != nil {
		return fail(err)
	}
	defer repo.Close()

	saved, err := repo.AddPayment(ctx, storage.PaymentKind(c.kind), c.user, c.holding, p)
	if err != nil {
		return fail(err)
	}
	return printJSON(saved)
}

// payment builds the record from the flags; the date defaults to now's UTC day.
func (c *paymentCmd) payment(now time.Time) (core.Payment, error) {
	amount, err := core.ParseAmount(c.amount)
	if err != nil {
		return core.Payment{}, err
	}
	if amount.IsNegative() {
		return core.Payment{}, fmt.Errorf("%w: must not be negative", core.ErrInvalidAmount)
	}
	currency := core.Currency(strings.ToUpper(c.currency))
	if err := currency.Validate(); err != nil {
		return core.Payment{}, err
	}
	paid := now.UTC().Truncate(24 * time.Hour)
	if c.date != "" {
		if paid, err = core.ParseDate(c.date); err != nil {
			return core.Payment{}, err
		}
	}
	p := core.Payment{Amount: amount, Currency: currency, PaymentDate: paid}
	if c.notes != "" {
		p.Notes = &c.notes
	}
	return p, nil
}

type backfillCmd struct {
	user string
}

func (*backfillCmd) Name() string     { return "mirror-backfill" }
func (*backfillCmd) Synopsis() string { return "copy every income and expense of a user to the Google Sheet" }
func (*backfillCmd) Usage() string {
	return "wealthctl mirror-backfill -user <id>\n"
}

func (c *backfillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Owner whose records are mirrored.")
}

func (c *backfillCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		return subcommands.ExitUsageError
	}
	cfg := config.Load()

	repo, err := openRepo()
	if err != nil {
		return fail(err)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		IncomesSheet:  cfg.IncomesSheetName,
		ExpensesSheet: cfg.ExpensesSheetName,
	})
	if err != nil {
		return fail(err)
	}

	logger := log.New(log.Config{Component: log.ComponentSheets, Output: os.Stderr})
	n, err := worker.NewMirrorWorker(repo, sheetsClient, logger.Logger).Backfill(ctx, c.user)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Mirrored %d transactions\n", n)
	return subcommands.ExitSuccess
}
