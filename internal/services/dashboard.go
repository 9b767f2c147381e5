package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"wealth/internal/core"
)

// DashboardService assembles the overview from six concurrent reads.
type DashboardService struct {
	store SummaryStore
	loc   *time.Location
	now   func() time.Time
}

func NewDashboardService(store SummaryStore, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{store: store, loc: loc, now: time.Now}
}

// Overview values holdings at cost, bonds at face value, and counts only
// active loans as debt. Monthly flow covers the current calendar month.
func (s *DashboardService) Overview(ctx context.Context, owner string) (core.DashboardOverview, error) {
	now := s.now().In(s.loc)
	w := core.MonthWindow(now.Year(), int(now.Month())-1, s.loc)

	var in core.DashboardInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Stocks, err = s.store.ListStocks(gctx, owner)
		return wrap("stocks", err)
	})
	g.Go(func() (err error) {
		in.ETFs, err = s.store.ListETFs(gctx, owner)
		return wrap("etfs", err)
	})
	g.Go(func() (err error) {
		in.Eurobonds, err = s.store.ListEurobonds(gctx, owner)
		return wrap("eurobonds", err)
	})
	g.Go(func() (err error) {
		in.Incomes, err = s.store.ListIncomes(gctx, owner, core.IncomeFilter{From: w.Start, To: w.End})
		return wrap("incomes", err)
	})
	g.Go(func() (err error) {
		in.Expenses, err = s.store.ListExpenses(gctx, owner, core.ExpenseFilter{From: w.Start, To: w.End})
		return wrap("expenses", err)
	})
	g.Go(func() (err error) {
		in.Loans, err = s.store.ListLoans(gctx, owner, core.LoanActive)
		return wrap("loans", err)
	})
	if err := g.Wait(); err != nil {
		return core.DashboardOverview{}, err
	}
	return core.Overview(in), nil
}

// Recent returns the newest incomes and expenses merged into one feed.
func (s *DashboardService) Recent(ctx context.Context, owner string, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = core.DefaultRecentLimit
	}
	if limit > core.MaxRecentLimit {
		limit = core.MaxRecentLimit
	}

	var (
		incomes  []core.Income
		expenses []core.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		incomes, err = s.store.ListIncomes(gctx, owner, core.IncomeFilter{Limit: limit})
		return wrap("incomes", err)
	})
	g.Go(func() (err error) {
		expenses, err = s.store.ListExpenses(gctx, owner, core.ExpenseFilter{Limit: limit})
		return wrap("expenses", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return core.RecentTransactions(incomes, expenses, limit), nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}
