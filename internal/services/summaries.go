package services

import (
	"context"
	"fmt"
	"time"

	"wealth/internal/core"
)

// SummaryStore lists the records each summary is computed from.
type SummaryStore interface {
	ListStocks(ctx context.Context, owner string) ([]core.Stock, error)
	ListETFs(ctx context.Context, owner string) ([]core.ETF, error)
	ListEurobonds(ctx context.Context, owner string) ([]core.Eurobond, error)
	ListCashAccounts(ctx context.Context, owner string) ([]core.CashAccount, error)
	ListMetalHoldings(ctx context.Context, m core.Metal, owner string) ([]core.MetalHolding, error)
	ListLoans(ctx context.Context, owner string, status core.LoanStatus) ([]core.Loan, error)
	ListIncomes(ctx context.Context, owner string, filter core.IncomeFilter) ([]core.Income, error)
	ListExpenses(ctx context.Context, owner string, filter core.ExpenseFilter) ([]core.Expense, error)
}

// SummaryService turns stored records into the per-resource summaries.
// Monthly windows are computed in loc.
type SummaryService struct {
	store SummaryStore
	loc   *time.Location
	now   func() time.Time
}

func NewSummaryService(store SummaryStore, loc *time.Location) *SummaryService {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryService{store: store, loc: loc, now: time.Now}
}

func (s *SummaryService) Stocks(ctx context.Context, owner string) (core.StockSummary, error) {
	stocks, err := s.store.ListStocks(ctx, owner)
	if err != nil {
		return core.StockSummary{}, err
	}
	return core.SummarizeStocks(stocks), nil
}

func (s *SummaryService) ETFs(ctx context.Context, owner string) (core.ETFSummary, error) {
	etfs, err := s.store.ListETFs(ctx, owner)
	if err != nil {
		return core.ETFSummary{}, err
	}
	return core.SummarizeETFs(etfs), nil
}

func (s *SummaryService) Eurobonds(ctx context.Context, owner string) (core.EurobondSummary, error) {
	bonds, err := s.store.ListEurobonds(ctx, owner)
	if err != nil {
		return core.EurobondSummary{}, err
	}
	return core.SummarizeEurobonds(bonds), nil
}

func (s *SummaryService) Cash(ctx context.Context, owner string) (core.CashSummary, error) {
	accounts, err := s.store.ListCashAccounts(ctx, owner)
	if err != nil {
		return core.CashSummary{}, err
	}
	return core.SummarizeCash(accounts), nil
}

func (s *SummaryService) Metal(ctx context.Context, m core.Metal, owner string) (core.MetalSummary, error) {
	holdings, err := s.store.ListMetalHoldings(ctx, m, owner)
	if err != nil {
		return core.MetalSummary{}, err
	}
	return core.SummarizeMetal(holdings), nil
}

func (s *SummaryService) Loans(ctx context.Context, owner string) (core.LoanSummary, error) {
	loans, err := s.store.ListLoans(ctx, owner, "")
	if err != nil {
		return core.LoanSummary{}, err
	}
	return core.SummarizeLoans(loans), nil
}

// Incomes summarizes one calendar month. month is one-based; nil month or
// year default to the current ones.
func (s *SummaryService) Incomes(ctx context.Context, owner string, month, year *int) (core.IncomeSummary, error) {
	p, err := core.ResolvePeriod(s.now().In(s.loc), month, year)
	if err != nil {
		return core.IncomeSummary{}, err
	}
	w := p.Window(s.loc)
	incomes, err := s.store.ListIncomes(ctx, owner, core.IncomeFilter{From: w.Start, To: w.End})
	if err != nil {
		return core.IncomeSummary{}, fmt.Errorf("list month incomes: %w", err)
	}
	return core.SummarizeIncomes(p, w, incomes), nil
}

func (s *SummaryService) Expenses(ctx context.Context, owner string, month, year *int) (core.ExpenseSummary, error) {
	p, err := core.ResolvePeriod(s.now().In(s.loc), month, year)
	if err != nil {
		return core.ExpenseSummary{}, err
	}
	w := p.Window(s.loc)
	expenses, err := s.store.ListExpenses(ctx, owner, core.ExpenseFilter{From: w.Start, To: w.End})
	if err != nil {
		return core.ExpenseSummary{}, fmt.Errorf("list month expenses: %w", err)
	}
	return core.SummarizeExpenses(p, w, expenses), nil
}
