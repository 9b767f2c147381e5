package core

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type AssetBreakdown struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type DebtBreakdown struct {
	Count   int     `json:"count"`
	Balance float64 `json:"balance"`
}

type Breakdown struct {
	Stocks    AssetBreakdown `json:"stocks"`
	ETFs      AssetBreakdown `json:"etfs"`
	Eurobonds AssetBreakdown `json:"eurobonds"`
	Loans     DebtBreakdown  `json:"loans"`
}

type MonthlyFlow struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savingsRate"`
}

type DashboardOverview struct {
	NetWorth    float64     `json:"netWorth"`
	TotalAssets float64     `json:"totalAssets"`
	TotalDebt   float64     `json:"totalDebt"`
	Breakdown   Breakdown   `json:"breakdown"`
	Monthly     MonthlyFlow `json:"monthly"`
}

// DashboardInput is everything the overview needs, fetched by the caller.
// Incomes and Expenses are expected to be this month's; Loans the active ones.
type DashboardInput struct {
	Stocks    []Stock
	ETFs      []ETF
	Eurobonds []Eurobond
	Incomes   []Income
	Expenses  []Expense
	Loans     []Loan
}

func Overview(in DashboardInput) DashboardOverview {
	stocks := decimal.Zero
	for _, s := range in.Stocks {
		stocks = stocks.Add(CostBasis(s.Quantity, s.PurchasePrice))
	}
	etfs := decimal.Zero
	for _, e := range in.ETFs {
		etfs = etfs.Add(CostBasis(e.Quantity, e.PurchasePrice))
	}
	bonds := decimal.Zero
	for _, b := range in.Eurobonds {
		bonds = bonds.Add(BondFaceValue(b))
	}
	debt := decimal.Zero
	for _, l := range in.Loans {
		debt = debt.Add(LoanOutstanding(l))
	}
	income := decimal.Zero
	for _, i := range in.Incomes {
		income = income.Add(i.Amount)
	}
	expenses := decimal.Zero
	for _, e := range in.Expenses {
		expenses = expenses.Add(e.Amount)
	}

	assets := stocks.Add(etfs).Add(bonds)
	savings := income.Sub(expenses)

	return DashboardOverview{
		NetWorth:    Float(assets.Sub(debt)),
		TotalAssets: Float(assets),
		TotalDebt:   Float(debt),
		Breakdown: Breakdown{
			Stocks:    AssetBreakdown{Count: len(in.Stocks), Value: Float(stocks)},
			ETFs:      AssetBreakdown{Count: len(in.ETFs), Value: Float(etfs)},
			Eurobonds: AssetBreakdown{Count: len(in.Eurobonds), Value: Float(bonds)},
			Loans:     DebtBreakdown{Count: len(in.Loans), Balance: Float(debt)},
		},
		Monthly: MonthlyFlow{
			Income:      Float(income),
			Expenses:    Float(expenses),
			Savings:     Float(savings),
			SavingsRate: SavingsRate(income, savings),
		},
	}
}

// SavingsRate is savings as a percentage of income, one decimal place, 0 without income.
func SavingsRate(income, savings decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	rate := Float(savings.Div(income).Mul(hundred))
	return math.Round(rate*10) / 10
}

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// Transaction is one line of the merged recent-activity feed.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Currency    Currency  `json:"currency"`
}

// RecentTransactions merges incomes and negated expenses, newest first, capped at limit.
func RecentTransactions(incomes []Income, expenses []Expense, limit int) []Transaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := make([]Transaction, 0, len(incomes)+len(expenses))
	for _, i := range incomes {
		desc := string(i.Type)
		if i.Description != nil && *i.Description != "" {
			desc = *i.Description
		}
		out = append(out, Transaction{
			ID:          i.ID,
			Type:        TransactionIncome,
			Amount:      Float(i.Amount),
			Description: desc,
			Category:    string(i.Type),
			Date:        i.Date,
			Currency:    i.Currency,
		})
	}
	for _, e := range expenses {
		desc := string(e.Category)
		if e.Description != nil && *e.Description != "" {
			desc = *e.Description
		}
		out = append(out, Transaction{
			ID:          e.ID,
			Type:        TransactionExpense,
			Amount:      Float(e.Amount.Neg()),
			Description: desc,
			Category:    string(e.Category),
			Date:        e.Date,
			Currency:    e.Currency,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
