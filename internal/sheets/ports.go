package sheets

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"wealth/internal/core"
)

// Kind selects which tab a row belongs to.
type Kind string

const (
	Incomes  Kind = "income"
	Expenses Kind = "expense"
)

// Row is the spreadsheet projection of an income or expense.
type Row struct {
	ID            string
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	Currency      core.Currency
	Recurring     bool
	PaymentMethod string
}

func IncomeRow(i core.Income) Row {
	return Row{
		ID:          i.ID,
		Date:        i.Date,
		Category:    string(i.Type),
		Description: deref(i.Description),
		Amount:      i.Amount,
		Currency:    i.Currency,
		Recurring:   i.IsRecurring,
	}
}

func ExpenseRow(e core.Expense) Row {
	r := Row{
		ID:          e.ID,
		Date:        e.Date,
		Category:    string(e.Category),
		Description: deref(e.Description),
		Amount:      e.Amount,
		Currency:    e.Currency,
		Recurring:   e.IsRecurring,
	}
	if e.PaymentMethod != nil {
		r.PaymentMethod = string(*e.PaymentMethod)
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ports for outbound adapters.
type (
	// TransactionWriter inserts a row or replaces the row with the same ID.
	TransactionWriter interface {
		Upsert(ctx context.Context, kind Kind, row Row) (rowRef string, err error)
	}

	// TransactionDeleter removes the row with the given ID. A missing row is not an error.
	TransactionDeleter interface {
		Delete(ctx context.Context, kind Kind, id string) error
	}

	TransactionMirror interface {
		TransactionWriter
		TransactionDeleter
	}
)
