package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Type        IncomeType      `json:"type"`
	Description *string         `json:"description"`
	Date        time.Time       `json:"date"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   *Frequency      `json:"frequency"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Expense struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Category      ExpenseCategory `json:"category"`
	Description   *string         `json:"description"`
	Date          time.Time       `json:"date"`
	IsRecurring   bool            `json:"isRecurring"`
	Frequency     *Frequency      `json:"frequency"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IncomeFilter narrows an income listing. Zero values mean "no filter".
type IncomeFilter struct {
	Type  IncomeType
	From  time.Time
	To    time.Time
	Limit int
}

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Category      ExpenseCategory
	PaymentMethod PaymentMethod
	From          time.Time
	To            time.Time
	Limit         int
}
