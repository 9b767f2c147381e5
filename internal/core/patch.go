package core

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Patches carry only the fields a client sent. A nil field is left untouched.
// Nullable columns use Optional so that an explicit null clears them.
// Apply reports whether anything was set.

// Optional is a patch field that tells an absent key from an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some is a present, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null is a present null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Interface returns the value or nil, for validators.
func (o Optional[T]) Interface() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

func set[T any](dst *T, v *T, changed *bool) {
	if v != nil {
		*dst = *v
		*changed = true
	}
}

func setOpt[T any](dst **T, v Optional[T], changed *bool) {
	if !v.Set {
		return
	}
	*dst = nil
	if v.Value != nil {
		c := *v.Value
		*dst = &c
	}
	*changed = true
}

func setOptDate(dst **time.Time, v Optional[Date], changed *bool) {
	if !v.Set {
		return
	}
	*dst = nil
	if v.Value != nil {
		t := v.Value.Time
		*dst = &t
	}
	*changed = true
}

func setDate(dst *time.Time, v *Date, changed *bool) {
	if v != nil {
		*dst = v.Time
		*changed = true
	}
}

type StockPatch struct {
	Symbol        *string          `json:"symbol" validate:"omitempty,min=1,max=20"`
	Name          Optional[string] `json:"name"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	Currency      *Currency        `json:"currency" validate:"omitempty,currency"`
	PurchaseDate  *Date            `json:"purchaseDate"`
	Broker        Optional[string] `json:"broker"`
	Notes         Optional[string] `json:"notes"`
}

func (p StockPatch) Apply(s *Stock) bool {
	var changed bool
	set(&s.Symbol, p.Symbol, &changed)
	setOpt(&s.Name, p.Name, &changed)
	set(&s.Quantity, p.Quantity, &changed)
	set(&s.PurchasePrice, p.PurchasePrice, &changed)
	set(&s.Currency, p.Currency, &changed)
	setDate(&s.PurchaseDate, p.PurchaseDate, &changed)
	setOpt(&s.Broker, p.Broker, &changed)
	setOpt(&s.Notes, p.Notes, &changed)
	return changed
}

type ETFPatch struct {
	Symbol        *string                   `json:"symbol" validate:"omitempty,min=1,max=20"`
	Name          Optional[string]          `json:"name"`
	Quantity      *decimal.Decimal          `json:"quantity"`
	PurchasePrice *decimal.Decimal          `json:"purchasePrice"`
	Currency      *Currency                 `json:"currency" validate:"omitempty,currency"`
	PurchaseDate  *Date                     `json:"purchaseDate"`
	ExpenseRatio  Optional[decimal.Decimal] `json:"expenseRatio"`
	Broker        Optional[string]          `json:"broker"`
	Notes         Optional[string]          `json:"notes"`
}

func (p ETFPatch) Apply(e *ETF) bool {
	var changed bool
	set(&e.Symbol, p.Symbol, &changed)
	setOpt(&e.Name, p.Name, &changed)
	set(&e.Quantity, p.Quantity, &changed)
	set(&e.PurchasePrice, p.PurchasePrice, &changed)
	set(&e.Currency, p.Currency, &changed)
	setDate(&e.PurchaseDate, p.PurchaseDate, &changed)
	setOpt(&e.ExpenseRatio, p.ExpenseRatio, &changed)
	setOpt(&e.Broker, p.Broker, &changed)
	setOpt(&e.Notes, p.Notes, &changed)
	return changed
}

type EurobondPatch struct {
	Name            *string          `json:"name" validate:"omitempty,min=1"`
	ISIN            Optional[string] `json:"isin"`
	FaceValue       *decimal.Decimal `json:"faceValue"`
	PurchasePrice   *decimal.Decimal `json:"purchasePrice"`
	Quantity        *decimal.Decimal `json:"quantity"`
	CouponRate      *decimal.Decimal `json:"couponRate"`
	Currency        *Currency        `json:"currency" validate:"omitempty,currency"`
	PurchaseDate    *Date            `json:"purchaseDate"`
	MaturityDate    *Date            `json:"maturityDate"`
	CouponFrequency *int             `json:"couponFrequency" validate:"omitempty,min=1,max=12"`
	Broker          Optional[string] `json:"broker"`
	Notes           Optional[string] `json:"notes"`
}

func (p EurobondPatch) Apply(e *Eurobond) bool {
	var changed bool
	set(&e.Name, p.Name, &changed)
	setOpt(&e.ISIN, p.ISIN, &changed)
	set(&e.FaceValue, p.FaceValue, &changed)
	set(&e.PurchasePrice, p.PurchasePrice, &changed)
	set(&e.Quantity, p.Quantity, &changed)
	set(&e.CouponRate, p.CouponRate, &changed)
	set(&e.Currency, p.Currency, &changed)
	setDate(&e.PurchaseDate, p.PurchaseDate, &changed)
	setDate(&e.MaturityDate, p.MaturityDate, &changed)
	set(&e.CouponFrequency, p.CouponFrequency, &changed)
	setOpt(&e.Broker, p.Broker, &changed)
	setOpt(&e.Notes, p.Notes, &changed)
	return changed
}

type CashAccountPatch struct {
	AccountName *string          `json:"accountName" validate:"omitempty,min=1"`
	Balance     *decimal.Decimal `json:"balance"`
	Currency    *Currency        `json:"currency" validate:"omitempty,currency"`
	AccountType Optional[string] `json:"accountType"`
	BankName    Optional[string] `json:"bankName"`
	Notes       Optional[string] `json:"notes"`
}

func (p CashAccountPatch) Apply(a *CashAccount) bool {
	var changed bool
	set(&a.AccountName, p.AccountName, &changed)
	set(&a.Balance, p.Balance, &changed)
	set(&a.Currency, p.Currency, &changed)
	setOpt(&a.AccountType, p.AccountType, &changed)
	setOpt(&a.BankName, p.BankName, &changed)
	setOpt(&a.Notes, p.Notes, &changed)
	return changed
}

type MetalHoldingPatch struct {
	Name          Optional[string] `json:"name"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  *Date            `json:"purchaseDate"`
	Purity        Optional[string] `json:"purity"`
	Location      Optional[string] `json:"location"`
	Notes         Optional[string] `json:"notes"`
}

func (p MetalHoldingPatch) Apply(h *MetalHolding) bool {
	var changed bool
	setOpt(&h.Name, p.Name, &changed)
	set(&h.Quantity, p.Quantity, &changed)
	set(&h.PurchasePrice, p.PurchasePrice, &changed)
	setDate(&h.PurchaseDate, p.PurchaseDate, &changed)
	setOpt(&h.Purity, p.Purity, &changed)
	setOpt(&h.Location, p.Location, &changed)
	setOpt(&h.Notes, p.Notes, &changed)
	return changed
}

type LoanPatch struct {
	Name             *string                   `json:"name" validate:"omitempty,min=1"`
	Lender           Optional[string]          `json:"lender"`
	PrincipalAmount  *decimal.Decimal          `json:"principalAmount"`
	RemainingBalance Optional[decimal.Decimal] `json:"remainingBalance"`
	InterestRate     Optional[decimal.Decimal] `json:"interestRate"`
	Currency         *Currency                 `json:"currency" validate:"omitempty,currency"`
	StartDate        *Date                     `json:"startDate"`
	EndDate          Optional[Date]            `json:"endDate"`
	Status           *LoanStatus               `json:"status" validate:"omitempty,loan_status"`
	Notes            Optional[string]          `json:"notes"`
}

func (p LoanPatch) Apply(l *Loan) bool {
	var changed bool
	set(&l.Name, p.Name, &changed)
	setOpt(&l.Lender, p.Lender, &changed)
	set(&l.PrincipalAmount, p.PrincipalAmount, &changed)
	setOpt(&l.RemainingBalance, p.RemainingBalance, &changed)
	setOpt(&l.InterestRate, p.InterestRate, &changed)
	set(&l.Currency, p.Currency, &changed)
	setDate(&l.StartDate, p.StartDate, &changed)
	setOptDate(&l.EndDate, p.EndDate, &changed)
	set(&l.Status, p.Status, &changed)
	setOpt(&l.Notes, p.Notes, &changed)
	return changed
}

type IncomePatch struct {
	Amount      *decimal.Decimal    `json:"amount"`
	Currency    *Currency           `json:"currency" validate:"omitempty,currency"`
	Type        *IncomeType         `json:"type" validate:"omitempty,income_type"`
	Description Optional[string]    `json:"description"`
	Date        *Date               `json:"date"`
	IsRecurring *bool               `json:"isRecurring"`
	Frequency   Optional[Frequency] `json:"frequency" validate:"omitempty,frequency"`
	Notes       Optional[string]    `json:"notes"`
}

func (p IncomePatch) Apply(i *Income) bool {
	var changed bool
	set(&i.Amount, p.Amount, &changed)
	set(&i.Currency, p.Currency, &changed)
	set(&i.Type, p.Type, &changed)
	setOpt(&i.Description, p.Description, &changed)
	setDate(&i.Date, p.Date, &changed)
	set(&i.IsRecurring, p.IsRecurring, &changed)
	setOpt(&i.Frequency, p.Frequency, &changed)
	setOpt(&i.Notes, p.Notes, &changed)
	return changed
}

type ExpensePatch struct {
	Amount        *decimal.Decimal        `json:"amount"`
	Currency      *Currency               `json:"currency" validate:"omitempty,currency"`
	Category      *ExpenseCategory        `json:"category" validate:"omitempty,expense_category"`
	Description   Optional[string]        `json:"description"`
	Date          *Date                   `json:"date"`
	IsRecurring   *bool                   `json:"isRecurring"`
	Frequency     Optional[Frequency]     `json:"frequency" validate:"omitempty,frequency"`
	PaymentMethod Optional[PaymentMethod] `json:"paymentMethod" validate:"omitempty,payment_method"`
	Notes         Optional[string]        `json:"notes"`
}

func (p ExpensePatch) Apply(e *Expense) bool {
	var changed bool
	set(&e.Amount, p.Amount, &changed)
	set(&e.Currency, p.Currency, &changed)
	set(&e.Category, p.Category, &changed)
	setOpt(&e.Description, p.Description, &changed)
	setDate(&e.Date, p.Date, &changed)
	set(&e.IsRecurring, p.IsRecurring, &changed)
	setOpt(&e.Frequency, p.Frequency, &changed)
	setOpt(&e.PaymentMethod, p.PaymentMethod, &changed)
	setOpt(&e.Notes, p.Notes, &changed)
	return changed
}
