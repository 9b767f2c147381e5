package http

import (
	"github.com/shopspring/decimal"

	"wealth/internal/core"
)

// Create requests. Pointers distinguish "absent" from zero so that
// `required` can reject a missing amount while still accepting 0.

func currencyOr(c *core.Currency) core.Currency {
	if c == nil {
		return core.DefaultCurrency
	}
	return *c
}

func dateOr(d *core.Date) (t core.Date) {
	if d != nil {
		t = *d
	}
	return t
}

type createStockRequest struct {
	Symbol        string           `json:"symbol" validate:"required,max=20"`
	Name          *string          `json:"name"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"required"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" validate:"required"`
	Currency      *core.Currency   `json:"currency" validate:"omitempty,currency"`
	PurchaseDate  *core.Date       `json:"purchaseDate" validate:"required"`
	Broker        *string          `json:"broker"`
	Notes         *string          `json:"notes"`
}

func (req createStockRequest) toModel(owner string) core.Stock {
	return core.Stock{
		UserID:        owner,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      *req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		Currency:      currencyOr(req.Currency),
		PurchaseDate:  dateOr(req.PurchaseDate).Time,
		Broker:        req.Broker,
		Notes:         req.Notes,
	}
}

type createETFRequest struct {
	Symbol        string           `json:"symbol" validate:"required,max=20"`
	Name          *string          `json:"name"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"required"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" validate:"required"`
	Currency      *core.Currency   `json:"currency" validate:"omitempty,currency"`
	PurchaseDate  *core.Date       `json:"purchaseDate" validate:"required"`
	ExpenseRatio  *decimal.Decimal `json:"expenseRatio"`
	Broker        *string          `json:"broker"`
	Notes         *string          `json:"notes"`
}

func (req createETFRequest) toModel(owner string) core.ETF {
	return core.ETF{
		UserID:        owner,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      *req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		Currency:      currencyOr(req.Currency),
		PurchaseDate:  dateOr(req.PurchaseDate).Time,
		ExpenseRatio:  req.ExpenseRatio,
		Broker:        req.Broker,
		Notes:         req.Notes,
	}
}

type createEurobondRequest struct {
	Name            string           `json:"name" validate:"required"`
	ISIN            *string          `json:"isin"`
	FaceValue       *decimal.Decimal `json:"faceValue" validate:"required"`
	PurchasePrice   *decimal.Decimal `json:"purchasePrice" validate:"required"`
	Quantity        *decimal.Decimal `json:"quantity" validate:"required"`
	CouponRate      *decimal.Decimal `json:"couponRate" validate:"required"`
	Currency        *core.Currency   `json:"currency" validate:"omitempty,currency"`
	PurchaseDate    *core.Date       `json:"purchaseDate" validate:"required"`
	MaturityDate    *core.Date       `json:"maturityDate" validate:"required"`
	CouponFrequency *int             `json:"couponFrequency" validate:"omitempty,min=1,max=12"`
	Broker          *string          `json:"broker"`
	Notes           *string          `json:"notes"`
}

func (req createEurobondRequest) toModel(owner string) core.Eurobond {
	freq := core.DefaultCouponFrequency
	if req.CouponFrequency != nil {
		freq = *req.CouponFrequency
	}
	return core.Eurobond{
		UserID:          owner,
		Name:            req.Name,
		ISIN:            req.ISIN,
		FaceValue:       *req.FaceValue,
		PurchasePrice:   *req.PurchasePrice,
		Quantity:        *req.Quantity,
		CouponRate:      *req.CouponRate,
		Currency:        currencyOr(req.Currency),
		PurchaseDate:    dateOr(req.PurchaseDate).Time,
		MaturityDate:    dateOr(req.MaturityDate).Time,
		CouponFrequency: freq,
		Broker:          req.Broker,
		Notes:           req.Notes,
	}
}

type createCashAccountRequest struct {
	AccountName string           `json:"accountName" validate:"required"`
	Balance     *decimal.Decimal `json:"balance" validate:"required"`
	Currency    *core.Currency   `json:"currency" validate:"omitempty,currency"`
	AccountType *string          `json:"accountType"`
	BankName    *string          `json:"bankName"`
	Notes       *string          `json:"notes"`
}

func (req createCashAccountRequest) toModel(owner string) core.CashAccount {
	return core.CashAccount{
		UserID:      owner,
		AccountName: req.AccountName,
		Balance:     *req.Balance,
		Currency:    currencyOr(req.Currency),
		AccountType: req.AccountType,
		BankName:    req.BankName,
		Notes:       req.Notes,
	}
}

type createMetalHoldingRequest struct {
	Name          *string          `json:"name"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"required"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" validate:"required"`
	PurchaseDate  *core.Date       `json:"purchaseDate" validate:"required"`
	Purity        *string          `json:"purity"`
	Location      *string          `json:"location"`
	Notes         *string          `json:"notes"`
}

func (req createMetalHoldingRequest) toModel(owner string) core.MetalHolding {
	return core.MetalHolding{
		UserID:        owner,
		Name:          req.Name,
		Quantity:      *req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		PurchaseDate:  dateOr(req.PurchaseDate).Time,
		Purity:        req.Purity,
		Location:      req.Location,
		Notes:         req.Notes,
	}
}

type createLoanRequest struct {
	Name             string           `json:"name" validate:"required"`
	Lender           *string          `json:"lender"`
	PrincipalAmount  *decimal.Decimal `json:"principalAmount" validate:"required"`
	RemainingBalance *decimal.Decimal `json:"remainingBalance"`
	InterestRate     *decimal.Decimal `json:"interestRate"`
	Currency         *core.Currency   `json:"currency" validate:"omitempty,currency"`
	StartDate        *core.Date       `json:"startDate" validate:"required"`
	EndDate          *core.Date       `json:"endDate"`
	Status           *core.LoanStatus `json:"status" validate:"omitempty,loan_status"`
	Notes            *string          `json:"notes"`
}

func (req createLoanRequest) toModel(owner string) core.Loan {
	l := core.Loan{
		UserID:           owner,
		Name:             req.Name,
		Lender:           req.Lender,
		PrincipalAmount:  *req.PrincipalAmount,
		RemainingBalance: req.RemainingBalance,
		InterestRate:     req.InterestRate,
		Currency:         currencyOr(req.Currency),
		StartDate:        dateOr(req.StartDate).Time,
		Status:           core.LoanActive,
		Notes:            req.Notes,
	}
	if req.EndDate != nil && !req.EndDate.IsZero() {
		end := req.EndDate.Time
		l.EndDate = &end
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	return l
}

type createIncomeRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Currency    *core.Currency   `json:"currency" validate:"omitempty,currency"`
	Type        core.IncomeType  `json:"type" validate:"required,income_type"`
	Description *string          `json:"description"`
	Date        *core.Date       `json:"date" validate:"required"`
	IsRecurring bool             `json:"isRecurring"`
	Frequency   *core.Frequency  `json:"frequency" validate:"omitempty,frequency"`
	Notes       *string          `json:"notes"`
}

func (req createIncomeRequest) toModel(owner string) core.Income {
	return core.Income{
		UserID:      owner,
		Amount:      *req.Amount,
		Currency:    currencyOr(req.Currency),
		Type:        req.Type,
		Description: req.Description,
		Date:        dateOr(req.Date).Time,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
		Notes:       req.Notes,
	}
}

type createExpenseRequest struct {
	Amount        *decimal.Decimal     `json:"amount" validate:"required"`
	Currency      *core.Currency       `json:"currency" validate:"omitempty,currency"`
	Category      core.ExpenseCategory `json:"category" validate:"required,expense_category"`
	Description   *string              `json:"description"`
	Date          *core.Date           `json:"date" validate:"required"`
	IsRecurring   bool                 `json:"isRecurring"`
	Frequency     *core.Frequency      `json:"frequency" validate:"omitempty,frequency"`
	PaymentMethod *core.PaymentMethod  `json:"paymentMethod" validate:"omitempty,payment_method"`
	Notes         *string              `json:"notes"`
}

func (req createExpenseRequest) toModel(owner string) core.Expense {
	return core.Expense{
		UserID:        owner,
		Amount:        *req.Amount,
		Currency:      currencyOr(req.Currency),
		Category:      req.Category,
		Description:   req.Description,
		Date:          dateOr(req.Date).Time,
		IsRecurring:   req.IsRecurring,
		Frequency:     req.Frequency,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
}
