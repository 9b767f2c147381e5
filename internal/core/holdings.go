package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the local mirror of an identity-provider account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payment is a dividend, ETF distribution or bond coupon attached to a holding.
type Payment struct {
	ID          string          `json:"id"`
	HoldingID   string          `json:"holdingId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	PaymentDate time.Time       `json:"paymentDate"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Stock struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Symbol        string          `json:"symbol"`
	Name          *string         `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Currency      Currency        `json:"currency"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	Broker        *string         `json:"broker"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Dividends     []Payment       `json:"dividends"`
}

type ETF struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Symbol        string           `json:"symbol"`
	Name          *string          `json:"name"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	Currency      Currency         `json:"currency"`
	PurchaseDate  time.Time        `json:"purchaseDate"`
	ExpenseRatio  *decimal.Decimal `json:"expenseRatio"`
	Broker        *string          `json:"broker"`
	Notes         *string          `json:"notes"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Distributions []Payment        `json:"distributions"`
}

// Eurobond prices are quoted as a percentage of face value.
type Eurobond struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Name            string          `json:"name"`
	ISIN            *string         `json:"isin"`
	FaceValue       decimal.Decimal `json:"faceValue"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
	Quantity        decimal.Decimal `json:"quantity"`
	CouponRate      decimal.Decimal `json:"couponRate"`
	Currency        Currency        `json:"currency"`
	PurchaseDate    time.Time       `json:"purchaseDate"`
	MaturityDate    time.Time       `json:"maturityDate"`
	CouponFrequency int             `json:"couponFrequency"`
	Broker          *string         `json:"broker"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	CouponPayments  []Payment       `json:"couponPayments"`
}

// DefaultCouponFrequency is semi-annual.
const DefaultCouponFrequency = 2

type CashAccount struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    Currency        `json:"currency"`
	AccountType *string         `json:"accountType"`
	BankName    *string         `json:"bankName"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Metal distinguishes the two precious-metal holding tables.
type Metal string

const (
	Gold   Metal = "GOLD"
	Silver Metal = "SILVER"
)

// MetalHolding is a gold or silver position; quantity is in grams and price per gram.
type MetalHolding struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Name          *string         `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	Purity        *string         `json:"purity"`
	Location      *string         `json:"location"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Loan struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Name             string           `json:"name"`
	Lender           *string          `json:"lender"`
	PrincipalAmount  decimal.Decimal  `json:"principalAmount"`
	RemainingBalance *decimal.Decimal `json:"remainingBalance"`
	InterestRate     *decimal.Decimal `json:"interestRate"`
	Currency         Currency         `json:"currency"`
	StartDate        time.Time        `json:"startDate"`
	EndDate          *time.Time       `json:"endDate"`
	Status           LoanStatus       `json:"status"`
	Notes            *string          `json:"notes"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
