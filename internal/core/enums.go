package core

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

type (
	Currency        string
	IncomeType      string
	ExpenseCategory string
	PaymentMethod   string
	Frequency       string
	LoanStatus      string
)

const (
	TRY Currency = "TRY"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CHF Currency = "CHF"

	DefaultCurrency = TRY
)

const (
	IncomeSalary    IncomeType = "SALARY"
	IncomeRental    IncomeType = "RENTAL"
	IncomeDividend  IncomeType = "DIVIDEND"
	IncomeInterest  IncomeType = "INTEREST"
	IncomeFreelance IncomeType = "FREELANCE"
	IncomeBonus     IncomeType = "BONUS"
	IncomeOther     IncomeType = "OTHER"
)

const (
	ExpenseRent           ExpenseCategory = "RENT"
	ExpenseUtilities      ExpenseCategory = "UTILITIES"
	ExpenseFood           ExpenseCategory = "FOOD"
	ExpenseTransportation ExpenseCategory = "TRANSPORTATION"
	ExpenseEducation      ExpenseCategory = "EDUCATION"
	ExpenseHealthcare     ExpenseCategory = "HEALTHCARE"
	ExpenseEntertainment  ExpenseCategory = "ENTERTAINMENT"
	ExpenseShopping       ExpenseCategory = "SHOPPING"
	ExpenseInsurance      ExpenseCategory = "INSURANCE"
	ExpenseOther          ExpenseCategory = "OTHER"
)

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOther        PaymentMethod = "OTHER"
)

const (
	Daily      Frequency = "DAILY"
	Weekly     Frequency = "WEEKLY"
	Monthly    Frequency = "MONTHLY"
	Quarterly  Frequency = "QUARTERLY"
	SemiAnnual Frequency = "SEMI_ANNUAL"
	Annual     Frequency = "ANNUAL"
)

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanPaidOff   LoanStatus = "PAID_OFF"
	LoanDefaulted LoanStatus = "DEFAULTED"
)

var (
	currencies        = []Currency{TRY, USD, EUR, GBP, CHF}
	incomeTypes       = []IncomeType{IncomeSalary, IncomeRental, IncomeDividend, IncomeInterest, IncomeFreelance, IncomeBonus, IncomeOther}
	expenseCategories = []ExpenseCategory{ExpenseRent, ExpenseUtilities, ExpenseFood, ExpenseTransportation, ExpenseEducation, ExpenseHealthcare, ExpenseEntertainment, ExpenseShopping, ExpenseInsurance, ExpenseOther}
	paymentMethods    = []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentOther}
	frequencies       = []Frequency{Daily, Weekly, Monthly, Quarterly, SemiAnnual, Annual}
	loanStatuses      = []LoanStatus{LoanActive, LoanPaidOff, LoanDefaulted}
)

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Validate accepts only the supported set, each of which must be a known ISO 4217 code.
func (c Currency) Validate() error {
	if !contains(currencies, c) || money.GetCurrency(string(c)) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, string(c))
	}
	return nil
}

// Fraction is the number of minor-unit digits for the currency.
func (c Currency) Fraction() int {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur.Fraction
	}
	return 2
}

func (t IncomeType) Valid() bool      { return contains(incomeTypes, t) }
func (c ExpenseCategory) Valid() bool { return contains(expenseCategories, c) }
func (m PaymentMethod) Valid() bool   { return contains(paymentMethods, m) }
func (f Frequency) Valid() bool       { return contains(frequencies, f) }
func (s LoanStatus) Valid() bool      { return contains(loanStatuses, s) }

// Currencies lists the supported currencies in display order.
func Currencies() []Currency { return append([]Currency(nil), currencies...) }
