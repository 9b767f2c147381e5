package core

import "github.com/shopspring/decimal"

// Valuation conventions. Summaries and the dashboard deliberately disagree on
// eurobonds: summaries report BondCurrentValue, the dashboard BondFaceValue.

var hundred = decimal.NewFromInt(100)

// CostBasis is quantity times unit purchase price.
func CostBasis(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// BondFaceValue is the nominal exposure of a bond position.
func BondFaceValue(e Eurobond) decimal.Decimal {
	return e.FaceValue.Mul(e.Quantity)
}

// BondCurrentValue treats the purchase price as a percentage of face value.
func BondCurrentValue(e Eurobond) decimal.Decimal {
	return e.PurchasePrice.Mul(e.Quantity).Div(hundred)
}

// BondAnnualCoupon is face value times quantity times the coupon rate.
func BondAnnualCoupon(e Eurobond) decimal.Decimal {
	return e.FaceValue.Mul(e.Quantity).Mul(e.CouponRate)
}

// LoanOutstanding is the remaining balance, or the principal when none is recorded.
func LoanOutstanding(l Loan) decimal.Decimal {
	if l.RemainingBalance != nil {
		return *l.RemainingBalance
	}
	return l.PrincipalAmount
}

func sumPayments(ps []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.Amount)
	}
	return total
}
