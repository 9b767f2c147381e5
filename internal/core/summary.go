package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockLine struct {
	ID            string   `json:"id"`
	Symbol        string   `json:"symbol"`
	Name          *string  `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchasePrice"`
	Currency      Currency `json:"currency"`
	TotalCost     float64  `json:"totalCost"`
}

type StockSummary struct {
	TotalStocks    int         `json:"totalStocks"`
	TotalCost      float64     `json:"totalCost"`
	TotalDividends float64     `json:"totalDividends"`
	Stocks         []StockLine `json:"stocks"`
}

func SummarizeStocks(stocks []Stock) StockSummary {
	cost, dividends := decimal.Zero, decimal.Zero
	lines := make([]StockLine, 0, len(stocks))
	for _, s := range stocks {
		c := CostBasis(s.Quantity, s.PurchasePrice)
		cost = cost.Add(c)
		dividends = dividends.Add(sumPayments(s.Dividends))
		lines = append(lines, StockLine{
			ID:            s.ID,
			Symbol:        s.Symbol,
			Name:          s.Name,
			Quantity:      Float(s.Quantity),
			PurchasePrice: Float(s.PurchasePrice),
			Currency:      s.Currency,
			TotalCost:     Float(c),
		})
	}
	return StockSummary{
		TotalStocks:    len(stocks),
		TotalCost:      Float(cost),
		TotalDividends: Float(dividends),
		Stocks:         lines,
	}
}

type ETFLine struct {
	ID            string   `json:"id"`
	Symbol        string   `json:"symbol"`
	Name          *string  `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchasePrice"`
	Currency      Currency `json:"currency"`
	ExpenseRatio  *float64 `json:"expenseRatio"`
	TotalValue    float64  `json:"totalValue"`
}

type ETFSummary struct {
	TotalEtfs          int       `json:"totalEtfs"`
	TotalValue         float64   `json:"totalValue"`
	TotalDistributions float64   `json:"totalDistributions"`
	Etfs               []ETFLine `json:"etfs"`
}

func SummarizeETFs(etfs []ETF) ETFSummary {
	value, distributions := decimal.Zero, decimal.Zero
	lines := make([]ETFLine, 0, len(etfs))
	for _, e := range etfs {
		v := CostBasis(e.Quantity, e.PurchasePrice)
		value = value.Add(v)
		distributions = distributions.Add(sumPayments(e.Distributions))
		lines = append(lines, ETFLine{
			ID:            e.ID,
			Symbol:        e.Symbol,
			Name:          e.Name,
			Quantity:      Float(e.Quantity),
			PurchasePrice: Float(e.PurchasePrice),
			Currency:      e.Currency,
			ExpenseRatio:  FloatPtr(e.ExpenseRatio),
			TotalValue:    Float(v),
		})
	}
	return ETFSummary{
		TotalEtfs:          len(etfs),
		TotalValue:         Float(value),
		TotalDistributions: Float(distributions),
		Etfs:               lines,
	}
}

type EurobondLine struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ISIN          *string   `json:"isin"`
	FaceValue     float64   `json:"faceValue"`
	PurchasePrice float64   `json:"purchasePrice"`
	Quantity      float64   `json:"quantity"`
	CouponRate    float64   `json:"couponRate"`
	Currency      Currency  `json:"currency"`
	MaturityDate  time.Time `json:"maturityDate"`
	CurrentValue  float64   `json:"currentValue"`
	AnnualCoupon  float64   `json:"annualCoupon"`
}

type EurobondSummary struct {
	TotalBonds          int            `json:"totalBonds"`
	TotalFaceValue      float64        `json:"totalFaceValue"`
	TotalCurrentValue   float64        `json:"totalCurrentValue"`
	AnnualCouponIncome  float64        `json:"annualCouponIncome"`
	TotalCouponPayments float64        `json:"totalCouponPayments"`
	Eurobonds           []EurobondLine `json:"eurobonds"`
}

func SummarizeEurobonds(bonds []Eurobond) EurobondSummary {
	face, current, coupon, received := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	lines := make([]EurobondLine, 0, len(bonds))
	for _, b := range bonds {
		cv := BondCurrentValue(b)
		ac := BondAnnualCoupon(b)
		face = face.Add(BondFaceValue(b))
		current = current.Add(cv)
		coupon = coupon.Add(ac)
		received = received.Add(sumPayments(b.CouponPayments))
		lines = append(lines, EurobondLine{
			ID:            b.ID,
			Name:          b.Name,
			ISIN:          b.ISIN,
			FaceValue:     Float(b.FaceValue),
			PurchasePrice: Float(b.PurchasePrice),
			Quantity:      Float(b.Quantity),
			CouponRate:    Float(b.CouponRate),
			Currency:      b.Currency,
			MaturityDate:  b.MaturityDate,
			CurrentValue:  Float(cv),
			AnnualCoupon:  Float(ac),
		})
	}
	return EurobondSummary{
		TotalBonds:          len(bonds),
		TotalFaceValue:      Float(face),
		TotalCurrentValue:   Float(current),
		AnnualCouponIncome:  Float(coupon),
		TotalCouponPayments: Float(received),
		Eurobonds:           lines,
	}
}

type CashLine struct {
	ID          string   `json:"id"`
	AccountName string   `json:"accountName"`
	Balance     float64  `json:"balance"`
	Currency    Currency `json:"currency"`
	AccountType *string  `json:"accountType"`
	BankName    *string  `json:"bankName"`
}

type CashSummary struct {
	TotalAccounts int                `json:"totalAccounts"`
	TotalBalance  float64            `json:"totalBalance"`
	ByCurrency    map[string]float64 `json:"byCurrency"`
	Accounts      []CashLine         `json:"accounts"`
}

// SummarizeCash adds balances across currencies without conversion; ByCurrency keeps them apart.
func SummarizeCash(accounts []CashAccount) CashSummary {
	total := decimal.Zero
	byCurrency := map[Currency]decimal.Decimal{}
	lines := make([]CashLine, 0, len(accounts))
	for _, a := range accounts {
		total = total.Add(a.Balance)
		byCurrency[a.Currency] = byCurrency[a.Currency].Add(a.Balance)
		lines = append(lines, CashLine{
			ID:          a.ID,
			AccountName: a.AccountName,
			Balance:     Float(a.Balance),
			Currency:    a.Currency,
			AccountType: a.AccountType,
			BankName:    a.BankName,
		})
	}
	out := make(map[string]float64, len(byCurrency))
	for c, v := range byCurrency {
		out[string(c)] = Float(v)
	}
	return CashSummary{
		TotalAccounts: len(accounts),
		TotalBalance:  Float(total),
		ByCurrency:    out,
		Accounts:      lines,
	}
}

type MetalLine struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	Purity        *string `json:"purity"`
	TotalCost     float64 `json:"totalCost"`
}

type MetalSummary struct {
	TotalHoldings int         `json:"totalHoldings"`
	TotalQuantity float64     `json:"totalQuantity"`
	TotalCost     float64     `json:"totalCost"`
	Holdings      []MetalLine `json:"holdings"`
}

func SummarizeMetal(holdings []MetalHolding) MetalSummary {
	quantity, cost := decimal.Zero, decimal.Zero
	lines := make([]MetalLine, 0, len(holdings))
	for _, h := range holdings {
		c := CostBasis(h.Quantity, h.PurchasePrice)
		quantity = quantity.Add(h.Quantity)
		cost = cost.Add(c)
		lines = append(lines, MetalLine{
			ID:            h.ID,
			Name:          h.Name,
			Quantity:      Float(h.Quantity),
			PurchasePrice: Float(h.PurchasePrice),
			Purity:        h.Purity,
			TotalCost:     Float(c),
		})
	}
	return MetalSummary{
		TotalHoldings: len(holdings),
		TotalQuantity: Float(quantity),
		TotalCost:     Float(cost),
		Holdings:      lines,
	}
}

type LoanLine struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Lender          *string    `json:"lender"`
	PrincipalAmount float64    `json:"principalAmount"`
	Outstanding     float64    `json:"outstanding"`
	Currency        Currency   `json:"currency"`
	Status          LoanStatus `json:"status"`
}

type LoanSummary struct {
	TotalLoans       int        `json:"totalLoans"`
	ActiveLoans      int        `json:"activeLoans"`
	TotalPrincipal   float64    `json:"totalPrincipal"`
	TotalOutstanding float64    `json:"totalOutstanding"`
	Loans            []LoanLine `json:"loans"`
}

// SummarizeLoans counts outstanding balances of active loans only.
func SummarizeLoans(loans []Loan) LoanSummary {
	principal, outstanding := decimal.Zero, decimal.Zero
	active := 0
	lines := make([]LoanLine, 0, len(loans))
	for _, l := range loans {
		o := LoanOutstanding(l)
		principal = principal.Add(l.PrincipalAmount)
		if l.Status == LoanActive {
			active++
			outstanding = outstanding.Add(o)
		}
		lines = append(lines, LoanLine{
			ID:              l.ID,
			Name:            l.Name,
			Lender:          l.Lender,
			PrincipalAmount: Float(l.PrincipalAmount),
			Outstanding:     Float(o),
			Currency:        l.Currency,
			Status:          l.Status,
		})
	}
	return LoanSummary{
		TotalLoans:       len(loans),
		ActiveLoans:      active,
		TotalPrincipal:   Float(principal),
		TotalOutstanding: Float(outstanding),
		Loans:            lines,
	}
}
