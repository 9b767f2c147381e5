package core

import (
	"github.com/shopspring/decimal"
)

type IncomeSummary struct {
	Month        int                `json:"month"`
	Year         int                `json:"year"`
	Total        float64            `json:"total"`
	Recurring    float64            `json:"recurring"`
	NonRecurring float64            `json:"nonRecurring"`
	ByType       map[string]float64 `json:"byType"`
	Count        int                `json:"count"`
}

type ExpenseSummary struct {
	Month           int                `json:"month"`
	Year            int                `json:"year"`
	Total           float64            `json:"total"`
	Recurring       float64            `json:"recurring"`
	NonRecurring    float64            `json:"nonRecurring"`
	ByCategory      map[string]float64 `json:"byCategory"`
	ByPaymentMethod map[string]float64 `json:"byPaymentMethod"`
	Count           int                `json:"count"`
}

// split holds decimal running sums; total is always recurring + nonRecurring
// after conversion so the decomposition survives the move to float.
type split struct {
	recurring    decimal.Decimal
	nonRecurring decimal.Decimal
}

func (s *split) add(amount decimal.Decimal, recurring bool) {
	if recurring {
		s.recurring = s.recurring.Add(amount)
	} else {
		s.nonRecurring = s.nonRecurring.Add(amount)
	}
}

func (s split) floats() (total, recurring, nonRecurring float64) {
	recurring = Float(s.recurring)
	nonRecurring = Float(s.nonRecurring)
	return recurring + nonRecurring, recurring, nonRecurring
}

func floatMap[K ~string](m map[K]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = Float(v)
	}
	return out
}

// SummarizeIncomes aggregates the incomes dated inside w.
func SummarizeIncomes(p Period, w Window, incomes []Income) IncomeSummary {
	var s split
	byType := map[IncomeType]decimal.Decimal{}
	count := 0
	for _, i := range incomes {
		if !w.Contains(i.Date) {
			continue
		}
		count++
		s.add(i.Amount, i.IsRecurring)
		byType[i.Type] = byType[i.Type].Add(i.Amount)
	}
	total, rec, nonRec := s.floats()
	return IncomeSummary{
		Month:        p.Month(),
		Year:         p.Year,
		Total:        total,
		Recurring:    rec,
		NonRecurring: nonRec,
		ByType:       floatMap(byType),
		Count:        count,
	}
}

// SummarizeExpenses aggregates the expenses dated inside w. Expenses without a
// payment method are left out of ByPaymentMethod.
func SummarizeExpenses(p Period, w Window, expenses []Expense) ExpenseSummary {
	var s split
	byCategory := map[ExpenseCategory]decimal.Decimal{}
	byMethod := map[PaymentMethod]decimal.Decimal{}
	count := 0
	for _, e := range expenses {
		if !w.Contains(e.Date) {
			continue
		}
		count++
		s.add(e.Amount, e.IsRecurring)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		if e.PaymentMethod != nil {
			byMethod[*e.PaymentMethod] = byMethod[*e.PaymentMethod].Add(e.Amount)
		}
	}
	total, rec, nonRec := s.floats()
	return ExpenseSummary{
		Month:           p.Month(),
		Year:            p.Year,
		Total:           total,
		Recurring:       rec,
		NonRecurring:    nonRec,
		ByCategory:      floatMap(byCategory),
		ByPaymentMethod: floatMap(byMethod),
		Count:           count,
	}
}
