// Package export writes incomes and expenses to an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"wealth/internal/core"
)

const (
	IncomesSheet  = "Incomes"
	ExpensesSheet = "Expenses"

	dateLayout = "2006-01-02"
)

var (
	incomeHeadings  = []string{"ID", "Date", "Type", "Description", "Amount", "Currency", "Recurring", "Frequency", "Notes"}
	expenseHeadings = []string{"ID", "Date", "Category", "Description", "Amount", "Currency", "Recurring", "Frequency", "Payment Method", "Notes"}
)

// Workbook builds a file with one sheet per transaction kind. Amounts are
// written as numbers so spreadsheet formulas keep working.
func Workbook(incomes []core.Income, expenses []core.Expense) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty.
	if err := f.SetSheetName("Sheet1", IncomesSheet); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(ExpensesSheet); err != nil {
		return nil, fmt.Errorf("create %s sheet: %w", ExpensesSheet, err)
	}

	incomeRows := make([][]any, 0, len(incomes))
	for _, i := range incomes {
		incomeRows = append(incomeRows, []any{
			i.ID,
			i.Date.Format(dateLayout),
			string(i.Type),
			deref(i.Description),
			core.Float(i.Amount),
			string(i.Currency),
			yesNo(i.IsRecurring),
			frequency(i.Frequency),
			deref(i.Notes),
		})
	}
	if err := writeSheet(f, IncomesSheet, incomeHeadings, incomeRows); err != nil {
		return nil, err
	}

	expenseRows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		method := ""
		if e.PaymentMethod != nil {
			method = string(*e.PaymentMethod)
		}
		expenseRows = append(expenseRows, []any{
			e.ID,
			e.Date.Format(dateLayout),
			string(e.Category),
			deref(e.Description),
			core.Float(e.Amount),
			string(e.Currency),
			yesNo(e.IsRecurring),
			frequency(e.Frequency),
			method,
			deref(e.Notes),
		})
	}
	if err := writeSheet(f, ExpensesSheet, expenseHeadings, expenseRows); err != nil {
		return nil, err
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, incomes []core.Income, expenses []core.Expense) error {
	f, err := Workbook(incomes, expenses)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headings []string, rows [][]any) error {
	header := make([]any, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for n, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, n+2, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func frequency(f *core.Frequency) string {
	if f == nil {
		return ""
	}
	return string(*f)
}
