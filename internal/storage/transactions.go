package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wealth/internal/core"
)

const (
	incomeColumns  = "id, user_id, amount, currency, type, description, date, is_recurring, frequency, notes, created_at, updated_at"
	expenseColumns = "id, user_id, amount, currency, category, description, date, is_recurring, frequency, payment_method, notes, created_at, updated_at"
)

// filterBuilder accumulates AND-ed conditions for a listing query.
type filterBuilder struct {
	conds []string
	args  []any
}

func (f *filterBuilder) eq(col string, v string) {
	if v != "" {
		f.conds = append(f.conds, col+" = ?")
		f.args = append(f.args, v)
	}
}

func (f *filterBuilder) between(col string, from, to time.Time) {
	if !from.IsZero() {
		f.conds = append(f.conds, col+" >= ?")
		f.args = append(f.args, formatTime(from))
	}
	if !to.IsZero() {
		f.conds = append(f.conds, col+" <= ?")
		f.args = append(f.args, formatTime(to))
	}
}

func (f *filterBuilder) where() string {
	return strings.Join(f.conds, " AND ")
}

func scanIncome(row rowScanner) (core.Income, error) {
	var i core.Income
	err := row.Scan(&i.ID, &i.UserID, &i.Amount, &i.Currency, &i.Type, &i.Description, timeCol{&i.Date},
		&i.IsRecurring, &i.Frequency, &i.Notes, timeCol{&i.CreatedAt}, timeCol{&i.UpdatedAt})
	return i, err
}

func (r *SQLiteRepository) CreateIncome(ctx context.Context, i core.Income) (core.Income, error) {
	i.ID = newID()
	i.CreatedAt = r.timestamp()
	i.UpdatedAt = i.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO incomes ("+incomeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		i.ID, i.UserID, i.Amount, i.Currency, i.Type, i.Description, formatTime(i.Date),
		i.IsRecurring, i.Frequency, i.Notes, formatTime(i.CreatedAt), formatTime(i.UpdatedAt))
	if err != nil {
		return core.Income{}, fmt.Errorf("insert income: %w", err)
	}
	return i, nil
}

// ListIncomes returns owner's incomes, most recent date first.
func (r *SQLiteRepository) ListIncomes(ctx context.Context, owner string, filter core.IncomeFilter) ([]core.Income, error) {
	f := filterBuilder{conds: []string{"user_id = ?"}, args: []any{owner}}
	f.eq("type", string(filter.Type))
	f.between("date", filter.From, filter.To)

	query := "SELECT " + incomeColumns + " FROM incomes WHERE " + f.where() + " ORDER BY date DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	incomes, err := queryAll(ctx, r.db, scanIncome, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return incomes, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, owner, id string) (core.Income, error) {
	i, err := queryOne(ctx, r.db, scanIncome, "SELECT "+incomeColumns+" FROM incomes WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.Income{}, fmt.Errorf("get income: %w", err)
	}
	return i, nil
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, owner, id string, patch core.IncomePatch) (core.Income, error) {
	i, err := r.GetIncome(ctx, owner, id)
	if err != nil {
		return core.Income{}, err
	}
	if !patch.Apply(&i) {
		return i, nil
	}
	i.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE incomes SET amount = ?, currency = ?, type = ?, description = ?, date = ?,
		is_recurring = ?, frequency = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		i.Amount, i.Currency, i.Type, i.Description, formatTime(i.Date),
		i.IsRecurring, i.Frequency, i.Notes, formatTime(i.UpdatedAt), id, owner)
	if err != nil {
		return core.Income{}, fmt.Errorf("update income: %w", err)
	}
	return i, nil
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "incomes", owner, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Currency, &e.Category, &e.Description, timeCol{&e.Date},
		&e.IsRecurring, &e.Frequency, &e.PaymentMethod, &e.Notes, timeCol{&e.CreatedAt}, timeCol{&e.UpdatedAt})
	return e, err
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.ID = newID()
	e.CreatedAt = r.timestamp()
	e.UpdatedAt = e.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.Amount, e.Currency, e.Category, e.Description, formatTime(e.Date),
		e.IsRecurring, e.Frequency, e.PaymentMethod, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

// ListExpenses returns owner's expenses, most recent date first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, owner string, filter core.ExpenseFilter) ([]core.Expense, error) {
	f := filterBuilder{conds: []string{"user_id = ?"}, args: []any{owner}}
	f.eq("category", string(filter.Category))
	f.eq("payment_method", string(filter.PaymentMethod))
	f.between("date", filter.From, filter.To)

	query := "SELECT " + expenseColumns + " FROM expenses WHERE " + f.where() + " ORDER BY date DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	expenses, err := queryAll(ctx, r.db, scanExpense, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, owner, id string) (core.Expense, error) {
	e, err := queryOne(ctx, r.db, scanExpense, "SELECT "+expenseColumns+" FROM expenses WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, owner, id string, patch core.ExpensePatch) (core.Expense, error) {
	e, err := r.GetExpense(ctx, owner, id)
	if err != nil {
		return core.Expense{}, err
	}
	if !patch.Apply(&e) {
		return e, nil
	}
	e.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE expenses SET amount = ?, currency = ?, category = ?, description = ?, date = ?,
		is_recurring = ?, frequency = ?, payment_method = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		e.Amount, e.Currency, e.Category, e.Description, formatTime(e.Date),
		e.IsRecurring, e.Frequency, e.PaymentMethod, e.Notes, formatTime(e.UpdatedAt), id, owner)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "expenses", owner, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
