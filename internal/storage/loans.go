package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const loanColumns = "id, user_id, name, lender, principal_amount, remaining_balance, interest_rate, currency, start_date, end_date, status, notes, created_at, updated_at"

func scanLoan(row rowScanner) (core.Loan, error) {
	var l core.Loan
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Lender, &l.PrincipalAmount, &l.RemainingBalance, &l.InterestRate,
		&l.Currency, timeCol{&l.StartDate}, nullTimeCol{&l.EndDate}, &l.Status, &l.Notes,
		timeCol{&l.CreatedAt}, timeCol{&l.UpdatedAt})
	return l, err
}

func (r *SQLiteRepository) CreateLoan(ctx context.Context, l core.Loan) (core.Loan, error) {
	if l.Status == "" {
		l.Status = core.LoanActive
	}
	l.ID = newID()
	l.CreatedAt = r.timestamp()
	l.UpdatedAt = l.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO loans ("+loanColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.ID, l.UserID, l.Name, l.Lender, l.PrincipalAmount, l.RemainingBalance, l.InterestRate, l.Currency,
		formatTime(l.StartDate), formatTimePtr(l.EndDate), l.Status, l.Notes,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt))
	if err != nil {
		return core.Loan{}, fmt.Errorf("insert loan: %w", err)
	}
	return l, nil
}

// ListLoans returns owner's loans, newest first. A non-empty status narrows the list.
func (r *SQLiteRepository) ListLoans(ctx context.Context, owner string, status core.LoanStatus) ([]core.Loan, error) {
	query := "SELECT " + loanColumns + " FROM loans WHERE user_id = ?"
	args := []any{owner}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	loans, err := queryAll(ctx, r.db, scanLoan, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (r *SQLiteRepository) GetLoan(ctx context.Context, owner, id string) (core.Loan, error) {
	l, err := queryOne(ctx, r.db, scanLoan, "SELECT "+loanColumns+" FROM loans WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.Loan{}, fmt.Errorf("get loan: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) UpdateLoan(ctx context.Context, owner, id string, patch core.LoanPatch) (core.Loan, error) {
	l, err := r.GetLoan(ctx, owner, id)
	if err != nil {
		return core.Loan{}, err
	}
	if !patch.Apply(&l) {
		return l, nil
	}
	l.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE loans SET name = ?, lender = ?, principal_amount = ?, remaining_balance = ?,
		interest_rate = ?, currency = ?, start_date = ?, end_date = ?, status = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		l.Name, l.Lender, l.PrincipalAmount, l.RemainingBalance, l.InterestRate, l.Currency,
		formatTime(l.StartDate), formatTimePtr(l.EndDate), l.Status, l.Notes, formatTime(l.UpdatedAt), id, owner)
	if err != nil {
		return core.Loan{}, fmt.Errorf("update loan: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) DeleteLoan(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "loans", owner, id); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return nil
}
