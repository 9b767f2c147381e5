package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const cashColumns = "id, user_id, account_name, balance, currency, account_type, bank_name, notes, created_at, updated_at"

func scanCashAccount(row rowScanner) (core.CashAccount, error) {
	var a core.CashAccount
	err := row.Scan(&a.ID, &a.UserID, &a.AccountName, &a.Balance, &a.Currency,
		&a.AccountType, &a.BankName, &a.Notes, timeCol{&a.CreatedAt}, timeCol{&a.UpdatedAt})
	return a, err
}

func (r *SQLiteRepository) CreateCashAccount(ctx context.Context, a core.CashAccount) (core.CashAccount, error) {
	a.ID = newID()
	a.CreatedAt = r.timestamp()
	a.UpdatedAt = a.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cash_accounts ("+cashColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.AccountName, a.Balance, a.Currency, a.AccountType, a.BankName, a.Notes,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return core.CashAccount{}, fmt.Errorf("insert cash account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) ListCashAccounts(ctx context.Context, owner string) ([]core.CashAccount, error) {
	accounts, err := queryAll(ctx, r.db, scanCashAccount,
		"SELECT "+cashColumns+" FROM cash_accounts WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list cash accounts: %w", err)
	}
	return accounts, nil
}

func (r *SQLiteRepository) GetCashAccount(ctx context.Context, owner, id string) (core.CashAccount, error) {
	a, err := queryOne(ctx, r.db, scanCashAccount,
		"SELECT "+cashColumns+" FROM cash_accounts WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.CashAccount{}, fmt.Errorf("get cash account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) UpdateCashAccount(ctx context.Context, owner, id string, patch core.CashAccountPatch) (core.CashAccount, error) {
	a, err := r.GetCashAccount(ctx, owner, id)
	if err != nil {
		return core.CashAccount{}, err
	}
	if !patch.Apply(&a) {
		return a, nil
	}
	a.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE cash_accounts SET account_name = ?, balance = ?, currency = ?, account_type = ?,
		bank_name = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		a.AccountName, a.Balance, a.Currency, a.AccountType, a.BankName, a.Notes, formatTime(a.UpdatedAt), id, owner)
	if err != nil {
		return core.CashAccount{}, fmt.Errorf("update cash account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) DeleteCashAccount(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "cash_accounts", owner, id); err != nil {
		return fmt.Errorf("delete cash account: %w", err)
	}
	return nil
}
