package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const etfColumns = "id, user_id, symbol, name, quantity, purchase_price, currency, purchase_date, expense_ratio, broker, notes, created_at, updated_at"

func scanETF(row rowScanner) (core.ETF, error) {
	var e core.ETF
	err := row.Scan(&e.ID, &e.UserID, &e.Symbol, &e.Name, &e.Quantity, &e.PurchasePrice, &e.Currency,
		timeCol{&e.PurchaseDate}, &e.ExpenseRatio, &e.Broker, &e.Notes, timeCol{&e.CreatedAt}, timeCol{&e.UpdatedAt})
	return e, err
}

func (r *SQLiteRepository) CreateETF(ctx context.Context, e core.ETF) (core.ETF, error) {
	e.ID = newID()
	e.CreatedAt = r.timestamp()
	e.UpdatedAt = e.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO etfs ("+etfColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.Symbol, e.Name, e.Quantity, e.PurchasePrice, e.Currency,
		formatTime(e.PurchaseDate), e.ExpenseRatio, e.Broker, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return core.ETF{}, fmt.Errorf("insert etf: %w", err)
	}
	e.Distributions = []core.Payment{}
	return e, nil
}

func (r *SQLiteRepository) ListETFs(ctx context.Context, owner string) ([]core.ETF, error) {
	etfs, err := queryAll(ctx, r.db, scanETF,
		"SELECT "+etfColumns+" FROM etfs WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list etfs: %w", err)
	}

	ids := make([]string, len(etfs))
	for i, e := range etfs {
		ids[i] = e.ID
	}
	distributions, err := r.loadPayments(ctx, Distributions, ids)
	if err != nil {
		return nil, err
	}
	for i := range etfs {
		etfs[i].Distributions = paymentsOrEmpty(distributions, etfs[i].ID)
	}
	return etfs, nil
}

func (r *SQLiteRepository) GetETF(ctx context.Context, owner, id string) (core.ETF, error) {
	e, err := queryOne(ctx, r.db, scanETF,
		"SELECT "+etfColumns+" FROM etfs WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.ETF{}, fmt.Errorf("get etf: %w", err)
	}
	distributions, err := r.loadPayments(ctx, Distributions, []string{e.ID})
	if err != nil {
		return core.ETF{}, err
	}
	e.Distributions = paymentsOrEmpty(distributions, e.ID)
	return e, nil
}

func (r *SQLiteRepository) UpdateETF(ctx context.Context, owner, id string, patch core.ETFPatch) (core.ETF, error) {
	e, err := r.GetETF(ctx, owner, id)
	if err != nil {
		return core.ETF{}, err
	}
	if !patch.Apply(&e) {
		return e, nil
	}
	e.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE etfs SET symbol = ?, name = ?, quantity = ?, purchase_price = ?, currency = ?,
		purchase_date = ?, expense_ratio = ?, broker = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		e.Symbol, e.Name, e.Quantity, e.PurchasePrice, e.Currency,
		formatTime(e.PurchaseDate), e.ExpenseRatio, e.Broker, e.Notes, formatTime(e.UpdatedAt), id, owner)
	if err != nil {
		return core.ETF{}, fmt.Errorf("update etf: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteETF(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "etfs", owner, id); err != nil {
		return fmt.Errorf("delete etf: %w", err)
	}
	return nil
}
