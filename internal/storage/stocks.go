package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const stockColumns = "id, user_id, symbol, name, quantity, purchase_price, currency, purchase_date, broker, notes, created_at, updated_at"

func scanStock(row rowScanner) (core.Stock, error) {
	var s core.Stock
	err := row.Scan(&s.ID, &s.UserID, &s.Symbol, &s.Name, &s.Quantity, &s.PurchasePrice, &s.Currency,
		timeCol{&s.PurchaseDate}, &s.Broker, &s.Notes, timeCol{&s.CreatedAt}, timeCol{&s.UpdatedAt})
	return s, err
}

func (r *SQLiteRepository) CreateStock(ctx context.Context, s core.Stock) (core.Stock, error) {
	s.ID = newID()
	s.CreatedAt = r.timestamp()
	s.UpdatedAt = s.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO stocks ("+stockColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.UserID, s.Symbol, s.Name, s.Quantity, s.PurchasePrice, s.Currency,
		formatTime(s.PurchaseDate), s.Broker, s.Notes, formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return core.Stock{}, fmt.Errorf("insert stock: %w", err)
	}
	s.Dividends = []core.Payment{}
	return s, nil
}

// ListStocks returns owner's stocks, newest first, with their dividends.
func (r *SQLiteRepository) ListStocks(ctx context.Context, owner string) ([]core.Stock, error) {
	stocks, err := queryAll(ctx, r.db, scanStock,
		"SELECT "+stockColumns+" FROM stocks WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	ids := make([]string, len(stocks))
	for i, s := range stocks {
		ids[i] = s.ID
	}
	dividends, err := r.loadPayments(ctx, Dividends, ids)
	if err != nil {
		return nil, err
	}
	for i := range stocks {
		stocks[i].Dividends = paymentsOrEmpty(dividends, stocks[i].ID)
	}
	return stocks, nil
}

func (r *SQLiteRepository) GetStock(ctx context.Context, owner, id string) (core.Stock, error) {
	s, err := queryOne(ctx, r.db, scanStock,
		"SELECT "+stockColumns+" FROM stocks WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.Stock{}, fmt.Errorf("get stock: %w", err)
	}
	dividends, err := r.loadPayments(ctx, Dividends, []string{s.ID})
	if err != nil {
		return core.Stock{}, err
	}
	s.Dividends = paymentsOrEmpty(dividends, s.ID)
	return s, nil
}

// UpdateStock applies only the fields present in patch.
func (r *SQLiteRepository) UpdateStock(ctx context.Context, owner, id string, patch core.StockPatch) (core.Stock, error) {
	s, err := r.GetStock(ctx, owner, id)
	if err != nil {
		return core.Stock{}, err
	}
	if !patch.Apply(&s) {
		return s, nil
	}
	s.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE stocks SET symbol = ?, name = ?, quantity = ?, purchase_price = ?, currency = ?,
		purchase_date = ?, broker = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		s.Symbol, s.Name, s.Quantity, s.PurchasePrice, s.Currency,
		formatTime(s.PurchaseDate), s.Broker, s.Notes, formatTime(s.UpdatedAt), id, owner)
	if err != nil {
		return core.Stock{}, fmt.Errorf("update stock: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) DeleteStock(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "stocks", owner, id); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
