package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const metalColumns = "id, user_id, name, quantity, purchase_price, purchase_date, purity, location, notes, created_at, updated_at"

// metalTable maps a metal to its holdings table. Gold and silver share a schema.
func metalTable(m core.Metal) (string, error) {
	switch m {
	case core.Gold:
		return "gold_holdings", nil
	case core.Silver:
		return "silver_holdings", nil
	}
	return "", fmt.Errorf("%w: unknown metal %q", core.ErrInvalidInput, string(m))
}

func scanMetalHolding(row rowScanner) (core.MetalHolding, error) {
	var h core.MetalHolding
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Quantity, &h.PurchasePrice, timeCol{&h.PurchaseDate},
		&h.Purity, &h.Location, &h.Notes, timeCol{&h.CreatedAt}, timeCol{&h.UpdatedAt})
	return h, err
}

func (r *SQLiteRepository) CreateMetalHolding(ctx context.Context, m core.Metal, h core.MetalHolding) (core.MetalHolding, error) {
	table, err := metalTable(m)
	if err != nil {
		return core.MetalHolding{}, err
	}
	h.ID = newID()
	h.CreatedAt = r.timestamp()
	h.UpdatedAt = h.CreatedAt
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO "+table+" ("+metalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		h.ID, h.UserID, h.Name, h.Quantity, h.PurchasePrice, formatTime(h.PurchaseDate),
		h.Purity, h.Location, h.Notes, formatTime(h.CreatedAt), formatTime(h.UpdatedAt))
	if err != nil {
		return core.MetalHolding{}, fmt.Errorf("insert %s holding: %w", m, err)
	}
	return h, nil
}

func (r *SQLiteRepository) ListMetalHoldings(ctx context.Context, m core.Metal, owner string) ([]core.MetalHolding, error) {
	table, err := metalTable(m)
	if err != nil {
		return nil, err
	}
	holdings, err := queryAll(ctx, r.db, scanMetalHolding,
		"SELECT "+metalColumns+" FROM "+table+" WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list %s holdings: %w", m, err)
	}
	return holdings, nil
}

func (r *SQLiteRepository) GetMetalHolding(ctx context.Context, m core.Metal, owner, id string) (core.MetalHolding, error) {
	table, err := metalTable(m)
	if err != nil {
		return core.MetalHolding{}, err
	}
	h, err := queryOne(ctx, r.db, scanMetalHolding,
		"SELECT "+metalColumns+" FROM "+table+" WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.MetalHolding{}, fmt.Errorf("get %s holding: %w", m, err)
	}
	return h, nil
}

func (r *SQLiteRepository) UpdateMetalHolding(ctx context.Context, m core.Metal, owner, id string, patch core.MetalHoldingPatch) (core.MetalHolding, error) {
	table, err := metalTable(m)
	if err != nil {
		return core.MetalHolding{}, err
	}
	h, err := r.GetMetalHolding(ctx, m, owner, id)
	if err != nil {
		return core.MetalHolding{}, err
	}
	if !patch.Apply(&h) {
		return h, nil
	}
	h.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, "UPDATE "+table+` SET name = ?, quantity = ?, purchase_price = ?, purchase_date = ?,
		purity = ?, location = ?, notes = ?, updated_at = ? WHERE `+ownedBy,
		h.Name, h.Quantity, h.PurchasePrice, formatTime(h.PurchaseDate), h.Purity, h.Location, h.Notes,
		formatTime(h.UpdatedAt), id, owner)
	if err != nil {
		return core.MetalHolding{}, fmt.Errorf("update %s holding: %w", m, err)
	}
	return h, nil
}

func (r *SQLiteRepository) DeleteMetalHolding(ctx context.Context, m core.Metal, owner, id string) error {
	table, err := metalTable(m)
	if err != nil {
		return err
	}
	if err := r.deleteOwned(ctx, table, owner, id); err != nil {
		return fmt.Errorf("delete %s holding: %w", m, err)
	}
	return nil
}
