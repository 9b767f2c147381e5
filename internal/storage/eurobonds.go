package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

const eurobondColumns = "id, user_id, name, isin, face_value, purchase_price, quantity, coupon_rate, currency, purchase_date, maturity_date, coupon_frequency, broker, notes, created_at, updated_at"

func scanEurobond(row rowScanner) (core.Eurobond, error) {
	var e core.Eurobond
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.ISIN, &e.FaceValue, &e.PurchasePrice, &e.Quantity, &e.CouponRate,
		&e.Currency, timeCol{&e.PurchaseDate}, timeCol{&e.MaturityDate}, &e.CouponFrequency,
		&e.Broker, &e.Notes, timeCol{&e.CreatedAt}, timeCol{&e.UpdatedAt})
	return e, err
}

func (r *SQLiteRepository) CreateEurobond(ctx context.Context, e core.Eurobond) (core.Eurobond, error) {
	if e.CouponFrequency == 0 {
		e.CouponFrequency = core.DefaultCouponFrequency
	}
	e.ID = newID()
	e.CreatedAt = r.timestamp()
	e.UpdatedAt = e.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO eurobonds ("+eurobondColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.Name, e.ISIN, e.FaceValue, e.PurchasePrice, e.Quantity, e.CouponRate, e.Currency,
		formatTime(e.PurchaseDate), formatTime(e.MaturityDate), e.CouponFrequency,
		e.Broker, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return core.Eurobond{}, fmt.Errorf("insert eurobond: %w", err)
	}
	e.CouponPayments = []core.Payment{}
	return e, nil
}

// ListEurobonds returns owner's bonds ordered by maturity, soonest first.
func (r *SQLiteRepository) ListEurobonds(ctx context.Context, owner string) ([]core.Eurobond, error) {
	bonds, err := queryAll(ctx, r.db, scanEurobond,
		"SELECT "+eurobondColumns+" FROM eurobonds WHERE user_id = ? ORDER BY maturity_date ASC, rowid ASC", owner)
	if err != nil {
		return nil, fmt.Errorf("list eurobonds: %w", err)
	}

	ids := make([]string, len(bonds))
	for i, b := range bonds {
		ids[i] = b.ID
	}
	coupons, err := r.loadPayments(ctx, CouponPayments, ids)
	if err != nil {
		return nil, err
	}
	for i := range bonds {
		bonds[i].CouponPayments = paymentsOrEmpty(coupons, bonds[i].ID)
	}
	return bonds, nil
}

func (r *SQLiteRepository) GetEurobond(ctx context.Context, owner, id string) (core.Eurobond, error) {
	e, err := queryOne(ctx, r.db, scanEurobond,
		"SELECT "+eurobondColumns+" FROM eurobonds WHERE "+ownedBy, id, owner)
	if err != nil {
		return core.Eurobond{}, fmt.Errorf("get eurobond: %w", err)
	}
	coupons, err := r.loadPayments(ctx, CouponPayments, []string{e.ID})
	if err != nil {
		return core.Eurobond{}, err
	}
	e.CouponPayments = paymentsOrEmpty(coupons, e.ID)
	return e, nil
}

func (r *SQLiteRepository) UpdateEurobond(ctx context.Context, owner, id string, patch core.EurobondPatch) (core.Eurobond, error) {
	e, err := r.GetEurobond(ctx, owner, id)
	if err != nil {
		return core.Eurobond{}, err
	}
	if !patch.Apply(&e) {
		return e, nil
	}
	e.UpdatedAt = r.timestamp()
	err = r.execOwned(ctx, `UPDATE eurobonds SET name = ?, isin = ?, face_value = ?, purchase_price = ?, quantity = ?,
		coupon_rate = ?, currency = ?, purchase_date = ?, maturity_date = ?, coupon_frequency = ?, broker = ?, notes = ?,
		updated_at = ? WHERE `+ownedBy,
		e.Name, e.ISIN, e.FaceValue, e.PurchasePrice, e.Quantity, e.CouponRate, e.Currency,
		formatTime(e.PurchaseDate), formatTime(e.MaturityDate), e.CouponFrequency, e.Broker, e.Notes,
		formatTime(e.UpdatedAt), id, owner)
	if err != nil {
		return core.Eurobond{}, fmt.Errorf("update eurobond: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteEurobond(ctx context.Context, owner, id string) error {
	if err := r.deleteOwned(ctx, "eurobonds", owner, id); err != nil {
		return fmt.Errorf("delete eurobond: %w", err)
	}
	return nil
}
