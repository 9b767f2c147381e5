package storage

import (
	"context"
	"fmt"
	"strings"

	"wealth/internal/core"
)

// PaymentKind selects the sub-record table attached to a holding.
type PaymentKind string

const (
	Dividends      PaymentKind = "dividends"
	Distributions  PaymentKind = "distributions"
	CouponPayments PaymentKind = "coupon_payments"
)

// parent returns the holding table a payment kind belongs to.
func (k PaymentKind) parent() (string, error) {
	switch k {
	case Dividends:
		return "stocks", nil
	case Distributions:
		return "etfs", nil
	case CouponPayments:
		return "eurobonds", nil
	}
	return "", fmt.Errorf("%w: unknown payment kind %q", core.ErrInvalidInput, string(k))
}

func scanPayment(row rowScanner) (core.Payment, error) {
	var p core.Payment
	err := row.Scan(&p.ID, &p.HoldingID, &p.Amount, &p.Currency,
		timeCol{&p.PaymentDate}, &p.Notes, timeCol{&p.CreatedAt})
	return p, err
}

const paymentColumns = "id, holding_id, amount, currency, payment_date, notes, created_at"

// AddPayment attaches a payment to one of owner's holdings.
func (r *SQLiteRepository) AddPayment(ctx context.Context, kind PaymentKind, owner, holdingID string, p core.Payment) (core.Payment, error) {
	parent, err := kind.parent()
	if err != nil {
		return core.Payment{}, err
	}

	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+parent+" WHERE "+ownedBy, holdingID, owner).Scan(&exists)
	if err != nil {
		return core.Payment{}, fmt.Errorf("check holding: %w", err)
	}
	if exists == 0 {
		return core.Payment{}, core.ErrNotFound
	}

	p.ID = newID()
	p.HoldingID = holdingID
	p.CreatedAt = r.timestamp()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO "+string(kind)+" ("+paymentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.HoldingID, p.Amount, p.Currency, formatTime(p.PaymentDate), p.Notes, formatTime(p.CreatedAt))
	if err != nil {
		return core.Payment{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	return p, nil
}

// loadPayments fetches payments for the given holdings, newest payment first.
func (r *SQLiteRepository) loadPayments(ctx context.Context, kind PaymentKind, holdingIDs []string) (map[string][]core.Payment, error) {
	out := make(map[string][]core.Payment, len(holdingIDs))
	if len(holdingIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(holdingIDs)), ",")
	args := make([]any, len(holdingIDs))
	for i, id := range holdingIDs {
		args[i] = id
	}

	payments, err := queryAll(ctx, r.db, scanPayment,
		"SELECT "+paymentColumns+" FROM "+string(kind)+
			" WHERE holding_id IN ("+placeholders+") ORDER BY payment_date DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	for _, p := range payments {
		out[p.HoldingID] = append(out[p.HoldingID], p)
	}
	return out, nil
}

// paymentsOrEmpty never returns nil so JSON shows [] for a holding without payments.
func paymentsOrEmpty(m map[string][]core.Payment, id string) []core.Payment {
	if ps, ok := m[id]; ok {
		return ps
	}
	return []core.Payment{}
}
