package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wealth/internal/core"
	"wealth/internal/sheets"
)

func TestStoreUpsertReplacesByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	row := sheets.Row{ID: "e1", Date: time.Now(), Category: "FOOD", Amount: decimal.NewFromInt(50), Currency: core.TRY}
	ref, err := s.Upsert(ctx, sheets.Expenses, row)
	if err != nil || ref != "mem:expense:1" {
		t.Fatalf("unexpected upsert: ref=%q err=%v", ref, err)
	}

	row.Amount = decimal.NewFromInt(75)
	ref, err = s.Upsert(ctx, sheets.Expenses, row)
	if err != nil || ref != "mem:expense:1" {
		t.Fatalf("unexpected re-upsert: ref=%q err=%v", ref, err)
	}

	rows := s.Rows(sheets.Expenses)
	if len(rows) != 1 || !rows[0].Amount.Equal(decimal.NewFromInt(75)) {
		t.Errorf("rows = %+v", rows)
	}
	if len(s.Rows(sheets.Incomes)) != 0 {
		t.Error("income tab should be empty")
	}
}

func TestStoreDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		s.Upsert(ctx, sheets.Incomes, sheets.Row{ID: id})
	}

	if err := s.Delete(ctx, sheets.Incomes, "b"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, sheets.Incomes, "missing"); err != nil {
		t.Errorf("deleting a missing row should succeed: %v", err)
	}

	rows := s.Rows(sheets.Incomes)
	if len(rows) != 2 || rows[0].ID != "a" || rows[1].ID != "c" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestStoreRejectsRowWithoutID(t *testing.T) {
	if _, err := New().Upsert(context.Background(), sheets.Incomes, sheets.Row{}); err == nil {
		t.Error("expected an error")
	}
}
