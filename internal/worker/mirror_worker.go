package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wealth/internal/amqp"
	"wealth/internal/core"
	"wealth/internal/sheets"
)

// TransactionReader loads the current state of a record named by an event.
type TransactionReader interface {
	GetIncome(ctx context.Context, owner, id string) (core.Income, error)
	GetExpense(ctx context.Context, owner, id string) (core.Expense, error)
	ListIncomes(ctx context.Context, owner string, filter core.IncomeFilter) ([]core.Income, error)
	ListExpenses(ctx context.Context, owner string, filter core.ExpenseFilter) ([]core.Expense, error)
}

// MirrorWorker keeps a spreadsheet copy of every income and expense.
type MirrorWorker struct {
	store  TransactionReader
	sheets sheets.TransactionMirror
	logger *slog.Logger
}

func NewMirrorWorker(store TransactionReader, mirror sheets.TransactionMirror, logger *slog.Logger) *MirrorWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &MirrorWorker{store: store, sheets: mirror, logger: logger}
}

// HandleEvent applies one change event. Created and updated records are
// re-read from the database so the sheet always shows the latest state; a
// record that no longer exists is removed from the sheet instead.
func (w *MirrorWorker) HandleEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	kind, err := sheetKind(ev.Kind)
	if err != nil {
		return err
	}

	if ev.Action == amqp.ActionDeleted {
		return w.remove(ctx, kind, ev)
	}

	row, err := w.load(ctx, kind, ev.UserID, ev.ID)
	if errors.Is(err, core.ErrNotFound) {
		w.logger.InfoContext(ctx, "Record gone before mirroring, removing row",
			"kind", ev.Kind, "record_id", ev.ID)
		return w.remove(ctx, kind, ev)
	}
	if err != nil {
		return fmt.Errorf("load %s %s: %w", ev.Kind, ev.ID, err)
	}

	ref, err := w.sheets.Upsert(ctx, kind, row)
	if err != nil {
		return fmt.Errorf("mirror %s %s: %w", ev.Kind, ev.ID, err)
	}
	w.logger.InfoContext(ctx, "Mirrored transaction",
		"kind", ev.Kind, "action", ev.Action, "record_id", ev.ID, "sheets_ref", ref)
	return nil
}

func (w *MirrorWorker) remove(ctx context.Context, kind sheets.Kind, ev *amqp.TransactionEvent) error {
	if err := w.sheets.Delete(ctx, kind, ev.ID); err != nil {
		return fmt.Errorf("remove %s %s: %w", ev.Kind, ev.ID, err)
	}
	w.logger.InfoContext(ctx, "Removed mirrored transaction", "kind", ev.Kind, "record_id", ev.ID)
	return nil
}

func (w *MirrorWorker) load(ctx context.Context, kind sheets.Kind, owner, id string) (sheets.Row, error) {
	if kind == sheets.Incomes {
		in, err := w.store.GetIncome(ctx, owner, id)
		if err != nil {
			return sheets.Row{}, err
		}
		return sheets.IncomeRow(in), nil
	}
	ex, err := w.store.GetExpense(ctx, owner, id)
	if err != nil {
		return sheets.Row{}, err
	}
	return sheets.ExpenseRow(ex), nil
}

// Backfill mirrors every income and expense of one user. It recovers from
// events lost while the worker was down.
func (w *MirrorWorker) Backfill(ctx context.Context, owner string) (int, error) {
	incomes, err := w.store.ListIncomes(ctx, owner, core.IncomeFilter{})
	if err != nil {
		return 0, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := w.store.ListExpenses(ctx, owner, core.ExpenseFilter{})
	if err != nil {
		return 0, fmt.Errorf("list expenses: %w", err)
	}

	synced := 0
	for _, in := range incomes {
		if _, err := w.sheets.Upsert(ctx, sheets.Incomes, sheets.IncomeRow(in)); err != nil {
			return synced, fmt.Errorf("mirror income %s: %w", in.ID, err)
		}
		synced++
	}
	for _, ex := range expenses {
		if _, err := w.sheets.Upsert(ctx, sheets.Expenses, sheets.ExpenseRow(ex)); err != nil {
			return synced, fmt.Errorf("mirror expense %s: %w", ex.ID, err)
		}
		synced++
	}

	w.logger.InfoContext(ctx, "Backfill completed", "user_id", owner, "synced", synced)
	return synced, nil
}

func sheetKind(kind string) (sheets.Kind, error) {
	switch kind {
	case amqp.KindIncome:
		return sheets.Incomes, nil
	case amqp.KindExpense:
		return sheets.Expenses, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", kind)
}
