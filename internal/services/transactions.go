package services

import (
	"context"
	"fmt"
	"log/slog"

	"wealth/internal/amqp"
	"wealth/internal/core"
)

// TransactionStore is the storage the transaction service writes through.
type TransactionStore interface {
	CreateIncome(ctx context.Context, i core.Income) (core.Income, error)
	UpdateIncome(ctx context.Context, owner, id string, patch core.IncomePatch) (core.Income, error)
	DeleteIncome(ctx context.Context, owner, id string) error
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, owner, id string, patch core.ExpensePatch) (core.Expense, error)
	DeleteExpense(ctx context.Context, owner, id string) error
}

// EventPublisher announces income and expense changes.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, ev *amqp.TransactionEvent) error
}

// TransactionService saves incomes and expenses and publishes a change event
// after every successful write. Publishing is best effort: the record is
// already stored, so a broker failure is logged and the request succeeds.
type TransactionService struct {
	store     TransactionStore
	publisher EventPublisher
	logger    *slog.Logger
}

// NewTransactionService accepts a nil publisher when messaging is disabled.
func NewTransactionService(store TransactionStore, publisher EventPublisher, logger *slog.Logger) *TransactionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionService{store: store, publisher: publisher, logger: logger}
}

func (s *TransactionService) CreateIncome(ctx context.Context, i core.Income) (core.Income, error) {
	created, err := s.store.CreateIncome(ctx, i)
	if err != nil {
		return core.Income{}, fmt.Errorf("save income: %w", err)
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionCreated, created.ID, created.UserID)
	return created, nil
}

func (s *TransactionService) UpdateIncome(ctx context.Context, owner, id string, patch core.IncomePatch) (core.Income, error) {
	updated, err := s.store.UpdateIncome(ctx, owner, id, patch)
	if err != nil {
		return core.Income{}, err
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionUpdated, id, owner)
	return updated, nil
}

func (s *TransactionService) DeleteIncome(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteIncome(ctx, owner, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionDeleted, id, owner)
	return nil
}

func (s *TransactionService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionCreated, created.ID, created.UserID)
	return created, nil
}

func (s *TransactionService) UpdateExpense(ctx context.Context, owner, id string, patch core.ExpensePatch) (core.Expense, error) {
	updated, err := s.store.UpdateExpense(ctx, owner, id, patch)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionUpdated, id, owner)
	return updated, nil
}

func (s *TransactionService) DeleteExpense(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteExpense(ctx, owner, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionDeleted, id, owner)
	return nil
}

func (s *TransactionService) publish(ctx context.Context, kind, action, id, owner string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, amqp.NewTransactionEvent(kind, action, id, owner)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			"kind", kind, "action", action, "record_id", id, "error", err)
	}
}
