package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wealth/internal/amqp"
)

// EventSource delivers transaction events until ctx is cancelled.
type EventSource interface {
	ConsumeTransactionEvents(ctx context.Context, handler func(context.Context, *amqp.TransactionEvent) error) error
}

// Runner owns the consume loop of a MirrorWorker.
type Runner struct {
	source EventSource
	worker *MirrorWorker
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
	err     error
}

func NewRunner(source EventSource, worker *MirrorWorker, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{source: source, worker: worker, logger: logger}
}

// Start begins consuming in the background. Returns an error if already running.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("mirror runner is already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel
	r.doneCh = make(chan struct{})
	r.err = nil
	r.mu.Unlock()

	go r.run(runCtx)

	r.logger.InfoContext(ctx, "Mirror runner started")
	return nil
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.doneCh)

	err := r.source.ConsumeTransactionEvents(ctx, r.worker.HandleEvent)
	if err != nil && !errors.Is(err, context.Canceled) {
		r.logger.ErrorContext(ctx, "Mirror consumer stopped", "error", err)
	}

	r.mu.Lock()
	r.running = false
	if !errors.Is(err, context.Canceled) {
		r.err = err
	}
	r.mu.Unlock()
}

// Stop cancels the consumer and waits for it to return or ctx to expire.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel, done := r.cancel, r.doneCh
	r.mu.Unlock()

	cancel()

	select {
	case <-done:
		r.logger.InfoContext(ctx, "Mirror runner stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.WarnContext(ctx, "Mirror runner stop timed out")
		return ctx.Err()
	}
}

// Done is closed when the current run ends, whether stopped or failed.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doneCh
}

func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Err reports why the consumer exited on its own, if it did.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
