package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Operation produces the result for a single item. It is invoked at most once
// per item and receives the batch context, narrowed by WithTimeout when set.
type Operation[T, R any] func(ctx context.Context, item T) (R, error)

// Execute runs op over items with at most limit operations in flight and
// returns one Outcome per item, in input order.
//
// Workers share a single cursor; each claims the next index with an atomic
// increment, so every index is processed by exactly one worker. Only
// min(limit, len(items)) workers are started.
//
// Item failures, including panics inside op, are recorded in the matching
// Outcome and never stop the other workers. When ctx is done, workers stop
// claiming new indices, in-flight operations are left to finish, and every
// slot that never ran is returned as StatusCancelled.
//
// The returned error is non-nil only when the batch cannot start: a
// non-positive limit or a nil op, both wrapping ErrInvalidConfiguration.
func Execute[T, R any](ctx context.Context, items []T, limit int, op Operation[T, R], opts ...Option) ([]Outcome[R], error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfiguration, limit)
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operation is required", ErrInvalidConfiguration)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	outcomes := make([]Outcome[R], len(items))
	if len(items) == 0 {
		return outcomes, nil
	}

	workers := min(limit, len(items))
	r := &runner[T, R]{
		items:    items,
		op:       op,
		cfg:      cfg,
		outcomes: outcomes,
	}

	var wg conc.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			r.work(ctx)
		})
	}
	// Wait re-panics if a worker itself panicked; operation panics are
	// recovered per item in run and never reach this point.
	wg.Wait()

	r.cancelRemaining(ctx)

	cfg.logger.Debug("batch finished",
		slog.Int("items", len(items)),
		slog.Int("workers", workers))

	return outcomes, nil
}

type runner[T, R any] struct {
	items    []T
	op       Operation[T, R]
	cfg      *config
	outcomes []Outcome[R]

	// cursor is the next unclaimed index.
	cursor atomic.Int64
}

func (r *runner[T, R]) work(ctx context.Context) {
	n := int64(len(r.items))
	for {
		if ctx.Err() != nil {
			return
		}
		i := r.cursor.Add(1) - 1
		if i >= n {
			return
		}
		r.outcomes[i] = r.run(ctx, int(i))
	}
}

func (r *runner[T, R]) run(ctx context.Context, i int) Outcome[R] {
	if r.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.timeout)
		defer cancel()
	}

	var (
		value R
		err   error
		pc    panics.Catcher
	)
	pc.Try(func() {
		value, err = r.op(ctx, r.items[i])
	})

	if rec := pc.Recovered(); rec != nil {
		perr := &PanicError{Value: rec.Value, Stack: rec.Stack}
		r.cfg.logger.Error("batch item panicked",
			slog.Int("index", i),
			slog.Any("panic", rec.Value))
		return Failed[R](i, perr)
	}
	if err != nil {
		r.cfg.logger.Warn("batch item failed",
			slog.Int("index", i),
			slog.String("error", err.Error()))
		return Failed[R](i, err)
	}
	return Succeeded(i, value)
}

// cancelRemaining marks every slot that never ran. It runs after all workers
// have exited, so it is the only writer.
func (r *runner[T, R]) cancelRemaining(ctx context.Context) {
	var cancelled int
	for i := range r.outcomes {
		if r.outcomes[i].Status != StatusPending {
			continue
		}
		err := ErrCancelled
		if cause := ctx.Err(); cause != nil {
			err = fmt.Errorf("%w: %w", ErrCancelled, cause)
		}
		r.outcomes[i] = Cancelled[R](i, err)
		cancelled++
	}
	if cancelled > 0 {
		r.cfg.logger.Debug("batch cancelled before completion",
			slog.Int("cancelled", cancelled),
			slog.Int("items", len(r.outcomes)))
	}
}
