// Package worker runs allocations for queued and stale clients. The
// engine itself is synchronous and stateless; the worker supplies the
// batch concurrency and the retry policy around persistence conflicts.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nestegg/internal/amqp"
	"nestegg/internal/engine"
	"nestegg/internal/store"
)

// conflictRetries bounds how often one client is re-run after a
// concurrent profile update before the request goes back to the queue.
const conflictRetries = 3

type AllocWorker struct {
	store       store.Store
	engine      *engine.Engine
	mirror      store.ResultWriter // optional secondary writer (sheet deliverable)
	batchSize   int
	concurrency int
}

func New(st store.Store, eng *engine.Engine, mirror store.ResultWriter, batchSize, concurrency int) *AllocWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	if concurrency < 1 {
		concurrency = 4
	}
	return &AllocWorker{
		store:       st,
		engine:      eng,
		mirror:      mirror,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// HandleRequest processes one queued allocation request. Faults that a
// redelivery cannot fix, a missing client or a configuration error, are
// logged and swallowed so the message is acked instead of cycling
// through the queue forever and starving other clients' requests.
// Transient failures propagate and the delivery is requeued.
func (w *AllocWorker) HandleRequest(ctx context.Context, msg *amqp.AllocationRequest) error {
	slog.InfoContext(ctx, "processing allocation request",
		"client_id", msg.ClientID, "version", msg.Version)

	err := w.allocate(ctx, msg.ClientID)
	if err == nil {
		return nil
	}
	if engine.IsConfigurationError(err) || errors.Is(err, store.ErrNotFound) {
		slog.ErrorContext(ctx, "dropping unprocessable allocation request",
			"client_id", msg.ClientID, "version", msg.Version, "error", err)
		return nil
	}
	return err
}

// allocate runs the engine for one client and persists the result.
// A version conflict means the profile changed mid-run; the run is
// simply repeated against the fresh profile, which is safe because the
// engine is idempotent. Configuration errors are surfaced and not
// retried: they signal a missing strategy or limit entry, not a
// transient condition.
func (w *AllocWorker) allocate(ctx context.Context, clientID string) error {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		profile, err := w.store.GetProfile(ctx, clientID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		result, err := w.engine.Run(profile)
		if err != nil {
			if engine.IsConfigurationError(err) {
				slog.ErrorContext(ctx, "configuration error, operator attention required",
					"client_id", clientID, "error", err)
			}
			return fmt.Errorf("run engine: %w", err)
		}

		err = w.store.WriteResult(ctx, result, profile.Version)
		if errors.Is(err, store.ErrConflict) {
			slog.WarnContext(ctx, "profile changed during run, retrying",
				"client_id", clientID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return fmt.Errorf("write result: %w", err)
		}

		if w.mirror != nil {
			if err := w.mirror.WriteResult(ctx, result, profile.Version); err != nil {
				// The sheet is a deliverable mirror, not the system of
				// record; the periodic scan will rewrite it.
				slog.ErrorContext(ctx, "failed to mirror result",
					"client_id", clientID, "error", err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: gave up after %d attempts for client %s",
		store.ErrConflict, conflictRetries, clientID)
}

// ProcessStale recomputes every client whose profile changed since the
// last persisted allocation. Clients run concurrently up to the
// configured limit; one client's failure never blocks the others.
func (w *AllocWorker) ProcessStale(ctx context.Context) error {
	stale, err := w.store.ListStale(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list stale clients: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "processing stale clients", "count", len(stale))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, clientID := range stale {
		g.Go(func() error {
			if err := w.allocate(ctx, clientID); err != nil {
				slog.ErrorContext(ctx, "allocation failed",
					"client_id", clientID, "error", err)
			}
			// Per-client failures are logged, never propagated: a batch
			// continues with the remaining clients.
			return nil
		})
	}
	return g.Wait()
}
