package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them, keeping the
// decision hot path free of sink latency. Append failures are logged and the
// event dropped.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.WarnContext(ctx, "audit append failed",
					"action", event.Action,
					"business_id", event.BusinessID,
					"error", err,
				)
			}
		}
	}
}

// ChannelEmitter feeds a Worker inbox without blocking the caller. Events are
// dropped when the buffer is full.
type ChannelEmitter struct {
	outbox chan<- Event
}

func NewChannelEmitter(outbox chan<- Event) *ChannelEmitter {
	return &ChannelEmitter{outbox: outbox}
}

func (c *ChannelEmitter) Emit(_ context.Context, event Event) error {
	select {
	case c.outbox <- event:
	default:
	}
	return nil
}
