package audit

import (
	"context"
	"log/slog"
	"time"

	id "altscore/pkg/domain"
)

// Emitter is the port domain services publish through.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// store for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, businessID id.BusinessID) ([]Event, error) {
	return p.store.ListByBusiness(ctx, businessID)
}

// NopEmitter discards events. Used when auditing is disabled.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) error { return nil }

// FailOpen wraps an emitter so sink failures are logged and swallowed. The
// decision path must never fail because the audit trail is unavailable.
type FailOpen struct {
	next   Emitter
	logger *slog.Logger
}

func NewFailOpen(next Emitter, logger *slog.Logger) *FailOpen {
	return &FailOpen{next: next, logger: logger}
}

func (f *FailOpen) Emit(ctx context.Context, event Event) error {
	if err := f.next.Emit(ctx, event); err != nil && f.logger != nil {
		f.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"business_id", event.BusinessID,
			"error", err,
		)
	}
	return nil
}
