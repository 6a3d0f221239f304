package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/renwic/trusthub/internal/domain/enums"
)

type FailureCounter interface {
	NotificationFailed(kind string)
}

// BestEffort wraps a Dispatcher so delivery failures are logged and counted
// but never returned to the caller.
type BestEffort struct {
	next     Dispatcher
	logger   *zap.Logger
	failures FailureCounter
}

func NewBestEffort(next Dispatcher, logger *zap.Logger, failures FailureCounter) *BestEffort {
	if next == nil {
		next = Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BestEffort{next: next, logger: logger, failures: failures}
}

func (b *BestEffort) MatchCreated(ctx context.Context, event MatchCreatedEvent) error {
	if err := b.next.MatchCreated(ctx, event); err != nil {
		b.fail(enums.EventKindMatchCreated, err, zap.String("match_id", event.MatchID.String()))
	}
	return nil
}

func (b *BestEffort) PropReceived(ctx context.Context, event PropReceivedEvent) error {
	if err := b.next.PropReceived(ctx, event); err != nil {
		b.fail(enums.EventKindPropReceived, err, zap.String("testimonial_id", event.TestimonialID.String()))
	}
	return nil
}

func (b *BestEffort) fail(kind enums.EventKind, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", string(kind)), zap.Error(err))
	b.logger.Warn("notification dispatch failed", fields...)
	if b.failures != nil {
		b.failures.NotificationFailed(string(kind))
	}
}
