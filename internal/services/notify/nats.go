package notify

import (
	"context"
	"strings"
	"time"

	"github.com/renwic/trusthub/internal/domain/enums"
)

const defaultSubjectPrefix = "trusthub"

type Publisher interface {
	Publish(subject string, data any) error
}

// NATSDispatcher publishes events as JSON envelopes on
// <prefix>.match.created and <prefix>.prop.received.
type NATSDispatcher struct {
	publisher Publisher
	prefix    string
	now       func() time.Time
}

func NewNATSDispatcher(publisher Publisher, subjectPrefix string) *NATSDispatcher {
	prefix := strings.Trim(strings.TrimSpace(subjectPrefix), ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return &NATSDispatcher{
		publisher: publisher,
		prefix:    prefix,
		now:       time.Now,
	}
}

func (d *NATSDispatcher) MatchCreated(ctx context.Context, event MatchCreatedEvent) error {
	return d.publish(ctx, "match.created", enums.EventKindMatchCreated, event)
}

func (d *NATSDispatcher) PropReceived(ctx context.Context, event PropReceivedEvent) error {
	return d.publish(ctx, "prop.received", enums.EventKindPropReceived, event)
}

func (d *NATSDispatcher) Subject(suffix string) string {
	return d.prefix + "." + suffix
}

func (d *NATSDispatcher) publish(ctx context.Context, suffix string, kind enums.EventKind, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.publisher.Publish(d.Subject(suffix), Envelope{
		Kind:       kind,
		OccurredAt: d.now().UTC(),
		Payload:    payload,
	})
}
