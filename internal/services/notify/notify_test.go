package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/renwic/trusthub/internal/domain/enums"
)

type publisherStub struct {
	subjects []string
	payloads []any
	err      error
}

func (p *publisherStub) Publish(subject string, data any) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return p.err
}

type failingDispatcher struct{}

func (failingDispatcher) MatchCreated(context.Context, MatchCreatedEvent) error {
	return errors.New("broker down")
}

func (failingDispatcher) PropReceived(context.Context, PropReceivedEvent) error {
	return errors.New("broker down")
}

type counterStub struct {
	kinds []string
}

func (c *counterStub) NotificationFailed(kind string) {
	c.kinds = append(c.kinds, kind)
}

func TestNATSDispatcherSubjectsAndEnvelope(t *testing.T) {
	pub := &publisherStub{}
	d := NewNATSDispatcher(pub, "dating.")
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	matchID := uuid.New()
	if err := d.MatchCreated(context.Background(), MatchCreatedEvent{MatchID: matchID, RecipientIDs: []int64{1, 2}}); err != nil {
		t.Fatalf("match created: %v", err)
	}
	if err := d.PropReceived(context.Background(), PropReceivedEvent{ProfileID: 5}); err != nil {
		t.Fatalf("prop received: %v", err)
	}

	if len(pub.subjects) != 2 || pub.subjects[0] != "dating.match.created" || pub.subjects[1] != "dating.prop.received" {
		t.Fatalf("unexpected subjects: %v", pub.subjects)
	}
	env, ok := pub.payloads[0].(Envelope)
	if !ok {
		t.Fatalf("expected envelope payload, got %T", pub.payloads[0])
	}
	if env.Kind != enums.EventKindMatchCreated || !env.OccurredAt.Equal(now) {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if got := env.Payload.(MatchCreatedEvent).MatchID; got != matchID {
		t.Fatalf("unexpected match id in payload: %s", got)
	}
}

func TestNATSDispatcherDefaultPrefix(t *testing.T) {
	d := NewNATSDispatcher(&publisherStub{}, " ")
	if got := d.Subject("match.created"); got != "trusthub.match.created" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestBestEffortSuppressesFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	counter := &counterStub{}
	b := NewBestEffort(failingDispatcher{}, zap.New(core), counter)

	if err := b.MatchCreated(context.Background(), MatchCreatedEvent{MatchID: uuid.New()}); err != nil {
		t.Fatalf("expected suppressed error, got %v", err)
	}
	if err := b.PropReceived(context.Background(), PropReceivedEvent{}); err != nil {
		t.Fatalf("expected suppressed error, got %v", err)
	}

	if logs.Len() != 2 {
		t.Fatalf("expected 2 warn logs, got %d", logs.Len())
	}
	if len(counter.kinds) != 2 || counter.kinds[0] != "match_created" || counter.kinds[1] != "prop_received" {
		t.Fatalf("unexpected failure counts: %v", counter.kinds)
	}
}
