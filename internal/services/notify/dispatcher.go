package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/enums"
)

// Dispatcher hands events to the delivery collaborator. Callers treat every
// call as fire-and-forget.
type Dispatcher interface {
	MatchCreated(ctx context.Context, event MatchCreatedEvent) error
	PropReceived(ctx context.Context, event PropReceivedEvent) error
}

type MatchCreatedEvent struct {
	MatchID         uuid.UUID `json:"match_id"`
	ProfileAID      int64     `json:"profile_a_id"`
	ProfileBID      int64     `json:"profile_b_id"`
	RecipientIDs    []int64   `json:"recipient_user_ids"`
	SharedInterests []string  `json:"shared_interests,omitempty"`
	Compatibility   int       `json:"compatibility"`
	CreatedAt       time.Time `json:"created_at"`
}

type PropReceivedEvent struct {
	TestimonialID uuid.UUID `json:"testimonial_id"`
	ProfileID     int64     `json:"profile_id"`
	RecipientID   int64     `json:"recipient_user_id"`
	AuthorName    string    `json:"author_name"`
	Approved      bool      `json:"approved"`
	CreatedAt     time.Time `json:"created_at"`
}

// Envelope is the wire shape published for every event kind.
type Envelope struct {
	Kind       enums.EventKind `json:"kind"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    any             `json:"payload"`
}

type Noop struct{}

func (Noop) MatchCreated(context.Context, MatchCreatedEvent) error { return nil }

func (Noop) PropReceived(context.Context, PropReceivedEvent) error { return nil }
