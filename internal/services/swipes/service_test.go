package swipes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/enums"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/repo/memory"
	notifysvc "github.com/renwic/trusthub/internal/services/notify"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
)

type notifierStub struct {
	mu      sync.Mutex
	matches []notifysvc.MatchCreatedEvent
	err     error
}

func (n *notifierStub) MatchCreated(_ context.Context, event notifysvc.MatchCreatedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.matches = append(n.matches, event)
	return n.err
}

func (n *notifierStub) PropReceived(context.Context, notifysvc.PropReceivedEvent) error {
	return nil
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.matches)
}

type rateLimiterStub struct {
	allowed    bool
	retryAfter int64
	calls      int
}

func (r *rateLimiterStub) AllowSwipe(context.Context, int64) (int64, bool, error) {
	r.calls++
	return r.retryAfter, r.allowed, nil
}

type harness struct {
	svc      *Service
	swipes   *memory.SwipeRepo
	matches  *memory.MatchRepo
	notifier *notifierStub
	alice    model.Profile
	bob      model.Profile
}

func newHarness(t *testing.T) harness {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	profiles := memory.NewProfileRepo(db)

	alice, err := profiles.UpsertByUserID(ctx, model.Profile{UserID: 101, Interests: []string{"hiking", "jazz"}})
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := profiles.UpsertByUserID(ctx, model.Profile{UserID: 202, Interests: []string{"jazz", "chess"}})
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	h := harness{
		swipes:   memory.NewSwipeRepo(db),
		matches:  memory.NewMatchRepo(db),
		notifier: &notifierStub{},
		alice:    alice,
		bob:      bob,
	}
	h.svc = NewService(Dependencies{
		Profiles: profiles,
		Swipes:   h.swipes,
		Matches:  h.matches,
		Notifier: h.notifier,
	})
	h.svc.now = func() time.Time { return time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC) }
	return h
}

func TestMutualLikeCreatesOneMatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
	if err != nil {
		t.Fatalf("alice swipe: %v", err)
	}
	if first.Matched {
		t.Fatalf("one-sided like must not match")
	}

	second, err := h.svc.Swipe(ctx, h.bob.UserID, h.alice.ID, "super_like")
	if err != nil {
		t.Fatalf("bob swipe: %v", err)
	}
	if !second.Matched || !second.Created {
		t.Fatalf("expected created match, got %+v", second)
	}

	repeat, err := h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
	if err != nil {
		t.Fatalf("repeat swipe: %v", err)
	}
	if !repeat.Matched || repeat.Created || repeat.MatchID != second.MatchID {
		t.Fatalf("repeat like must reuse the match, got %+v", repeat)
	}

	if h.matches.Count() != 1 {
		t.Fatalf("expected exactly one match, got %d", h.matches.Count())
	}
	if h.notifier.count() != 1 {
		t.Fatalf("expected a single match_created event, got %d", h.notifier.count())
	}

	event := h.notifier.matches[0]
	if len(event.RecipientIDs) != 2 || event.Compatibility != 33 {
		t.Fatalf("unexpected event: %+v", event)
	}
	match, _ := h.matches.GetByPair(ctx, h.bob.ID, h.alice.ID)
	if match.ProfileAID >= match.ProfileBID {
		t.Fatalf("pair must be stored ordered: %+v", match)
	}
}

func TestConcurrentMutualLikesCreateExactlyOneMatch(t *testing.T) {
	for round := 0; round < 50; round++ {
		h := newHarness(t)
		ctx := context.Background()

		var (
			wg      sync.WaitGroup
			results [2]SwipeResult
			errs    [2]error
		)
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			results[0], errs[0] = h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
		}()
		go func() {
			defer wg.Done()
			<-start
			results[1], errs[1] = h.svc.Swipe(ctx, h.bob.UserID, h.alice.ID, "like")
		}()
		close(start)
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Fatalf("round %d swipe %d: %v", round, i, err)
			}
		}
		if !results[0].Matched && !results[1].Matched {
			t.Fatalf("round %d: neither side observed the match", round)
		}
		created := 0
		for _, r := range results {
			if r.Created {
				created++
			}
		}
		if created != 1 || h.matches.Count() != 1 || h.notifier.count() != 1 {
			t.Fatalf("round %d: created=%d stored=%d events=%d", round, created, h.matches.Count(), h.notifier.count())
		}
	}
}

func TestPassThenLikeSupersedes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "pass"); err != nil {
		t.Fatalf("pass: %v", err)
	}
	result, err := h.svc.Swipe(ctx, h.bob.UserID, h.alice.ID, "like")
	if err != nil {
		t.Fatalf("bob like: %v", err)
	}
	if result.Matched {
		t.Fatalf("pass must not count as reciprocal like")
	}

	result, err = h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
	if err != nil {
		t.Fatalf("alice like: %v", err)
	}
	if !result.Matched || !result.Created {
		t.Fatalf("later like should supersede pass and match, got %+v", result)
	}

	stored, ok, _ := h.swipes.Get(ctx, h.alice.ID, h.bob.ID)
	if !ok || stored.Action != enums.SwipeActionLike {
		t.Fatalf("expected stored like, got %+v", stored)
	}
}

func TestLikeThenPassDoesNotMatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, _ = h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
	_, _ = h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "pass")

	result, err := h.svc.Swipe(ctx, h.bob.UserID, h.alice.ID, "like")
	if err != nil {
		t.Fatalf("bob like: %v", err)
	}
	if result.Matched {
		t.Fatalf("superseded like must not produce a match")
	}
}

func TestSelfSwipeRejectedWithoutStateChange(t *testing.T) {
	h := newHarness(t)
	limiter := &rateLimiterStub{allowed: true}
	h.svc.rateLimiter = limiter

	_, err := h.svc.Swipe(context.Background(), h.alice.UserID, h.alice.ID, "like")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if h.swipes.Count() != 0 || h.matches.Count() != 0 {
		t.Fatalf("self swipe must not write state")
	}
	if limiter.calls != 0 {
		t.Fatalf("self swipe must not consume rate budget")
	}
}

func TestSwipeValidationAndLookups(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "wink"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for unknown action, got %v", err)
	}
	if _, err := h.svc.Swipe(ctx, h.alice.UserID, 9999, "like"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown target, got %v", err)
	}
	if _, err := h.svc.Swipe(ctx, 9999, h.bob.ID, "like"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for actor without profile, got %v", err)
	}
	if h.swipes.Count() != 0 {
		t.Fatalf("rejected swipes must not be stored")
	}
}

func TestNotificationFailureIsSuppressed(t *testing.T) {
	h := newHarness(t)
	h.notifier.err = errors.New("broker unavailable")
	h.svc.notifier = notifysvc.NewBestEffort(h.notifier, nil, nil)
	ctx := context.Background()

	_, _ = h.svc.Swipe(ctx, h.alice.UserID, h.bob.ID, "like")
	result, err := h.svc.Swipe(ctx, h.bob.UserID, h.alice.ID, "like")
	if err != nil {
		t.Fatalf("notification failure leaked: %v", err)
	}
	if !result.Created || h.matches.Count() != 1 {
		t.Fatalf("match should still be created: %+v", result)
	}
}

func TestSwipeRateLimited(t *testing.T) {
	h := newHarness(t)
	h.svc.rateLimiter = &rateLimiterStub{allowed: false, retryAfter: 5}

	_, err := h.svc.Swipe(context.Background(), h.alice.UserID, h.bob.ID, "like")
	if _, ok := ratesvc.IsTooFast(err); !ok {
		t.Fatalf("expected too fast error, got %v", err)
	}
	if h.swipes.Count() != 0 {
		t.Fatalf("limited swipe must not be stored")
	}
}
