package scores

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/repo/memory"
)

type countingProfiles struct {
	ProfileStore
	calls atomic.Int64
	gate  chan struct{}
}

func (c *countingProfiles) GetByID(ctx context.Context, id int64) (model.Profile, error) {
	c.calls.Add(1)
	if c.gate != nil {
		<-c.gate
	}
	return c.ProfileStore.GetByID(ctx, id)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, int64) (model.Score, bool, error) {
	return model.Score{}, false, errors.New("redis down")
}

func (brokenStore) Generation(context.Context, int64) (int64, error) {
	return 0, errors.New("redis down")
}

func (brokenStore) SaveIfGeneration(context.Context, model.Score, int64) (bool, error) {
	return false, errors.New("redis down")
}

func (brokenStore) Invalidate(context.Context, int64) error {
	return errors.New("redis down")
}

type fixture struct {
	db           *memory.DB
	profiles     *memory.ProfileRepo
	testimonials *memory.TestimonialRepo
	engagement   *memory.EngagementRepo
}

func newFixture() fixture {
	db := memory.NewDB()
	return fixture{
		db:           db,
		profiles:     memory.NewProfileRepo(db),
		testimonials: memory.NewTestimonialRepo(db),
		engagement:   memory.NewEngagementRepo(db),
	}
}

func (f fixture) service(store Store, profiles ProfileStore) *Service {
	if profiles == nil {
		profiles = f.profiles
	}
	return NewService(Dependencies{
		Store:        store,
		Profiles:     profiles,
		Testimonials: f.testimonials,
		Engagement:   f.engagement,
	}, Config{})
}

func (f fixture) addProp(t *testing.T, profileID int64, author string, rating int) model.Testimonial {
	t.Helper()
	item, err := f.testimonials.Create(context.Background(), model.Testimonial{
		ID:        uuid.New(),
		ProfileID: profileID,
		Author:    model.Author{Name: author},
		Approved:  true,
		Ratings:   model.Ratings{Trustworthy: rating, Fun: rating, Caring: rating, Ambitious: rating, Reliable: rating},
		Photos:    []model.Photo{{URL: "https://img/" + author + ".jpg"}},
	})
	if err != nil {
		t.Fatalf("create testimonial: %v", err)
	}
	return item
}

func TestGetComputesAndMemoizes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile, _ := f.profiles.UpsertByUserID(ctx, model.Profile{UserID: 1, PhotoCount: 3, Bio: "I like long walks and longer conversations."})
	f.addProp(t, profile.ID, "ann", 4)
	f.addProp(t, profile.ID, "bob", 4)

	store := NewMemoryStore()
	counting := &countingProfiles{ProfileStore: f.profiles}
	svc := f.service(store, counting)

	score, err := svc.Get(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if score.RealRep != 58 || score.PopRep != 0 {
		t.Fatalf("unexpected score: %+v", score)
	}

	if _, err := svc.Get(ctx, profile.ID); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if counting.calls.Load() != 1 {
		t.Fatalf("expected memoized score, computed %d times", counting.calls.Load())
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile, _ := f.profiles.UpsertByUserID(ctx, model.Profile{UserID: 1})
	prop := f.addProp(t, profile.ID, "ann", 5)

	svc := f.service(NewMemoryStore(), nil)
	before, err := svc.Get(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	like := model.PhotoLike{PhotoRef: model.PhotoRef{TestimonialID: prop.ID}, UserID: 77}
	if _, err := f.engagement.AddLike(ctx, like); err != nil {
		t.Fatalf("like: %v", err)
	}

	stale, _ := svc.Get(ctx, profile.ID)
	if stale.PopRep != before.PopRep {
		t.Fatalf("expected cached value before invalidation")
	}

	if err := svc.Invalidate(ctx, profile.ID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	after, err := svc.Get(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if after.PopRep <= before.PopRep {
		t.Fatalf("expected popRep to grow after invalidate: before=%d after=%d", before.PopRep, after.PopRep)
	}
}

func TestConcurrentGetsShareComputation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile, _ := f.profiles.UpsertByUserID(ctx, model.Profile{UserID: 1})

	counting := &countingProfiles{ProfileStore: f.profiles, gate: make(chan struct{})}
	svc := f.service(NewMemoryStore(), counting)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Get(ctx, profile.ID); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	for counting.calls.Load() == 0 {
		runtime.Gosched()
	}
	// let the remaining readers pile onto the in-flight computation
	time.Sleep(50 * time.Millisecond)
	close(counting.gate)
	wg.Wait()

	if calls := counting.calls.Load(); calls != 1 {
		t.Fatalf("expected one shared computation, got %d", calls)
	}
}

func TestStaleComputationIsNotStored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile, _ := f.profiles.UpsertByUserID(ctx, model.Profile{UserID: 1})
	store := NewMemoryStore()

	gen, _ := store.Generation(ctx, profile.ID)
	if err := store.Invalidate(ctx, profile.ID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	saved, _ := store.SaveIfGeneration(ctx, model.Score{ProfileID: profile.ID, RealRep: 99}, gen)
	if saved || store.Len() != 0 {
		t.Fatalf("stale computation must not be stored")
	}
}

func TestBackendFailureFallsBackToCompute(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile, _ := f.profiles.UpsertByUserID(ctx, model.Profile{UserID: 1, PhotoCount: 1})

	svc := f.service(brokenStore{}, nil)
	score, err := svc.Get(ctx, profile.ID)
	if err != nil {
		t.Fatalf("expected fallback compute, got %v", err)
	}
	if score.RealRep != 2 {
		t.Fatalf("unexpected realRep: %d", score.RealRep)
	}

	if err := svc.Invalidate(ctx, profile.ID); err == nil {
		t.Fatalf("expected invalidate error to surface")
	}
}

func TestFreshInstancesDoNotShareState(t *testing.T) {
	a := NewMemoryStore()
	b := NewMemoryStore()
	ctx := context.Background()
	_, _ = a.SaveIfGeneration(ctx, model.Score{ProfileID: 1, RealRep: 10}, 0)
	if _, ok, _ := b.Load(ctx, 1); ok {
		t.Fatalf("stores leaked state across instances")
	}
}
