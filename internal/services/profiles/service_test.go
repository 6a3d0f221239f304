package profiles

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/repo/memory"
)

type invalidatorStub struct {
	calls []int64
}

func (s *invalidatorStub) Invalidate(_ context.Context, profileID int64) error {
	s.calls = append(s.calls, profileID)
	return nil
}

func validInput() UpdateInput {
	return UpdateInput{
		DisplayName: "  Dana ",
		Bio:         "Weekend climber, weekday data plumber.",
		PhotoCount:  4,
		Occupation:  "Engineer",
		HeightCM:    172,
		Drinking:    "Socially",
		Interests:   []string{"Climbing", "jazz", "climbing ", ""},
	}
}

func TestUpdateNormalizesAndInvalidates(t *testing.T) {
	inv := &invalidatorStub{}
	svc := NewService(memory.NewProfileRepo(memory.NewDB()), inv)

	profile, err := svc.Update(context.Background(), 11, validInput())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if profile.DisplayName != "Dana" || profile.Lifestyle.Drinking != "socially" {
		t.Fatalf("unexpected normalization: %+v", profile)
	}
	if !reflect.DeepEqual(profile.Interests, []string{"climbing", "jazz"}) {
		t.Fatalf("unexpected interests: %v", profile.Interests)
	}
	if profile.Lifestyle.FilledFields() != 3 {
		t.Fatalf("unexpected filled fields: %d", profile.Lifestyle.FilledFields())
	}
	if len(inv.calls) != 1 || inv.calls[0] != profile.ID {
		t.Fatalf("expected invalidation for profile %d, got %v", profile.ID, inv.calls)
	}

	again, err := svc.Update(context.Background(), 11, validInput())
	if err != nil || again.ID != profile.ID {
		t.Fatalf("second update should keep the profile id: %+v err=%v", again, err)
	}
}

func TestUpdateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*UpdateInput)
	}{
		{name: "missing display name", mutate: func(in *UpdateInput) { in.DisplayName = " " }},
		{name: "height out of range", mutate: func(in *UpdateInput) { in.HeightCM = 20 }},
		{name: "unknown drinking value", mutate: func(in *UpdateInput) { in.Drinking = "always" }},
		{name: "negative photo count", mutate: func(in *UpdateInput) { in.PhotoCount = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &invalidatorStub{}
			svc := NewService(memory.NewProfileRepo(memory.NewDB()), inv)
			in := validInput()
			tc.mutate(&in)

			if _, err := svc.Update(context.Background(), 11, in); !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(inv.calls) != 0 {
				t.Fatalf("rejected update must not invalidate")
			}
		})
	}
}

func TestMeNotFound(t *testing.T) {
	svc := NewService(memory.NewProfileRepo(memory.NewDB()), &invalidatorStub{})
	if _, err := svc.Me(context.Background(), 5); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
