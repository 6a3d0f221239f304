package rules

import (
	"reflect"
	"testing"
)

func TestMatchMetadata(t *testing.T) {
	cases := []struct {
		name   string
		a, b   []string
		shared []string
		compat int
	}{
		{name: "no interests", a: nil, b: nil, shared: []string{}, compat: 0},
		{name: "disjoint", a: []string{"chess"}, b: []string{"surfing"}, shared: []string{}, compat: 0},
		{name: "identical ignoring case", a: []string{"Hiking", "jazz"}, b: []string{"jazz", "hiking "}, shared: []string{"hiking", "jazz"}, compat: 100},
		{name: "partial", a: []string{"hiking", "jazz", "cooking"}, b: []string{"jazz", "chess"}, shared: []string{"jazz"}, compat: 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchMetadata(tc.a, tc.b)
			if !reflect.DeepEqual(got.SharedInterests, tc.shared) {
				t.Fatalf("unexpected shared interests: %v", got.SharedInterests)
			}
			if got.Compatibility != tc.compat {
				t.Fatalf("unexpected compatibility: got %d want %d", got.Compatibility, tc.compat)
			}
		})
	}
}
