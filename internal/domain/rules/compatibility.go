package rules

import (
	"math"
	"sort"
	"strings"

	"github.com/renwic/trusthub/internal/domain/model"
)

// MatchMetadata compares two interest lists case-insensitively. Compatibility
// is the Jaccard index scaled to 0..100.
func MatchMetadata(a, b []string) model.MatchMetadata {
	left := interestSet(a)
	right := interestSet(b)

	shared := make([]string, 0)
	union := len(left)
	for key := range right {
		if _, ok := left[key]; ok {
			shared = append(shared, key)
			continue
		}
		union++
	}
	sort.Strings(shared)

	out := model.MatchMetadata{SharedInterests: shared}
	if union > 0 {
		out.Compatibility = int(math.Round(100 * float64(len(shared)) / float64(union)))
	}
	return out
}

func interestSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}
