package rules

var (
	popRepBands  = []string{"New", "Rising", "Trending", "Popular", "Viral"}
	realRepBands = []string{"Unverified", "Emerging", "Trusted", "Vouched", "RealOne"}
)

// PopRepBand buckets a score into half-open ranges of width 20; 100 lands in
// the top band.
func PopRepBand(score int) string {
	return band(popRepBands, score)
}

func RealRepBand(score int) string {
	return band(realRepBands, score)
}

func band(names []string, score int) string {
	idx := score / 20
	if score < 0 {
		idx = 0
	}
	if idx >= len(names) {
		idx = len(names) - 1
	}
	return names[idx]
}
