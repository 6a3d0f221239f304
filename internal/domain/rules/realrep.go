package rules

import (
	"math"

	"github.com/renwic/trusthub/internal/domain/model"
)

const (
	RealRepPropsCap        = 60.0
	RealRepRatingsCap      = 30.0
	RealRepCompletenessCap = 10.0

	completenessChecks = 5
)

type RealRepConfig struct {
	PropsSaturation float64
	BioMinLength    int
}

func DefaultRealRepConfig() RealRepConfig {
	return RealRepConfig{
		PropsSaturation: 3,
		BioMinLength:    40,
	}
}

// RealRepBreakdown keeps the unrounded components so callers can show
// where a score comes from.
type RealRepBreakdown struct {
	Props        float64 `json:"props"`
	Ratings      float64 `json:"ratings"`
	Completeness float64 `json:"completeness"`
	Total        int     `json:"total"`
}

func ComputeRealRep(completeness model.Completeness, testimonials []model.Testimonial, cfg RealRepConfig) int {
	return RealRepComponents(completeness, testimonials, cfg).Total
}

func RealRepComponents(completeness model.Completeness, testimonials []model.Testimonial, cfg RealRepConfig) RealRepBreakdown {
	cfg = normalizeRealRepConfig(cfg)

	approved := make([]model.Testimonial, 0, len(testimonials))
	for _, item := range testimonials {
		if item.Approved {
			approved = append(approved, item)
		}
	}

	out := RealRepBreakdown{
		Props:        propsComponent(approved, cfg.PropsSaturation),
		Ratings:      ratingsComponent(approved),
		Completeness: completenessComponent(completeness, cfg.BioMinLength),
	}
	out.Total = clampScore(math.Round(out.Props + out.Ratings + out.Completeness))
	return out
}

func propsComponent(approved []model.Testimonial, saturation float64) float64 {
	authors := make(map[string]struct{}, len(approved))
	for _, item := range approved {
		authors[item.Author.Key()] = struct{}{}
	}
	n := float64(len(authors))
	if n == 0 {
		return 0
	}
	return RealRepPropsCap * (1 - math.Exp(-n/saturation))
}

func ratingsComponent(approved []model.Testimonial) float64 {
	if len(approved) == 0 {
		return 0
	}
	sum := 0.0
	count := 0
	for _, item := range approved {
		for _, value := range item.Ratings.Values() {
			sum += float64(clampRating(value))
			count++
		}
	}
	mean := sum / float64(count)
	return (mean - model.MinRating) / (model.MaxRating - model.MinRating) * RealRepRatingsCap
}

func completenessComponent(c model.Completeness, bioMinLength int) float64 {
	passed := 0
	checks := []bool{
		c.PhotoCount >= 1,
		c.PhotoCount >= 3,
		c.BioLength >= bioMinLength,
		c.FilledFields >= 4,
		c.FilledFields >= 7,
	}
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return math.Min(RealRepCompletenessCap, float64(passed)*RealRepCompletenessCap/completenessChecks)
}

func normalizeRealRepConfig(cfg RealRepConfig) RealRepConfig {
	def := DefaultRealRepConfig()
	if cfg.PropsSaturation <= 0 {
		cfg.PropsSaturation = def.PropsSaturation
	}
	if cfg.BioMinLength <= 0 {
		cfg.BioMinLength = def.BioMinLength
	}
	return cfg
}

func clampRating(value int) int {
	if value < model.MinRating {
		return model.MinRating
	}
	if value > model.MaxRating {
		return model.MaxRating
	}
	return value
}

func clampScore(value float64) int {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(value)
}
