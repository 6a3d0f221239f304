package rules

import "math"

type PopRepConfig struct {
	LikeWeight    float64
	CommentWeight float64
	Saturation    float64
}

func DefaultPopRepConfig() PopRepConfig {
	return PopRepConfig{
		LikeWeight:    1,
		CommentWeight: 3,
		Saturation:    40,
	}
}

// ComputePopRep maps photo engagement onto 0..100 with diminishing returns.
// Negative counts are treated as zero.
func ComputePopRep(likes, comments int, cfg PopRepConfig) int {
	cfg = normalizePopRepConfig(cfg)
	if likes < 0 {
		likes = 0
	}
	if comments < 0 {
		comments = 0
	}

	raw := float64(likes)*cfg.LikeWeight + float64(comments)*cfg.CommentWeight
	if raw == 0 {
		return 0
	}
	return clampScore(math.Round(100 * (1 - math.Exp(-raw/cfg.Saturation))))
}

func normalizePopRepConfig(cfg PopRepConfig) PopRepConfig {
	def := DefaultPopRepConfig()
	if cfg.LikeWeight < 0 {
		cfg.LikeWeight = def.LikeWeight
	}
	if cfg.CommentWeight < 0 {
		cfg.CommentWeight = def.CommentWeight
	}
	if cfg.LikeWeight == 0 && cfg.CommentWeight == 0 {
		cfg.LikeWeight = def.LikeWeight
		cfg.CommentWeight = def.CommentWeight
	}
	if cfg.Saturation <= 0 {
		cfg.Saturation = def.Saturation
	}
	return cfg
}
