package moderation

import (
	"context"

	"go.uber.org/zap"

	"creator-moderation/internal/metrics"
	"creator-moderation/internal/models"
)

type ruleSeeder interface {
	SeedDefaults(ctx context.Context, rules []models.KeywordRule) (int, error)
}

// SeedKeywordPolicy inserts the given default rules. Failures are logged and
// swallowed so the service still starts; screening then runs with whatever
// rules exist, possibly none.
func SeedKeywordPolicy(ctx context.Context, seeder ruleSeeder, rules []models.KeywordRule, m *metrics.ModerationMetrics, logger *zap.Logger) int {
	inserted, err := seeder.SeedDefaults(ctx, rules)
	if err != nil {
		logger.Warn("failed to seed default keyword rules", zap.Error(err))
		return 0
	}
	if m != nil {
		m.SeededRulesTotal.Add(float64(inserted))
	}
	logger.Info("keyword policy seeded", zap.Int("inserted", inserted), zap.Int("defaults", len(rules)))
	return inserted
}
