package screening

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-moderation/internal/models"
)

func TestCachedRuleSourceServesFromCache(t *testing.T) {
	source := &staticRules{rules: []models.KeywordRule{rule("scam", models.CategorySpam, 4)}}
	cached := NewCachedRuleSource(source, time.Minute)

	for i := 0; i < 3; i++ {
		rules, err := cached.ListActive(context.Background())
		require.NoError(t, err)
		assert.Len(t, rules, 1)
	}
	assert.Equal(t, 1, source.calls)
}

func TestCachedRuleSourceInvalidate(t *testing.T) {
	source := &staticRules{rules: []models.KeywordRule{rule("scam", models.CategorySpam, 4)}}
	cached := NewCachedRuleSource(source, time.Minute)
	s := NewScreener(cached, nil, nil)

	assert.True(t, s.Screen(context.Background(), "scam").IsFlagged)

	source.rules = nil
	assert.True(t, s.Screen(context.Background(), "scam").IsFlagged, "stale until invalidated")

	cached.Invalidate()
	assert.False(t, s.Screen(context.Background(), "scam").IsFlagged)
	assert.Equal(t, 2, source.calls)
}

func TestCachedRuleSourceDoesNotCacheErrors(t *testing.T) {
	source := &staticRules{err: errors.New("unavailable")}
	cached := NewCachedRuleSource(source, time.Minute)

	_, err := cached.ListActive(context.Background())
	require.Error(t, err)

	source.err = nil
	source.rules = []models.KeywordRule{rule("fraud", models.CategoryLegal, 5)}
	rules, err := cached.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}
