package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-moderation/internal/models"
	"creator-moderation/internal/testutil"
)

func defaultRules() []models.KeywordRule {
	return []models.KeywordRule{
		{Keyword: "scam", Category: models.CategorySpam, Severity: 4, Description: "scams"},
		{Keyword: "fraud", Category: models.CategoryLegal, Severity: 5},
		{Keyword: "telegram", Category: models.CategorySpam, Severity: 2},
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)
	ctx := context.Background()

	inserted, err := repo.SeedDefaults(ctx, defaultRules())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	inserted, err = repo.SeedDefaults(ctx, defaultRules())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	rules, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "scam", rules[0].Keyword)
	assert.Equal(t, "scams", rules[0].Description)
	assert.True(t, rules[0].IsActive)
}

func TestSeedDefaultsConcurrentFirstRun(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.SeedDefaults(context.Background(), defaultRules())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, testutil.CountRows(t, db, "keyword_rules"))
}

func TestSeedDefaultsKeepsDeactivatedRules(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)
	ctx := context.Background()

	_, err := repo.SeedDefaults(ctx, defaultRules())
	require.NoError(t, err)

	inactive := false
	_, err = repo.Update(ctx, 1, models.KeywordRuleUpdate{IsActive: &inactive})
	require.NoError(t, err)

	_, err = repo.SeedDefaults(ctx, defaultRules())
	require.NoError(t, err)

	rule, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, rule.IsActive)
}

func TestSeedDefaultsRejectsInvalidRule(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)

	rules := append(defaultRules(), models.KeywordRule{Keyword: "bad", Category: models.CategorySpam, Severity: 9})
	_, err := repo.SeedDefaults(context.Background(), rules)
	require.Error(t, err)
	assert.Zero(t, testutil.CountRows(t, db, "keyword_rules"), "seeding is all or nothing")
}

func TestKeywordRuleCreateAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)
	ctx := context.Background()

	rule := models.KeywordRule{Keyword: "Venmo", Category: models.CategorySpam, Severity: 2, IsActive: true}
	require.NoError(t, repo.Create(ctx, &rule))
	assert.NotZero(t, rule.ID)
	assert.False(t, rule.CreatedAt.IsZero())

	dup := models.KeywordRule{Keyword: "venmo", Category: models.CategoryCustom, Severity: 1, IsActive: true}
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicateKeyword)

	legal := models.KeywordRule{Keyword: "lawsuit", Category: models.CategoryLegal, Severity: 3}
	require.NoError(t, repo.Create(ctx, &legal))

	all, err := repo.List(ctx, models.KeywordRuleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	spam, err := repo.List(ctx, models.KeywordRuleFilter{Category: models.CategorySpam})
	require.NoError(t, err)
	require.Len(t, spam, 1)
	assert.Equal(t, "Venmo", spam[0].Keyword)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, rule.ID, active[0].ID)
}

func TestKeywordRuleUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKeywordRuleRepository(db)
	ctx := context.Background()

	rule := models.KeywordRule{Keyword: "scam", Category: models.CategorySpam, Severity: 2, IsActive: true}
	require.NoError(t, repo.Create(ctx, &rule))

	severity := 5
	updated, err := repo.Update(ctx, rule.ID, models.KeywordRuleUpdate{Severity: &severity})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Severity)
	assert.Equal(t, "scam", updated.Keyword)
	assert.True(t, updated.IsActive)

	tooHigh := 6
	_, err = repo.Update(ctx, rule.ID, models.KeywordRuleUpdate{Severity: &tooHigh})
	assert.Error(t, err)

	_, err = repo.Update(ctx, 999, models.KeywordRuleUpdate{Severity: &severity})
	assert.ErrorIs(t, err, ErrKeywordRuleNotFound)
}

func TestKeywordRuleGetByIDNotFound(t *testing.T) {
	repo := NewKeywordRuleRepository(testutil.NewDB(t))
	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrKeywordRuleNotFound)
}
