package screening

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"creator-moderation/internal/models"
)

const activeRulesKey = "active"

// CachedRuleSource memoises the active rule list for ttl. Writers must call
// Invalidate after changing a rule.
type CachedRuleSource struct {
	source RuleSource
	cache  *cache.Cache
}

func NewCachedRuleSource(source RuleSource, ttl time.Duration) *CachedRuleSource {
	return &CachedRuleSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
	}
}

func (c *CachedRuleSource) ListActive(ctx context.Context) ([]models.KeywordRule, error) {
	if cached, found := c.cache.Get(activeRulesKey); found {
		if rules, ok := cached.([]models.KeywordRule); ok {
			return rules, nil
		}
	}

	rules, err := c.source.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(activeRulesKey, rules, cache.DefaultExpiration)
	return rules, nil
}

func (c *CachedRuleSource) Invalidate() {
	c.cache.Flush()
}
