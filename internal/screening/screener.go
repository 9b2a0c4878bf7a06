// Package screening evaluates free text against the profanity list and the
// active keyword policy.
package screening

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"creator-moderation/internal/models"
)

// RuleSource provides the keyword rules currently in force.
type RuleSource interface {
	ListActive(ctx context.Context) ([]models.KeywordRule, error)
}

type Result struct {
	IsFlagged       bool     `json:"is_flagged"`
	Reasons         []string `json:"reasons"`
	MatchedKeywords []string `json:"matched_keywords"`
	Severity        int      `json:"severity"`
}

func emptyResult() Result {
	return Result{Reasons: []string{}, MatchedKeywords: []string{}}
}

func (r *Result) raise(severity int) {
	if severity > r.Severity {
		r.Severity = severity
	}
}

func (r *Result) addKeyword(keyword string) {
	for _, k := range r.MatchedKeywords {
		if strings.EqualFold(k, keyword) {
			return
		}
	}
	r.MatchedKeywords = append(r.MatchedKeywords, keyword)
}

// KeywordReason is the reason recorded when a keyword rule matches.
func KeywordReason(rule models.KeywordRule) string {
	return fmt.Sprintf("Contains %s keyword: %s", rule.Category, rule.Keyword)
}

type Screener struct {
	rules     RuleSource
	profanity *ProfanityClassifier
	logger    *zap.Logger

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func NewScreener(rules RuleSource, profanity *ProfanityClassifier, logger *zap.Logger) *Screener {
	if profanity == nil {
		profanity = NewProfanityClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{
		rules:     rules,
		profanity: profanity,
		logger:    logger,
		patterns:  make(map[string]*regexp.Regexp),
	}
}

// Screen never fails. Empty text yields a zero result, and a rule source
// error degrades to a profanity-only verdict.
func (s *Screener) Screen(ctx context.Context, text string) Result {
	result := emptyResult()
	if strings.TrimSpace(text) == "" {
		return result
	}
	text = norm.NFKC.String(text)

	if s.profanity.IsProfane(text) {
		result.IsFlagged = true
		result.Reasons = append(result.Reasons, ProfanityReason)
		result.raise(ProfanitySeverity)
	}

	if s.rules == nil {
		return result
	}
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		s.logger.Warn("keyword rules unavailable, screening for profanity only", zap.Error(err))
		return result
	}

	for _, rule := range rules {
		if !rule.IsActive || strings.TrimSpace(rule.Keyword) == "" {
			continue
		}
		if !s.keywordPattern(rule.Keyword).MatchString(text) {
			continue
		}
		result.IsFlagged = true
		result.addKeyword(rule.Keyword)
		result.Reasons = append(result.Reasons, KeywordReason(rule))
		result.raise(rule.Severity)
	}

	return result
}

func (s *Screener) keywordPattern(keyword string) *regexp.Regexp {
	key := strings.ToLower(strings.TrimSpace(keyword))

	s.mu.RLock()
	re, ok := s.patterns[key]
	s.mu.RUnlock()
	if ok {
		return re
	}

	re = wholeWordPattern(regexp.QuoteMeta(norm.NFKC.String(key)))
	s.mu.Lock()
	s.patterns[key] = re
	s.mu.Unlock()
	return re
}
