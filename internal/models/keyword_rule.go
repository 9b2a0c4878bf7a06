// internal/models/keyword_rule.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type RuleCategory string

const (
	CategorySpam       RuleCategory = "spam"
	CategoryLegal      RuleCategory = "legal"
	CategoryHarassment RuleCategory = "harassment"
	CategoryCustom     RuleCategory = "custom"
)

const (
	MinSeverity = 1
	MaxSeverity = 5
)

func (c RuleCategory) Valid() bool {
	switch c {
	case CategorySpam, CategoryLegal, CategoryHarassment, CategoryCustom:
		return true
	}
	return false
}

type KeywordRule struct {
	ID          int          `json:"id"`
	Keyword     string       `json:"keyword"`
	Category    RuleCategory `json:"category"`
	Severity    int          `json:"severity"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks the invariants every stored rule must hold.
func (r KeywordRule) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return fmt.Errorf("keyword is required")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Severity < MinSeverity || r.Severity > MaxSeverity {
		return fmt.Errorf("severity must be between %d and %d", MinSeverity, MaxSeverity)
	}
	return nil
}

type KeywordRuleFilter struct {
	Category RuleCategory
	Active   *bool
}

// KeywordRuleUpdate carries the mutable fields of a rule. Nil fields are left
// unchanged.
type KeywordRuleUpdate struct {
	Category    *RuleCategory `json:"category,omitempty"`
	Severity    *int          `json:"severity,omitempty"`
	Description *string       `json:"description,omitempty"`
	IsActive    *bool         `json:"is_active,omitempty"`
}

// Apply returns a copy of r with the update's non-nil fields set.
func (u KeywordRuleUpdate) Apply(r KeywordRule) KeywordRule {
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Severity != nil {
		r.Severity = *u.Severity
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}
	return r
}
