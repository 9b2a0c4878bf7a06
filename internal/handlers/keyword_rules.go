// internal/handlers/keyword_rules.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"creator-moderation/internal/models"
)

func (h *Handler) GetKeywordRules(w http.ResponseWriter, r *http.Request) {
	var filter models.KeywordRuleFilter
	filter.Category = models.RuleCategory(r.URL.Query().Get("category"))

	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			http.Error(w, "Invalid active filter", http.StatusBadRequest)
			return
		}
		filter.Active = &active
	}

	rules, err := h.rules.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *Handler) CreateKeywordRule(w http.ResponseWriter, r *http.Request) {
	var rule models.KeywordRule
	rule.IsActive = true
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rule.Keyword = strings.TrimSpace(rule.Keyword)

	if err := rule.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.rules.Create(r.Context(), &rule); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateRules()

	writeJSON(w, http.StatusCreated, rule)
}

// UpdateKeywordRule edits a rule in place. Deactivation replaces deletion.
func (h *Handler) UpdateKeywordRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid rule ID", http.StatusBadRequest)
		return
	}

	var update models.KeywordRuleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if update.Category != nil && !update.Category.Valid() {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}
	if update.Severity != nil && (*update.Severity < models.MinSeverity || *update.Severity > models.MaxSeverity) {
		http.Error(w, "Severity must be between 1 and 5", http.StatusBadRequest)
		return
	}

	rule, err := h.rules.Update(r.Context(), id, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateRules()

	writeJSON(w, http.StatusOK, rule)
}

func (h *Handler) invalidateRules() {
	if h.ruleCache != nil {
		h.ruleCache.Invalidate()
	}
}
