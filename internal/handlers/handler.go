// internal/handlers/handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"creator-moderation/internal/moderation"
	"creator-moderation/internal/repository"
)

// RuleCacheInvalidator is told whenever a keyword rule changes.
type RuleCacheInvalidator interface {
	Invalidate()
}

type Handler struct {
	moderation *moderation.Service
	rules      repository.KeywordRuleRepository
	ruleCache  RuleCacheInvalidator
	logger     *zap.Logger
}

func New(svc *moderation.Service, rules repository.KeywordRuleRepository, ruleCache RuleCacheInvalidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		moderation: svc,
		rules:      rules,
		ruleCache:  ruleCache,
		logger:     logger,
	}
}

// Register mounts the moderation API on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/moderation/flags", h.GetPendingFlags).Methods("GET")
	r.HandleFunc("/moderation/flags/stats", h.GetFlagStatistics).Methods("GET")
	r.HandleFunc("/moderation/flags/{id:[0-9]+}", h.GetFlag).Methods("GET")
	r.HandleFunc("/moderation/flags/{id:[0-9]+}/review", h.ReviewFlag).Methods("POST")

	r.HandleFunc("/moderation/keywords", h.GetKeywordRules).Methods("GET")
	r.HandleFunc("/moderation/keywords", h.CreateKeywordRule).Methods("POST")
	r.HandleFunc("/moderation/keywords/{id:[0-9]+}", h.UpdateKeywordRule).Methods("PUT")

	r.HandleFunc("/moderation/reviews/{id:[0-9]+}", h.ModerateReview).Methods("POST")
	r.HandleFunc("/moderation/messages/{id:[0-9]+}", h.ModerateMessage).Methods("POST")
	r.HandleFunc("/moderation/screen", h.ScreenText).Methods("POST")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Unexpected errors are
// logged and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrFlagNotFound),
		errors.Is(err, repository.ErrKeywordRuleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrFlagAlreadyResolved),
		errors.Is(err, repository.ErrDuplicateKeyword):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, moderation.ErrInvalidFlagStatus),
		errors.Is(err, moderation.ErrAdminRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
