// internal/handlers/flags.go
package handlers

import (
	"encoding/json"
	"net/http"

	"creator-moderation/internal/models"
)

func (h *Handler) GetPendingFlags(w http.ResponseWriter, r *http.Request) {
	flags, err := h.moderation.PendingFlags(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flags)
}

func (h *Handler) GetFlagStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.moderation.FlagStatistics(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetFlag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid flag ID", http.StatusBadRequest)
		return
	}

	flag, err := h.moderation.GetFlag(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *Handler) ReviewFlag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid flag ID", http.StatusBadRequest)
		return
	}

	var input models.ResolveFlagInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input.FlagID = id

	flag, err := h.moderation.ReviewFlaggedContent(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flag)
}
