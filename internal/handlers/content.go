// internal/handlers/content.go
package handlers

import (
	"encoding/json"
	"net/http"
)

type moderationResponse struct {
	Flagged bool `json:"flagged"`
	FlagID  *int `json:"flag_id,omitempty"`
}

// ModerateReview is called by the review CRUD layer after a review is saved.
func (h *Handler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	flag, err := h.moderation.ModerateReview(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := moderationResponse{}
	if flag != nil {
		resp.Flagged = true
		resp.FlagID = &flag.ID
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// ModerateMessage is called by the messaging layer after a message is saved.
func (h *Handler) ModerateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	flag, err := h.moderation.ModerateMessage(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := moderationResponse{}
	if flag != nil {
		resp.Flagged = true
		resp.FlagID = &flag.ID
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *Handler) ScreenText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.moderation.Screen(r.Context(), req.Text))
}
