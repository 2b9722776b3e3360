package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flashcard-challenges/models"
	"github.com/andrewpaige1/flashcard-challenges/services"
)

type profileResponse struct {
	User  *models.User        `json:"user"`
	Stats *services.UserStats `json:"stats"`
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Results.UserStats(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: user, Stats: stats})
}
