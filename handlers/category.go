package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) ListDifficulties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Difficulties)
}
