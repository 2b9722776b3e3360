package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/services"
)

func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	categoryID, difficulty, err := parseFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	flashcards, err := h.svc.Flashcards.List(r.Context(), user, services.FlashcardFilter{
		CategoryID: categoryID,
		Difficulty: difficulty,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flashcards)
}

func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req services.CreateFlashcardInput
	if err := decode(r, &req); err != nil {
		h.log.Debug("CreateFlashcard: invalid request body", zap.Error(err))
		badRequest(w, "Invalid request body")
		return
	}

	flashcard, err := h.svc.Flashcards.Create(r.Context(), user, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, flashcard)
}

func (h *Handler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	flashcard, err := h.svc.Flashcards.Get(r.Context(), user, r.PathValue("flashcardID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flashcard)
}

func (h *Handler) UpdateFlashcardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req services.UpdateFlashcardInput
	if err := decode(r, &req); err != nil {
		h.log.Debug("UpdateFlashcardByID: invalid request body", zap.Error(err))
		badRequest(w, "Invalid request body")
		return
	}

	flashcard, err := h.svc.Flashcards.Update(r.Context(), user, r.PathValue("flashcardID"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flashcard)
}

func (h *Handler) DeleteFlashcardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Flashcards.Delete(r.Context(), user, r.PathValue("flashcardID")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
