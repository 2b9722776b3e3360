package handlers

import "net/http"

// Routes registers the API. authed wraps handlers that need a synced user.
func (h *Handler) Routes(authed func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health)

	// Reference data
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/difficulties", h.ListDifficulties)

	// User
	mux.HandleFunc("GET /api/me", authed(h.GetCurrentUser))

	// Flashcard
	mux.HandleFunc("GET /api/flashcards", authed(h.ListFlashcards))
	mux.HandleFunc("POST /api/flashcards", authed(h.CreateFlashcard))
	mux.HandleFunc("GET /api/flashcards/{flashcardID}", authed(h.GetFlashcardByID))
	mux.HandleFunc("PUT /api/flashcards/{flashcardID}", authed(h.UpdateFlashcardByID))
	mux.HandleFunc("DELETE /api/flashcards/{flashcardID}", authed(h.DeleteFlashcardByID))

	// Challenge
	mux.HandleFunc("POST /api/challenges", authed(h.CreateChallenge))
	mux.HandleFunc("GET /api/challenges", authed(h.ListChallenges))
	mux.HandleFunc("GET /api/challenges/{challengeID}", authed(h.GetChallengeByID))
	mux.HandleFunc("DELETE /api/challenges/{challengeID}", authed(h.DeleteChallengeByID))
	mux.HandleFunc("POST /api/challenges/{challengeID}/answers/{slotID}", authed(h.AnswerSlot))
	mux.HandleFunc("GET /api/challenges/{challengeID}/results", authed(h.GetChallengeResults))

	return mux
}
