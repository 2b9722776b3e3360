package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/services"
)

func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req services.GenerateChallengeInput
	if err := decode(r, &req); err != nil {
		h.log.Debug("CreateChallenge: invalid request body", zap.Error(err))
		badRequest(w, "Invalid request body")
		return
	}

	challenge, err := h.svc.Challenges.Generate(r.Context(), user, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, challenge)
}

func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	categoryID, difficulty, err := parseFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	challenges, err := h.svc.Challenges.List(r.Context(), user, services.ChallengeFilter{
		CategoryID: categoryID,
		Difficulty: difficulty,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, challenges)
}

func (h *Handler) GetChallengeByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Challenges.Get(r.Context(), user, r.PathValue("challengeID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) DeleteChallengeByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Challenges.Delete(r.Context(), user, r.PathValue("challengeID")); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AnswerSlot(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	slotID, err := strconv.ParseUint(r.PathValue("slotID"), 10, 32)
	if err != nil {
		badRequest(w, "Invalid slot ID")
		return
	}

	var req struct {
		Correct *bool `json:"correct"`
	}
	if err := decode(r, &req); err != nil || req.Correct == nil {
		badRequest(w, "Request body must be {\"correct\": true|false}")
		return
	}

	challenge, err := h.svc.Answers.Answer(r.Context(), user, r.PathValue("challengeID"), uint(slotID), *req.Correct)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}

func (h *Handler) GetChallengeResults(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Results.Results(r.Context(), user, r.PathValue("challengeID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
