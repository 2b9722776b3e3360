package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/auth"
)

// IssueToken signs a token for any subject. Only mounted when auth.dev_tokens is set.
func IssueToken(settings auth.Settings, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Subject  string `json:"subject"`
			Nickname string `json:"nickname"`
		}
		if err := decode(r, &req); err != nil || req.Subject == "" {
			badRequest(w, "subject is required")
			return
		}

		token, err := auth.CreateToken(settings, req.Subject, req.Nickname)
		if err != nil {
			log.Error("IssueToken: failed to sign token", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate token", Code: "internal"})
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"token": token})
	}
}
