package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/models"
	"github.com/andrewpaige1/flashcard-challenges/services"
	"github.com/andrewpaige1/flashcard-challenges/utils"
)

type Handler struct {
	svc *services.Service
	log *zap.Logger
}

func New(svc *services.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Fields    []string `json:"fields,omitempty"`
	Requested int      `json:"requested,omitempty"`
	Available *int     `json:"available,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. Unknown errors are logged
// and reported as 500 without details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation   *services.ValidationError
		insufficient *services.InsufficientFlashcardsError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid input",
			Code:   "validation_error",
			Fields: validation.Fields,
		})
	case errors.As(err, &insufficient):
		available := insufficient.Available
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     insufficient.Error(),
			Code:      "insufficient_flashcards",
			Requested: insufficient.Requested,
			Available: &available,
		})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: "not_found"})
	case errors.Is(err, services.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Code: "forbidden"})
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// currentUser fetches the synced user; SyncUser guarantees it on protected routes.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := utils.CurrentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Code: "unauthorized"})
		return nil, false
	}
	return user, true
}

// parseFilter reads the optional category and difficulty query parameters.
func parseFilter(r *http.Request) (uint, models.Difficulty, error) {
	var categoryID uint
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return 0, "", errors.New("category must be a positive integer")
		}
		categoryID = uint(id)
	}
	return categoryID, models.Difficulty(r.URL.Query().Get("difficulty")), nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
