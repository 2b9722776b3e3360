package middleware

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/auth"
)

// EnsureValidToken validates bearer tokens when present. Requests without a
// token pass through; SyncUser rejects them on protected routes.
func EnsureValidToken(settings auth.Settings, log *zap.Logger) (func(http.Handler) http.Handler, error) {
	jwtValidator, err := auth.NewValidator(settings)
	if err != nil {
		return nil, err
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Debug("token validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"failed to validate token","code":"unauthorized"}`))
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
	)

	return mw.CheckJWT, nil
}
