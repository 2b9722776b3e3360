package middleware

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcard-challenges/auth"
	"github.com/andrewpaige1/flashcard-challenges/models"
	"github.com/andrewpaige1/flashcard-challenges/utils"
)

// SyncUser ensures the token subject exists in the DB and attaches it to context.
func SyncUser(db *gorm.DB, log *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetAuth0ID(r)
			if !ok {
				unauthorized(w)
				return
			}
			nickname := tokenNickname(r)

			var user models.User
			result := db.WithContext(r.Context()).Where("auth0_id = ?", subject).Limit(1).Find(&user)
			if result.Error != nil {
				log.Error("failed to look up user", zap.String("subject", subject), zap.Error(result.Error))
				http.Error(w, "Failed to load user", http.StatusInternalServerError)
				return
			}

			if result.RowsAffected == 0 {
				user = models.User{Auth0ID: subject, Nickname: nickname}
				if err := db.WithContext(r.Context()).Create(&user).Error; err != nil {
					log.Error("failed to create user", zap.String("subject", subject), zap.Error(err))
					http.Error(w, "Failed to create user", http.StatusInternalServerError)
					return
				}
				log.Info("created new user", zap.Uint("user_id", user.ID), zap.String("nickname", user.Nickname))
			} else if nickname != "" && user.Nickname != nickname {
				user.Nickname = nickname
				if err := db.WithContext(r.Context()).Model(&user).Update("nickname", nickname).Error; err != nil {
					log.Error("failed to update user nickname", zap.Uint("user_id", user.ID), zap.Error(err))
					http.Error(w, "Failed to update user", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), &user)))
		}
	}
}

func tokenNickname(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	if custom, ok := claims.CustomClaims.(*auth.CustomClaims); ok && custom != nil {
		return custom.Nickname
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required","code":"unauthorized"}`))
}
