package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

type AnswerService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewAnswerService(db *gorm.DB, log *zap.Logger) *AnswerService {
	return &AnswerService{db: db, log: log, now: time.Now}
}

// Answer records whether the slot was answered correctly and recomputes the
// completion of its challenge. Authorization is checked against the owner of
// the slot's flashcard, not the owner of the challenge. Answering a slot again
// overwrites the previous result.
func (s *AnswerService) Answer(ctx context.Context, user *models.User, challengeID string, slotID uint, correct bool) (*models.Challenge, error) {
	var challenge models.Challenge

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock serializes completion checks of concurrent answers.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("public_id = ?", challengeID).
			First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock challenge: %w", err)
		}

		var slot models.AnswerSlot
		if err := tx.Preload("Flashcard").
			Where("id = ? AND challenge_id = ?", slotID, challenge.ID).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get answer slot: %w", err)
		}

		if slot.Flashcard.UserID != user.ID {
			return ErrForbidden
		}

		if err := tx.Model(&slot).Updates(map[string]interface{}{
			"answered":    true,
			"correct":     correct,
			"answered_at": s.now(),
		}).Error; err != nil {
			return fmt.Errorf("record answer: %w", err)
		}

		if err := refreshCompletion(tx, challenge.ID); err != nil {
			return err
		}

		return tx.First(&challenge, challenge.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			s.log.Warn("answer rejected: flashcard owned by another user",
				zap.Uint("user_id", user.ID),
				zap.String("challenge_id", challengeID),
				zap.Uint("slot_id", slotID),
			)
		}
		return nil, err
	}

	s.log.Debug("answer recorded",
		zap.String("challenge_id", challengeID),
		zap.Uint("slot_id", slotID),
		zap.Bool("correct", correct),
		zap.Bool("completed", challenge.Completed),
	)
	return &challenge, nil
}
