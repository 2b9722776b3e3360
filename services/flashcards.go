package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

type FlashcardFilter struct {
	CategoryID uint
	Difficulty models.Difficulty
}

type CreateFlashcardInput struct {
	Question   string            `json:"question" validate:"required,max=1000"`
	Answer     string            `json:"answer" validate:"required,max=1000"`
	CategoryID uint              `json:"categoryId" validate:"required"`
	Difficulty models.Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// UpdateFlashcardInput changes only the fields that are set.
type UpdateFlashcardInput struct {
	Question   *string            `json:"question,omitempty" validate:"omitnil,min=1,max=1000"`
	Answer     *string            `json:"answer,omitempty" validate:"omitnil,min=1,max=1000"`
	CategoryID *uint              `json:"categoryId,omitempty" validate:"omitnil,min=1"`
	Difficulty *models.Difficulty `json:"difficulty,omitempty" validate:"omitnil,oneof=easy medium hard"`
}

type FlashcardService struct {
	db         *gorm.DB
	categories *CategoryService
	log        *zap.Logger
}

func NewFlashcardService(db *gorm.DB, categories *CategoryService, log *zap.Logger) *FlashcardService {
	return &FlashcardService{db: db, categories: categories, log: log}
}

// List returns user's flashcards, optionally narrowed by category and difficulty.
func (s *FlashcardService) List(ctx context.Context, user *models.User, filter FlashcardFilter) ([]models.Flashcard, error) {
	db := s.db.WithContext(ctx)

	query := db.Preload("Category").Where("user_id = ?", user.ID)
	if filter.CategoryID != 0 {
		if err := s.categories.exists(db, filter.CategoryID); err != nil {
			return nil, err
		}
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		if !filter.Difficulty.Valid() {
			return nil, invalid("Difficulty: must be one of [easy medium hard]")
		}
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	flashcards := []models.Flashcard{}
	if err := query.Order("created_at, id").Find(&flashcards).Error; err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	return flashcards, nil
}

func (s *FlashcardService) Get(ctx context.Context, user *models.User, publicID string) (*models.Flashcard, error) {
	return s.owned(s.db.WithContext(ctx).Preload("Category"), user, publicID)
}

// Create stores a new flashcard owned by user.
func (s *FlashcardService) Create(ctx context.Context, user *models.User, in CreateFlashcardInput) (*models.Flashcard, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	categories, err := s.categories.resolve(db, []uint{in.CategoryID})
	if err != nil {
		return nil, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate public id: %w", err)
	}

	flashcard := models.Flashcard{
		PublicID:   publicID,
		UserID:     user.ID,
		Question:   in.Question,
		Answer:     in.Answer,
		CategoryID: in.CategoryID,
		Difficulty: in.Difficulty,
	}
	if err := db.Omit("Category", "User").Create(&flashcard).Error; err != nil {
		return nil, fmt.Errorf("create flashcard: %w", err)
	}
	flashcard.Category = categories[0]

	s.log.Debug("flashcard created", zap.String("flashcard_id", publicID), zap.Uint("user_id", user.ID))
	return &flashcard, nil
}

func (s *FlashcardService) Update(ctx context.Context, user *models.User, publicID string, in UpdateFlashcardInput) (*models.Flashcard, error) {
	if in.Question != nil {
		trimmed := strings.TrimSpace(*in.Question)
		in.Question = &trimmed
	}
	if in.Answer != nil {
		trimmed := strings.TrimSpace(*in.Answer)
		in.Answer = &trimmed
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	flashcard, err := s.owned(db, user, publicID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Question != nil {
		updates["question"] = *in.Question
	}
	if in.Answer != nil {
		updates["answer"] = *in.Answer
	}
	if in.CategoryID != nil {
		if err := s.categories.exists(db, *in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.Difficulty != nil {
		updates["difficulty"] = *in.Difficulty
	}

	if len(updates) > 0 {
		if err := db.Model(flashcard).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update flashcard: %w", err)
		}
	}

	return s.owned(db.Preload("Category"), user, publicID)
}

// Delete removes the flashcard together with the challenge slots that use it.
// Challenges left without slots are deleted; the others have their completion
// recomputed.
func (s *FlashcardService) Delete(ctx context.Context, user *models.User, publicID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flashcard, err := s.owned(tx, user, publicID)
		if err != nil {
			return err
		}

		var challengeIDs []uint
		if err := tx.Model(&models.AnswerSlot{}).
			Where("flashcard_id = ?", flashcard.ID).
			Distinct().Pluck("challenge_id", &challengeIDs).Error; err != nil {
			return fmt.Errorf("find challenges using flashcard: %w", err)
		}

		if err := tx.Where("flashcard_id = ?", flashcard.ID).Delete(&models.AnswerSlot{}).Error; err != nil {
			return fmt.Errorf("delete answer slots: %w", err)
		}
		if err := tx.Delete(flashcard).Error; err != nil {
			return fmt.Errorf("delete flashcard: %w", err)
		}

		emptied := 0
		for _, id := range challengeIDs {
			var remaining int64
			if err := tx.Model(&models.AnswerSlot{}).Where("challenge_id = ?", id).Count(&remaining).Error; err != nil {
				return fmt.Errorf("count answer slots: %w", err)
			}
			if remaining == 0 {
				if err := removeChallenge(tx, &models.Challenge{ID: id}); err != nil {
					return err
				}
				emptied++
				continue
			}
			if err := refreshCompletion(tx, id); err != nil {
				return err
			}
		}

		s.log.Debug("flashcard deleted",
			zap.String("flashcard_id", publicID),
			zap.Int("challenges_touched", len(challengeIDs)),
			zap.Int("challenges_removed", emptied),
		)
		return nil
	})
}

// owned loads a flashcard by public id and checks it belongs to user.
func (s *FlashcardService) owned(db *gorm.DB, user *models.User, publicID string) (*models.Flashcard, error) {
	var flashcard models.Flashcard
	if err := db.Where("public_id = ?", publicID).First(&flashcard).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flashcard: %w", err)
	}

	if flashcard.UserID != user.ID {
		return nil, ErrForbidden
	}

	return &flashcard, nil
}
