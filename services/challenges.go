package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

type GenerateChallengeInput struct {
	Title       string            `json:"title" validate:"required,max=100"`
	CategoryIDs []uint            `json:"categories" validate:"required,min=1,dive,required"`
	Difficulty  models.Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Count       int               `json:"count" validate:"required,min=1"`
}

type ChallengeFilter struct {
	CategoryID uint
	Difficulty models.Difficulty
}

// ChallengeDetail is a challenge with its slots and current tallies.
type ChallengeDetail struct {
	*models.Challenge
	Summary *Summary `json:"summary"`
}

type ChallengeService struct {
	db         *gorm.DB
	categories *CategoryService
	results    *ResultService
	log        *zap.Logger

	// intN draws the random indexes used for sampling; nil means math/rand/v2.
	intN func(n int) int
}

func NewChallengeService(db *gorm.DB, categories *CategoryService, results *ResultService, log *zap.Logger) *ChallengeService {
	return &ChallengeService{db: db, categories: categories, results: results, log: log}
}

// Generate samples in.Count of user's flashcards matching the categories and
// difficulty and stores them as a new challenge. The challenge, its category
// links and its slots are written in one transaction; when the pool is too
// small nothing is written and an *InsufficientFlashcardsError is returned.
func (s *ChallengeService) Generate(ctx context.Context, user *models.User, in GenerateChallengeInput) (*models.Challenge, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var challenge *models.Challenge
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := s.categories.resolve(tx, in.CategoryIDs)
		if err != nil {
			return err
		}

		categoryIDs := make([]uint, len(categories))
		for i, c := range categories {
			categoryIDs[i] = c.ID
		}

		var pool []models.Flashcard
		if err := tx.Preload("Category").
			Where("user_id = ? AND category_id IN ? AND difficulty = ?", user.ID, categoryIDs, in.Difficulty).
			Order("id").
			Find(&pool).Error; err != nil {
			return fmt.Errorf("load candidate pool: %w", err)
		}

		if len(pool) < in.Count {
			return &InsufficientFlashcardsError{Requested: in.Count, Available: len(pool)}
		}

		picked := sample(pool, in.Count, s.intN)

		publicID, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate public id: %w", err)
		}

		challenge = &models.Challenge{
			PublicID:      publicID,
			UserID:        user.ID,
			Title:         in.Title,
			QuestionCount: in.Count,
			Difficulty:    in.Difficulty,
			Categories:    categories,
		}
		if err := tx.Omit("Categories.*", "User").Create(challenge).Error; err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}

		slots := make([]models.AnswerSlot, len(picked))
		for i, flashcard := range picked {
			slots[i] = models.AnswerSlot{
				ChallengeID: challenge.ID,
				Position:    i,
				FlashcardID: flashcard.ID,
			}
		}
		if err := tx.Omit(clause.Associations).CreateInBatches(&slots, 100).Error; err != nil {
			return fmt.Errorf("create answer slots: %w", err)
		}

		for i := range slots {
			slots[i].Flashcard = picked[i]
		}
		challenge.Slots = slots

		return nil
	})
	if err != nil {
		var insufficient *InsufficientFlashcardsError
		if errors.As(err, &insufficient) {
			s.log.Info("challenge not generated: candidate pool too small",
				zap.Uint("user_id", user.ID),
				zap.Int("requested", insufficient.Requested),
				zap.Int("available", insufficient.Available),
			)
		}
		return nil, err
	}

	s.log.Info("challenge generated",
		zap.String("challenge_id", challenge.PublicID),
		zap.Uint("user_id", user.ID),
		zap.Int("slots", len(challenge.Slots)),
	)
	return challenge, nil
}

// List returns user's challenges, newest first.
func (s *ChallengeService) List(ctx context.Context, user *models.User, filter ChallengeFilter) ([]models.Challenge, error) {
	db := s.db.WithContext(ctx)

	query := db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("name")
	}).Where("user_id = ?", user.ID)

	if filter.CategoryID != 0 {
		if err := s.categories.exists(db, filter.CategoryID); err != nil {
			return nil, err
		}
		query = query.Where("id IN (?)",
			db.Table("challenge_categories").Select("challenge_id").Where("category_id = ?", filter.CategoryID))
	}
	if filter.Difficulty != "" {
		if !filter.Difficulty.Valid() {
			return nil, invalid("Difficulty: must be one of [easy medium hard]")
		}
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	challenges := []models.Challenge{}
	if err := query.Order("created_at DESC, id DESC").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// Get returns one of user's challenges with its slots in order. Challenges of
// other users are reported as not found.
func (s *ChallengeService) Get(ctx context.Context, user *models.User, publicID string) (*ChallengeDetail, error) {
	var challenge models.Challenge
	err := s.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name")
		}).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Slots.Flashcard.Category").
		Where("public_id = ? AND user_id = ?", publicID, user.ID).
		First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	summary, err := s.results.Summarize(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}

	return &ChallengeDetail{Challenge: &challenge, Summary: summary}, nil
}

// Delete removes a challenge with its category links and slots.
func (s *ChallengeService) Delete(ctx context.Context, user *models.User, publicID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.Where("public_id = ?", publicID).First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get challenge: %w", err)
		}
		if challenge.UserID != user.ID {
			return ErrForbidden
		}

		if err := removeChallenge(tx, &challenge); err != nil {
			return err
		}

		s.log.Debug("challenge deleted", zap.String("challenge_id", publicID), zap.Uint("user_id", user.ID))
		return nil
	})
}

// removeChallenge deletes a challenge with its category links and slots.
func removeChallenge(tx *gorm.DB, challenge *models.Challenge) error {
	if err := tx.Model(challenge).Association("Categories").Clear(); err != nil {
		return fmt.Errorf("unlink categories: %w", err)
	}
	if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&models.AnswerSlot{}).Error; err != nil {
		return fmt.Errorf("delete answer slots: %w", err)
	}
	if err := tx.Delete(challenge).Error; err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

// refreshCompletion sets completed from the current slot state in a single
// statement so concurrent answers cannot leave a stale flag behind.
func refreshCompletion(tx *gorm.DB, challengeID uint) error {
	pending := tx.Model(&models.AnswerSlot{}).
		Select("1").
		Where("challenge_id = ? AND answered = ?", challengeID, false)

	err := tx.Model(&models.Challenge{}).
		Where("id = ?", challengeID).
		Update("completed", gorm.Expr("NOT EXISTS (?)", pending)).Error
	if err != nil {
		return fmt.Errorf("refresh challenge completion: %w", err)
	}
	return nil
}
