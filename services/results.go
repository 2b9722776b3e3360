package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

// Summary holds the answer tallies of one challenge.
type Summary struct {
	CorrectCount    int              `db:"correct_count" json:"correctCount"`
	IncorrectCount  int              `db:"incorrect_count" json:"incorrectCount"`
	UnansweredCount int              `db:"unanswered_count" json:"unansweredCount"`
	TotalCount      int              `db:"total_count" json:"totalCount"`
	PerCategory     []CategoryResult `db:"-" json:"perCategory"`
}

type CategoryResult struct {
	CategoryID     uint   `db:"category_id" json:"categoryId"`
	CategoryName   string `db:"category_name" json:"categoryName"`
	CorrectCount   int    `db:"correct_count" json:"correctCount"`
	IncorrectCount int    `db:"incorrect_count" json:"incorrectCount"`
}

const summaryQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN answered AND correct THEN 1 ELSE 0 END), 0) AS correct_count,
		COALESCE(SUM(CASE WHEN answered AND NOT correct THEN 1 ELSE 0 END), 0) AS incorrect_count,
		COALESCE(SUM(CASE WHEN NOT answered THEN 1 ELSE 0 END), 0) AS unanswered_count,
		COUNT(*) AS total_count
	FROM answer_slots
	WHERE challenge_id = ?
`

// Only answered slots count, and only for categories linked to the challenge.
const perCategoryQuery = `
	SELECT
		c.id AS category_id,
		c.name AS category_name,
		COALESCE(SUM(CASE WHEN s.answered AND s.correct THEN 1 ELSE 0 END), 0) AS correct_count,
		COALESCE(SUM(CASE WHEN s.answered AND NOT s.correct THEN 1 ELSE 0 END), 0) AS incorrect_count
	FROM challenge_categories cc
	JOIN categories c ON c.id = cc.category_id
	LEFT JOIN (
		SELECT f.category_id, a.answered, a.correct
		FROM answer_slots a
		JOIN flashcards f ON f.id = a.flashcard_id
		WHERE a.challenge_id = ?
	) s ON s.category_id = c.id
	WHERE cc.challenge_id = ?
	GROUP BY c.id, c.name
	ORDER BY c.name
`

type ResultService struct {
	db      *gorm.DB
	reports *sqlx.DB
	log     *zap.Logger
}

func NewResultService(db *gorm.DB, reports *sqlx.DB, log *zap.Logger) *ResultService {
	return &ResultService{db: db, reports: reports, log: log}
}

// Summarize counts correct, incorrect and unanswered slots of a challenge,
// overall and per linked category.
func (s *ResultService) Summarize(ctx context.Context, challengeID uint) (*Summary, error) {
	var summary Summary
	if err := s.reports.GetContext(ctx, &summary, s.reports.Rebind(summaryQuery), challengeID); err != nil {
		return nil, fmt.Errorf("summarize challenge %d: %w", challengeID, err)
	}

	perCategory := []CategoryResult{}
	if err := s.reports.SelectContext(ctx, &perCategory, s.reports.Rebind(perCategoryQuery), challengeID, challengeID); err != nil {
		return nil, fmt.Errorf("summarize challenge %d by category: %w", challengeID, err)
	}
	summary.PerCategory = perCategory

	return &summary, nil
}

// Results returns the summary of one of user's challenges. Unlike Get on the
// challenge service, a challenge owned by someone else is reported as forbidden.
func (s *ResultService) Results(ctx context.Context, user *models.User, publicID string) (*Summary, error) {
	var challenge models.Challenge
	if err := s.db.WithContext(ctx).Select("id", "user_id").Where("public_id = ?", publicID).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	if challenge.UserID != user.ID {
		s.log.Warn("results rejected: challenge owned by another user",
			zap.Uint("user_id", user.ID),
			zap.String("challenge_id", publicID),
		)
		return nil, ErrForbidden
	}

	return s.Summarize(ctx, challenge.ID)
}

// UserStats are lifetime tallies across all of a user's flashcards and challenges.
type UserStats struct {
	Flashcards          int `db:"flashcards" json:"flashcards"`
	Challenges          int `db:"challenges" json:"challenges"`
	CompletedChallenges int `db:"completed_challenges" json:"completedChallenges"`
	CorrectAnswers      int `db:"correct_answers" json:"correctAnswers"`
	IncorrectAnswers    int `db:"incorrect_answers" json:"incorrectAnswers"`
}

const userStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM flashcards WHERE user_id = ?) AS flashcards,
		(SELECT COUNT(*) FROM challenges WHERE user_id = ?) AS challenges,
		(SELECT COUNT(*) FROM challenges WHERE user_id = ? AND completed) AS completed_challenges,
		(SELECT COUNT(*) FROM answer_slots a JOIN challenges c ON c.id = a.challenge_id
			WHERE c.user_id = ? AND a.answered AND a.correct) AS correct_answers,
		(SELECT COUNT(*) FROM answer_slots a JOIN challenges c ON c.id = a.challenge_id
			WHERE c.user_id = ? AND a.answered AND NOT a.correct) AS incorrect_answers
`

func (s *ResultService) UserStats(ctx context.Context, user *models.User) (*UserStats, error) {
	var stats UserStats
	id := user.ID
	if err := s.reports.GetContext(ctx, &stats, s.reports.Rebind(userStatsQuery), id, id, id, id, id); err != nil {
		return nil, fmt.Errorf("user stats for %d: %w", id, err)
	}
	return &stats, nil
}
