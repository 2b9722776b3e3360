package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	Categories *CategoryService
	Flashcards *FlashcardService
	Challenges *ChallengeService
	Answers    *AnswerService
	Results    *ResultService
}

// New wires every service over db. Aggregate reads share db's connection pool through sqlx.
func New(db *gorm.DB, log *zap.Logger) (*Service, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	driverName := "sqlite3"
	if db.Dialector.Name() == "postgres" {
		driverName = "postgres"
	}
	reports := sqlx.NewDb(sqlDB, driverName)

	categories := NewCategoryService(db)
	results := NewResultService(db, reports, log)

	return &Service{
		Categories: categories,
		Flashcards: NewFlashcardService(db, categories, log),
		Challenges: NewChallengeService(db, categories, results, log),
		Answers:    NewAnswerService(db, log),
		Results:    results,
	}, nil
}
