package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcard-challenges/config"
	"github.com/andrewpaige1/flashcard-challenges/models"
)

type fixture struct {
	db  *gorm.DB
	svc *Service

	history   models.Category
	geography models.Category
	science   models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := config.Connect(config.DBConfig{
		Driver:       "sqlite",
		URL:          filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, config.SeedCategories(db, []string{"history", "geography", "science"}))

	svc, err := New(db, zap.NewNop())
	require.NoError(t, err)

	f := &fixture{db: db, svc: svc}
	require.NoError(t, db.Where("name = ?", "history").First(&f.history).Error)
	require.NoError(t, db.Where("name = ?", "geography").First(&f.geography).Error)
	require.NoError(t, db.Where("name = ?", "science").First(&f.science).Error)
	return f
}

func (f *fixture) user(t *testing.T, subject string) *models.User {
	t.Helper()

	user := models.User{Auth0ID: subject, Nickname: subject}
	require.NoError(t, f.db.Create(&user).Error)
	return &user
}

func (f *fixture) flashcards(t *testing.T, user *models.User, category models.Category, difficulty models.Difficulty, n int) []*models.Flashcard {
	t.Helper()

	out := make([]*models.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		flashcard, err := f.svc.Flashcards.Create(context.Background(), user, CreateFlashcardInput{
			Question:   category.Name + " question",
			Answer:     "answer",
			CategoryID: category.ID,
			Difficulty: difficulty,
		})
		require.NoError(t, err)
		out = append(out, flashcard)
	}
	return out
}

func (f *fixture) challenge(t *testing.T, user *models.User, count int, difficulty models.Difficulty, categories ...models.Category) *models.Challenge {
	t.Helper()

	ids := make([]uint, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	challenge, err := f.svc.Challenges.Generate(context.Background(), user, GenerateChallengeInput{
		Title:       "quiz",
		CategoryIDs: ids,
		Difficulty:  difficulty,
		Count:       count,
	})
	require.NoError(t, err)
	return challenge
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
