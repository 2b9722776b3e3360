package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

func TestFlashcardService_Create(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alice := f.user(t, "alice")

	tests := []struct {
		name      string
		in        CreateFlashcardInput
		wantValid bool
	}{
		{
			name: "success",
			in: CreateFlashcardInput{
				Question:   "  Who crossed the Rubicon?  ",
				Answer:     "Caesar",
				CategoryID: f.history.ID,
				Difficulty: models.DifficultyEasy,
			},
			wantValid: true,
		},
		{
			name: "blank question",
			in: CreateFlashcardInput{
				Question:   "   ",
				Answer:     "Caesar",
				CategoryID: f.history.ID,
				Difficulty: models.DifficultyEasy,
			},
		},
		{
			name: "unknown difficulty",
			in: CreateFlashcardInput{
				Question:   "q",
				Answer:     "a",
				CategoryID: f.history.ID,
				Difficulty: "impossible",
			},
		},
		{
			name: "unknown category",
			in: CreateFlashcardInput{
				Question:   "q",
				Answer:     "a",
				CategoryID: 9999,
				Difficulty: models.DifficultyHard,
			},
		},
		{
			name: "missing category",
			in: CreateFlashcardInput{
				Question:   "q",
				Answer:     "a",
				Difficulty: models.DifficultyHard,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.Flashcards.Create(context.Background(), alice, tt.in)
			if !tt.wantValid {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.NotEmpty(t, verr.Fields)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.PublicID)
			assert.Equal(t, alice.ID, got.UserID)
			assert.Equal(t, "Who crossed the Rubicon?", got.Question)
			assert.Equal(t, "history", got.Category.Name)
		})
	}
}

func TestFlashcardService_List(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	f.flashcards(t, alice, f.history, models.DifficultyEasy, 2)
	f.flashcards(t, alice, f.history, models.DifficultyHard, 1)
	f.flashcards(t, alice, f.geography, models.DifficultyEasy, 1)
	f.flashcards(t, bob, f.history, models.DifficultyEasy, 4)

	tests := []struct {
		name    string
		filter  FlashcardFilter
		want    int
		wantErr bool
	}{
		{name: "all of mine", filter: FlashcardFilter{}, want: 4},
		{name: "by category", filter: FlashcardFilter{CategoryID: f.history.ID}, want: 3},
		{name: "by difficulty", filter: FlashcardFilter{Difficulty: models.DifficultyEasy}, want: 3},
		{name: "by both", filter: FlashcardFilter{CategoryID: f.history.ID, Difficulty: models.DifficultyHard}, want: 1},
		{name: "empty category", filter: FlashcardFilter{CategoryID: f.science.ID}, want: 0},
		{name: "unknown category", filter: FlashcardFilter{CategoryID: 9999}, wantErr: true},
		{name: "unknown difficulty", filter: FlashcardFilter{Difficulty: "expert"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.Flashcards.List(ctx, alice, tt.filter)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for _, fc := range got {
				assert.Equal(t, alice.ID, fc.UserID)
			}
		})
	}
}

func TestFlashcardService_GetAndUpdate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	card := f.flashcards(t, alice, f.history, models.DifficultyEasy, 1)[0]

	_, err := f.svc.Flashcards.Get(ctx, alice, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Flashcards.Get(ctx, bob, card.PublicID)
	require.ErrorIs(t, err, ErrForbidden)

	question := "When did Rome fall?"
	hard := models.DifficultyHard
	updated, err := f.svc.Flashcards.Update(ctx, alice, card.PublicID, UpdateFlashcardInput{
		Question:   &question,
		CategoryID: &f.geography.ID,
		Difficulty: &hard,
	})
	require.NoError(t, err)
	assert.Equal(t, question, updated.Question)
	assert.Equal(t, "answer", updated.Answer)
	assert.Equal(t, "geography", updated.Category.Name)
	assert.Equal(t, models.DifficultyHard, updated.Difficulty)
	assert.Equal(t, alice.ID, updated.UserID)

	_, err = f.svc.Flashcards.Update(ctx, bob, card.PublicID, UpdateFlashcardInput{Question: &question})
	require.ErrorIs(t, err, ErrForbidden)

	blank := " "
	_, err = f.svc.Flashcards.Update(ctx, alice, card.PublicID, UpdateFlashcardInput{Answer: &blank})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	unknown := uint(9999)
	_, err = f.svc.Flashcards.Update(ctx, alice, card.PublicID, UpdateFlashcardInput{CategoryID: &unknown})
	require.ErrorAs(t, err, &verr)
}

func TestFlashcardService_Delete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	card := f.flashcards(t, alice, f.history, models.DifficultyEasy, 1)[0]

	require.ErrorIs(t, f.svc.Flashcards.Delete(ctx, alice, "missing"), ErrNotFound)
	require.ErrorIs(t, f.svc.Flashcards.Delete(ctx, bob, card.PublicID), ErrForbidden)

	require.NoError(t, f.svc.Flashcards.Delete(ctx, alice, card.PublicID))
	_, err := f.svc.Flashcards.Get(ctx, alice, card.PublicID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFlashcardService_DeleteCompletesChallenge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	f.flashcards(t, alice, f.history, models.DifficultyEasy, 2)

	challenge := f.challenge(t, alice, 2, models.DifficultyEasy, f.history)
	first, second := challenge.Slots[0], challenge.Slots[1]

	_, err := f.svc.Answers.Answer(ctx, alice, challenge.PublicID, first.ID, true)
	require.NoError(t, err)

	// Removing the only unanswered flashcard leaves every remaining slot answered.
	require.NoError(t, f.svc.Flashcards.Delete(ctx, alice, second.Flashcard.PublicID))

	detail, err := f.svc.Challenges.Get(ctx, alice, challenge.PublicID)
	require.NoError(t, err)
	assert.True(t, detail.Completed)
	require.Len(t, detail.Slots, 1)
	assert.Equal(t, first.ID, detail.Slots[0].ID)
	assert.Equal(t, 1, detail.Summary.TotalCount)
}

func TestFlashcardService_DeleteRemovesEmptyChallenge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	f.flashcards(t, alice, f.science, models.DifficultyHard, 1)

	challenge := f.challenge(t, alice, 1, models.DifficultyHard, f.science)

	require.NoError(t, f.svc.Flashcards.Delete(ctx, alice, challenge.Slots[0].Flashcard.PublicID))

	_, err := f.svc.Challenges.Get(ctx, alice, challenge.PublicID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.count(t, &models.Challenge{}))
	assert.Zero(t, f.count(t, &models.AnswerSlot{}))

	var links int64
	require.NoError(t, f.db.Table("challenge_categories").Count(&links).Error)
	assert.Zero(t, links)
}
