package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrewpaige1/flashcard-challenges/utils"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrInsufficientFlashcards = errors.New("insufficient flashcards")
)

// InsufficientFlashcardsError reports a candidate pool smaller than the requested count.
type InsufficientFlashcardsError struct {
	Requested int
	Available int
}

func (e *InsufficientFlashcardsError) Error() string {
	return fmt.Sprintf("insufficient flashcards: requested %d, %d available", e.Requested, e.Available)
}

func (e *InsufficientFlashcardsError) Is(target error) bool {
	return target == ErrInsufficientFlashcards
}

// ValidationError describes malformed caller input.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, "; ")
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Fields: []string{fmt.Sprintf(format, args...)}}
}

// validateInput runs struct tag validation and converts failures to *ValidationError.
func validateInput(in interface{}) error {
	msgs, err := utils.FieldErrors(in)
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	if len(msgs) > 0 {
		return &ValidationError{Fields: msgs}
	}
	return nil
}
