package models

import "time"

// Category is reference data used to tag flashcards and filter challenges.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	CreatedAt time.Time `json:"-"`
}
