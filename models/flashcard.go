package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the accepted difficulty values in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Flashcard represents an individual flashcard
type Flashcard struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PublicID string `gorm:"size:100;uniqueIndex;not null" json:"id"`

	UserID uint `gorm:"not null;index" json:"-"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Question   string     `gorm:"not null;size:1000" json:"question"`
	Answer     string     `gorm:"not null;size:1000" json:"answer"`
	CategoryID uint       `gorm:"not null;index" json:"categoryId"`
	Category   Category   `gorm:"foreignKey:CategoryID" json:"category"`
	Difficulty Difficulty `gorm:"not null;size:10;index" json:"difficulty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
