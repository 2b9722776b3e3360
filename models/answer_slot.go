package models

import "time"

// AnswerSlot tracks one flashcard inside a challenge.
type AnswerSlot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChallengeID uint      `gorm:"not null;index" json:"-"`
	Position    int       `gorm:"not null" json:"position"`
	FlashcardID uint      `gorm:"not null;index" json:"-"`
	Flashcard   Flashcard `gorm:"foreignKey:FlashcardID;constraint:OnDelete:CASCADE" json:"flashcard"`

	Answered   bool       `gorm:"not null;default:false" json:"answered"`
	Correct    bool       `gorm:"not null;default:false" json:"correct"`
	AnsweredAt *time.Time `gorm:"default:null" json:"answeredAt,omitempty"`
}
