package models

import "time"

// Challenge is one quiz attempt generated from a user's flashcards.
type Challenge struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PublicID string `gorm:"size:100;uniqueIndex;not null" json:"id"`

	UserID uint `gorm:"not null;index" json:"-"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	Title         string     `gorm:"not null;size:100" json:"title"`
	QuestionCount int        `gorm:"not null" json:"questionCount"`
	Difficulty    Difficulty `gorm:"not null;size:10;index" json:"difficulty"`
	Categories    []Category `gorm:"many2many:challenge_categories;constraint:OnDelete:CASCADE" json:"categories"`

	// Completed flips to true once every slot has been answered.
	Completed bool         `gorm:"not null;default:false" json:"completed"`
	Slots     []AnswerSlot `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"slots,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
