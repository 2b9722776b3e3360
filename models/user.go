package models

import "gorm.io/gorm"

// User represents a user in the system
type User struct {
	gorm.Model
	Auth0ID  string `gorm:"uniqueIndex;not null;size:200" json:"-"`
	Nickname string `gorm:"size:100" json:"nickname"`
}
