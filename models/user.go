package models

import (
	"time"
)

// User is a staff account. Passwords are stored as bcrypt hashes.
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`

	Username string `json:"username" gorm:"uniqueIndex;size:100"`
	Password string `json:"-" gorm:"size:255"`
	Name     string `json:"name" gorm:"size:120"`
	Email    string `json:"email" gorm:"size:191"`
}
