package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `json:"name" gorm:"size:120"`

	// Email is the dedup key: creating a guest with an existing email returns
	// the existing record.
	Email string `json:"email" gorm:"uniqueIndex;size:191"`
	Phone string `json:"phone" gorm:"size:32"`

	Address string `json:"address,omitempty" gorm:"size:255"`
	City    string `json:"city,omitempty" gorm:"size:100"`
	Country string `json:"country,omitempty" gorm:"size:100"`

	IDType   string `json:"idType,omitempty" gorm:"column:id_type;size:50"`
	IDNumber string `json:"idNumber,omitempty" gorm:"column:id_number;size:64"`
}
