package models

import (
	"time"
)

type RoomCategory struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string  `json:"name" gorm:"size:100"`
	Description string  `json:"description" gorm:"type:text"`
	BasePrice   float64 `json:"basePrice" gorm:"column:base_price"`
	Capacity    int     `json:"capacity" gorm:"default:2"`
}
