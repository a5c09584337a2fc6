package models

import (
	"time"
)

// Room statuses. Status is written by the booking lifecycle (reserved on
// creation, occupied on check-in, available on checkout/cancel); clients only
// set it directly for maintenance.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomReserved    = "reserved"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	CategoryID uint   `json:"categoryId" gorm:"column:category_id;index"`

	Status string `json:"status" gorm:"size:32;default:available"`
	Floor  int    `json:"floor"`

	HasWifi        bool `json:"hasWifi" gorm:"column:has_wifi"`
	HasAC          bool `json:"hasAc" gorm:"column:has_ac"`
	HasMinibar     bool `json:"hasMinibar" gorm:"column:has_minibar"`
	HasRoomService bool `json:"hasRoomService" gorm:"column:has_room_service"`
	HasTV          bool `json:"hasTv" gorm:"column:has_tv"`
	HasBalcony     bool `json:"hasBalcony" gorm:"column:has_balcony"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	Category RoomCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
