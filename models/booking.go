package models

import (
	"time"
)

// Booking statuses. Transitions run only through BookingService so the room
// status cascade stays consistent.
const (
	BookingNew        = "new"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// BookingNumber is the human-facing reference. Generated once at creation,
	// never regenerated.
	BookingNumber string `gorm:"column:booking_number;uniqueIndex;size:32" json:"bookingNumber"`

	GuestID uint `gorm:"index;column:guest_id" json:"guestId"`
	RoomID  uint `gorm:"index;column:room_id" json:"roomId"`

	Status string `gorm:"size:32;default:new" json:"status"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`

	Adults   int `gorm:"default:1" json:"adults"`
	Children int `gorm:"default:0" json:"children"`

	TotalPrice      float64 `gorm:"column:total_price" json:"totalPrice"`
	SpecialRequests string  `gorm:"type:text" json:"specialRequests,omitempty"`

	Guest   Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room    Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payment *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

// OverlapsRange reports whether the booking's stay intersects the half-open
// range [checkIn, checkOut). A checkout on another booking's check-in day is
// not an overlap.
func (b *Booking) OverlapsRange(checkIn, checkOut time.Time) bool {
	return DateRangesOverlap(b.CheckInDate, b.CheckOutDate, checkIn, checkOut)
}

// DateRangesOverlap is the half-open interval intersection test used for room
// conflict detection: a.start < b.end AND b.start < a.end.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
