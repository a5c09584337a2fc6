package services

import (
	"fmt"
	"time"

	"hotelx-backend/models"
	"hotelx-backend/storage"
)

// AvailabilityService answers "which rooms can take a new booking for this
// range". Pure reads, no side effects.
type AvailabilityService struct {
	store storage.Store
}

func NewAvailabilityService(store storage.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// FindAvailableRooms returns rooms (with category) eligible for a booking over
// the half-open range [checkIn, checkOut), optionally filtered by category.
//
// A room is eligible when it is not pulled from service (maintenance) and no
// non-cancelled booking overlaps the range. Rooms whose status is reserved or
// occupied stay bookable for disjoint dates; the overlap test owns the date
// dimension.
func (s *AvailabilityService) FindAvailableRooms(checkIn, checkOut time.Time, categoryID *uint) ([]models.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	overlapping, err := s.store.GetBookingsOverlapping(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlapping bookings: %w", err)
	}
	bookedRoomIDs := make(map[uint]struct{}, len(overlapping))
	for _, b := range overlapping {
		bookedRoomIDs[b.RoomID] = struct{}{}
	}

	rooms, err := s.store.ListRooms()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Status == models.RoomMaintenance {
			continue
		}
		if _, booked := bookedRoomIDs[room.ID]; booked {
			continue
		}
		if categoryID != nil && room.CategoryID != *categoryID {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// RoomAvailableFor reports whether one specific room can take the range,
// ignoring the booking with excludeBookingID (zero to exclude nothing). Used
// by BookingService inside its per-room critical section.
func (s *AvailabilityService) RoomAvailableFor(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, ErrInvalidDateRange
	}

	room, err := s.store.GetRoom(roomID)
	if err != nil {
		return false, err
	}
	if room.Status == models.RoomMaintenance {
		return false, nil
	}

	overlapping, err := s.store.GetBookingsOverlapping(checkIn, checkOut)
	if err != nil {
		return false, fmt.Errorf("failed to load overlapping bookings: %w", err)
	}
	for _, b := range overlapping {
		if b.RoomID == roomID && b.ID != excludeBookingID {
			return false, nil
		}
	}
	return true, nil
}
