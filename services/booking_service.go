package services

import (
	"errors"
	"fmt"
	"time"

	"hotelx-backend/logger"
	"hotelx-backend/models"
	"hotelx-backend/storage"
	"hotelx-backend/utils"
)

// bookingTransitions is the lifecycle state machine. A checked-in stay is not
// cancellable, only completed.
var bookingTransitions = map[string][]string{
	models.BookingNew:        {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn:  {models.BookingCheckedOut},
	models.BookingCheckedOut: {},
	models.BookingCancelled:  {},
}

func transitionAllowed(from, to string) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// roomStatusAfter returns the room status cascade for a booking transition,
// or ok=false when the room is untouched.
func roomStatusAfter(bookingStatus string) (string, bool) {
	switch bookingStatus {
	case models.BookingCancelled, models.BookingCheckedOut:
		return models.RoomAvailable, true
	case models.BookingCheckedIn:
		return models.RoomOccupied, true
	}
	return "", false
}

// BookingService owns booking creation, partial updates, the lifecycle state
// machine and its room-status cascade.
type BookingService struct {
	store        storage.Store
	availability *AvailabilityService

	// roomLocks serializes availability check + write per room so two
	// concurrent requests for the same room and overlapping dates cannot
	// both succeed.
	roomLocks *keyedMutex
}

func NewBookingService(store storage.Store, availability *AvailabilityService) *BookingService {
	return &BookingService{
		store:        store,
		availability: availability,
		roomLocks:    newKeyedMutex(),
	}
}

// BookingCreate carries the client-settable fields for a new booking. Status
// and booking number are never client-supplied.
type BookingCreate struct {
	GuestID         uint      `json:"guestId" binding:"required"`
	RoomID          uint      `json:"roomId" binding:"required"`
	CheckInDate     time.Time `json:"checkInDate" binding:"required"`
	CheckOutDate    time.Time `json:"checkOutDate" binding:"required"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	TotalPrice      float64   `json:"totalPrice"`
	SpecialRequests string    `json:"specialRequests"`
}

// BookingUpdate is a partial update; nil fields are left untouched.
type BookingUpdate struct {
	GuestID         *uint      `json:"guestId"`
	RoomID          *uint      `json:"roomId"`
	Status          *string    `json:"status"`
	CheckInDate     *time.Time `json:"checkInDate"`
	CheckOutDate    *time.Time `json:"checkOutDate"`
	Adults          *int       `json:"adults"`
	Children        *int       `json:"children"`
	TotalPrice      *float64   `json:"totalPrice"`
	SpecialRequests *string    `json:"specialRequests"`
}

// CreateBooking validates dates and availability under the per-room lock,
// assigns a booking number and reserves the room.
func (s *BookingService) CreateBooking(req BookingCreate) (*models.Booking, error) {
	if !req.CheckInDate.Before(req.CheckOutDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Adults <= 0 {
		req.Adults = 1
	}
	if req.Children < 0 {
		req.Children = 0
	}

	if _, err := s.store.GetGuest(req.GuestID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to check guest %d: %w", req.GuestID, err)
	}

	if _, err := s.store.GetRoom(req.RoomID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to check room %d: %w", req.RoomID, err)
	}

	s.roomLocks.Lock(req.RoomID)
	defer s.roomLocks.Unlock(req.RoomID)

	free, err := s.availability.RoomAvailableFor(req.RoomID, req.CheckInDate, req.CheckOutDate, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrRoomAlreadyBooked
	}

	booking := &models.Booking{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		Status:          models.BookingNew,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPrice:      req.TotalPrice,
		SpecialRequests: req.SpecialRequests,
	}

	// Booking numbers collide rarely; retry generation instead of failing the
	// whole request.
	const maxRetries = 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		number, genErr := utils.GenerateBookingNumber()
		if genErr != nil {
			return nil, fmt.Errorf("failed to generate booking number: %w", genErr)
		}
		booking.BookingNumber = number

		createErr = s.store.CreateBooking(booking)
		if createErr == nil {
			break
		}
		if errors.Is(createErr, storage.ErrDuplicate) {
			logger.InfoLogger.Infof("booking number collision (attempt %d), retrying", attempt+1)
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", createErr)
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create booking after retries: %w", createErr)
	}

	if err := s.store.SetRoomStatus(req.RoomID, models.RoomReserved); err != nil {
		logger.ErrorLogger.Errorf("failed to reserve room %d for booking %d: %v", req.RoomID, booking.ID, err)
	}

	return s.store.GetBooking(booking.ID)
}

// UpdateBooking applies a partial update. Status changes run through the
// state machine and cascade to the room; date or room changes re-validate
// both date ordering and overlap under the per-room lock.
func (s *BookingService) UpdateBooking(id uint, req BookingUpdate) (*models.Booking, error) {
	booking, err := s.store.GetBooking(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if req.CheckInDate != nil {
		checkIn = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		checkOut = *req.CheckOutDate
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	roomID := booking.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
		if _, err := s.store.GetRoom(roomID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
	}

	if req.GuestID != nil {
		if _, err := s.store.GetGuest(*req.GuestID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrGuestNotFound
			}
			return nil, err
		}
	}

	if req.Status != nil && *req.Status != booking.Status {
		if !transitionAllowed(booking.Status, *req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, *req.Status)
		}
	}

	datesOrRoomChanged := req.CheckInDate != nil || req.CheckOutDate != nil || req.RoomID != nil

	s.roomLocks.Lock(roomID)
	defer s.roomLocks.Unlock(roomID)

	if datesOrRoomChanged && booking.Status != models.BookingCancelled {
		free, err := s.availability.RoomAvailableFor(roomID, checkIn, checkOut, booking.ID)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrRoomAlreadyBooked
		}
	}

	booking.RoomID = roomID
	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	if req.GuestID != nil {
		booking.GuestID = *req.GuestID
	}
	if req.Adults != nil && *req.Adults > 0 {
		booking.Adults = *req.Adults
	}
	if req.Children != nil && *req.Children >= 0 {
		booking.Children = *req.Children
	}
	if req.TotalPrice != nil {
		booking.TotalPrice = *req.TotalPrice
	}
	if req.SpecialRequests != nil {
		booking.SpecialRequests = *req.SpecialRequests
	}

	var cascade string
	var cascadeOK bool
	if req.Status != nil && *req.Status != booking.Status {
		booking.Status = *req.Status
		cascade, cascadeOK = roomStatusAfter(*req.Status)
	}

	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	if cascadeOK {
		if err := s.store.SetRoomStatus(booking.RoomID, cascade); err != nil {
			logger.ErrorLogger.Errorf("failed to cascade room %d status to %s: %v", booking.RoomID, cascade, err)
		}
	}

	return s.store.GetBooking(id)
}

// DeleteBooking removes the booking and releases its room back to available.
func (s *BookingService) DeleteBooking(id uint) error {
	booking, err := s.store.GetBooking(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	s.roomLocks.Lock(booking.RoomID)
	defer s.roomLocks.Unlock(booking.RoomID)

	if err := s.store.DeleteBooking(id); err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	if err := s.store.SetRoomStatus(booking.RoomID, models.RoomAvailable); err != nil {
		logger.ErrorLogger.Errorf("failed to release room %d after deleting booking %d: %v", booking.RoomID, id, err)
	}
	return nil
}

func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	booking, err := s.store.GetBooking(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookings() ([]models.Booking, error) {
	return s.store.ListBookings()
}
