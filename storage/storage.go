package storage

import (
	"errors"
	"time"

	"hotelx-backend/models"
)

// ErrNotFound is returned when the requested record does not exist. Backends
// translate their own not-found conditions into it.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint would be violated
// (room number, guest email, booking number, gateway ids).
var ErrDuplicate = errors.New("duplicate record")

// Store is the persistence boundary for the booking ledger. Records are only
// mutated through the services; backends stay dumb CRUD.
//
// Reads that carry relations (rooms with category, bookings and payments with
// details) resolve them in the backend so callers never join by hand.
type Store interface {
	// Users
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error

	// Room categories
	ListCategories() ([]models.RoomCategory, error)
	GetCategory(id uint) (*models.RoomCategory, error)
	CreateCategory(category *models.RoomCategory) error
	UpdateCategory(category *models.RoomCategory) error
	DeleteCategory(id uint) error

	// Rooms
	ListRooms() ([]models.Room, error)
	GetRoom(id uint) (*models.Room, error)
	GetRoomByNumber(number string) (*models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoom(room *models.Room) error
	SetRoomStatus(id uint, status string) error
	DeleteRoom(id uint) error

	// Guests
	ListGuests() ([]models.Guest, error)
	GetGuest(id uint) (*models.Guest, error)
	GetGuestByEmail(email string) (*models.Guest, error)
	CreateGuest(guest *models.Guest) error
	UpdateGuest(guest *models.Guest) error
	DeleteGuest(id uint) error

	// Bookings
	ListBookings() ([]models.Booking, error)
	GetBooking(id uint) (*models.Booking, error)
	GetBookingByNumber(number string) (*models.Booking, error)
	// GetBookingsOverlapping returns non-cancelled bookings whose stay
	// intersects the half-open range [checkIn, checkOut).
	GetBookingsOverlapping(checkIn, checkOut time.Time) ([]models.Booking, error)
	CreateBooking(booking *models.Booking) error
	UpdateBooking(booking *models.Booking) error
	DeleteBooking(id uint) error

	// Payments
	ListPayments() ([]models.Payment, error)
	GetPayment(id uint) (*models.Payment, error)
	GetPaymentByTransactionID(transactionID string) (*models.Payment, error)
	GetPaymentByInvoiceID(invoiceID string) (*models.Payment, error)
	GetPaymentByBookingID(bookingID uint) (*models.Payment, error)
	CreatePayment(payment *models.Payment) error
	UpdatePayment(payment *models.Payment) error
	DeletePayment(id uint) error
}
