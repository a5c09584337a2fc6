package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelx-backend/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.October, d, 0, 0, 0, 0, time.UTC)
}

func seedRoom(t *testing.T, s *MemoryStore) *models.Room {
	t.Helper()
	category := &models.RoomCategory{Name: "Standard", BasePrice: 89, Capacity: 2}
	require.NoError(t, s.CreateCategory(category))
	room := &models.Room{RoomNumber: "101", CategoryID: category.ID, Status: models.RoomAvailable}
	require.NoError(t, s.CreateRoom(room))
	return room
}

func seedGuest(t *testing.T, s *MemoryStore) *models.Guest {
	t.Helper()
	guest := &models.Guest{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, s.CreateGuest(guest))
	return guest
}

func TestMemoryStoreRoomUniqueness(t *testing.T) {
	s := NewMemoryStore()
	seedRoom(t, s)

	err := s.CreateRoom(&models.Room{RoomNumber: "101", CategoryID: 1})
	assert.ErrorIs(t, err, ErrDuplicate)

	other := &models.Room{RoomNumber: "102", CategoryID: 1}
	require.NoError(t, s.CreateRoom(other))

	other.RoomNumber = "101"
	assert.ErrorIs(t, s.UpdateRoom(other), ErrDuplicate)
}

func TestMemoryStoreGuestEmailUniqueness(t *testing.T) {
	s := NewMemoryStore()
	seedGuest(t, s)

	err := s.CreateGuest(&models.Guest{Name: "Impostor", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := s.GetGuestByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", found.Name)

	_, err = s.GetGuestByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreBookingOverlapQuery(t *testing.T) {
	s := NewMemoryStore()
	room := seedRoom(t, s)
	guest := seedGuest(t, s)

	active := &models.Booking{
		BookingNumber: "BK-20261001-AAAAAA",
		GuestID:       guest.ID,
		RoomID:        room.ID,
		Status:        models.BookingConfirmed,
		CheckInDate:   day(10),
		CheckOutDate:  day(15),
	}
	require.NoError(t, s.CreateBooking(active))

	cancelled := &models.Booking{
		BookingNumber: "BK-20261001-BBBBBB",
		GuestID:       guest.ID,
		RoomID:        room.ID,
		Status:        models.BookingCancelled,
		CheckInDate:   day(10),
		CheckOutDate:  day(15),
	}
	require.NoError(t, s.CreateBooking(cancelled))

	overlapping, err := s.GetBookingsOverlapping(day(12), day(20))
	require.NoError(t, err)
	require.Len(t, overlapping, 1, "cancelled bookings never block a range")
	assert.Equal(t, active.ID, overlapping[0].ID)

	// Half-open semantics: a range starting on the checkout day is free.
	overlapping, err = s.GetBookingsOverlapping(day(15), day(20))
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestMemoryStoreBookingNumberUniqueness(t *testing.T) {
	s := NewMemoryStore()
	room := seedRoom(t, s)
	guest := seedGuest(t, s)

	b := models.Booking{
		BookingNumber: "BK-20261001-CCCCCC",
		GuestID:       guest.ID,
		RoomID:        room.ID,
		Status:        models.BookingNew,
		CheckInDate:   day(1),
		CheckOutDate:  day(2),
	}
	first := b
	require.NoError(t, s.CreateBooking(&first))

	second := b
	assert.ErrorIs(t, s.CreateBooking(&second), ErrDuplicate)
}

func TestMemoryStoreBookingDetailsComposition(t *testing.T) {
	s := NewMemoryStore()
	room := seedRoom(t, s)
	guest := seedGuest(t, s)

	booking := &models.Booking{
		BookingNumber: "BK-20261001-DDDDDD",
		GuestID:       guest.ID,
		RoomID:        room.ID,
		Status:        models.BookingNew,
		CheckInDate:   day(1),
		CheckOutDate:  day(3),
	}
	require.NoError(t, s.CreateBooking(booking))

	older := &models.Payment{BookingID: booking.ID, Amount: 50, PaymentMethod: models.MethodVisa, Status: models.PaymentFailed}
	require.NoError(t, s.CreatePayment(older))
	newer := &models.Payment{BookingID: booking.ID, Amount: 178, PaymentMethod: models.MethodVisa, Status: models.PaymentPaid}
	require.NoError(t, s.CreatePayment(newer))

	got, err := s.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.Email, got.Guest.Email)
	assert.Equal(t, room.RoomNumber, got.Room.RoomNumber)
	assert.Equal(t, "Standard", got.Room.Category.Name)
	require.NotNil(t, got.Payment)
	assert.Equal(t, newer.ID, got.Payment.ID, "latest payment wins")

	latest, err := s.GetPaymentByBookingID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestMemoryStorePaymentIdentifierUniqueness(t *testing.T) {
	s := NewMemoryStore()
	txn := "txn-123"
	inv := "inv-456"

	require.NoError(t, s.CreatePayment(&models.Payment{BookingID: 1, TransactionID: &txn}))
	assert.ErrorIs(t, s.CreatePayment(&models.Payment{BookingID: 2, TransactionID: &txn}), ErrDuplicate)

	require.NoError(t, s.CreatePayment(&models.Payment{BookingID: 1, InvoiceID: &inv}))
	assert.ErrorIs(t, s.CreatePayment(&models.Payment{BookingID: 2, InvoiceID: &inv}), ErrDuplicate)

	byTxn, err := s.GetPaymentByTransactionID(txn)
	require.NoError(t, err)
	assert.Equal(t, uint(1), byTxn.BookingID)

	byInv, err := s.GetPaymentByInvoiceID(inv)
	require.NoError(t, err)
	assert.Equal(t, uint(1), byInv.BookingID)
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetRoom(99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetBooking(99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetPayment(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteBooking(99), ErrNotFound)
	assert.ErrorIs(t, s.SetRoomStatus(99, models.RoomAvailable), ErrNotFound)
	_, err = s.GetUserByUsername("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdatePreservesCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	room := seedRoom(t, s)
	created := room.CreatedAt

	room.Status = models.RoomMaintenance
	require.NoError(t, s.UpdateRoom(room))

	got, err := s.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, models.RoomMaintenance, got.Status)
}
