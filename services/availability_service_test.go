package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelx-backend/models"
)

func roomNumbers(rooms []models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

func TestFindAvailableRoomsRejectsBadRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.avail.FindAvailableRooms(day(5), day(5), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.avail.FindAvailableRooms(day(6), day(5), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestFindAvailableRoomsExcludesOverlaps(t *testing.T) {
	f := newFixture(t)
	f.createBooking(t, f.room1.ID, day(10), day(15))

	rooms, err := f.avail.FindAvailableRooms(day(12), day(14), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"102"}, roomNumbers(rooms))

	// Disjoint range: both rooms free again.
	rooms, err = f.avail.FindAvailableRooms(day(20), day(25), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, roomNumbers(rooms))
}

func TestFindAvailableRoomsTouchingRanges(t *testing.T) {
	f := newFixture(t)
	f.createBooking(t, f.room1.ID, day(10), day(15))

	// A stay starting on the checkout day does not collide.
	rooms, err := f.avail.FindAvailableRooms(day(15), day(18), nil)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "101")

	// Neither does one ending on the check-in day.
	rooms, err = f.avail.FindAvailableRooms(day(7), day(10), nil)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "101")
}

func TestFindAvailableRoomsReservedStatusStillBookable(t *testing.T) {
	f := newFixture(t)
	// Creating the booking flips room 101 to reserved.
	f.createBooking(t, f.room1.ID, day(10), day(15))
	assert.Equal(t, models.RoomReserved, f.roomStatus(t, f.room1.ID))

	// Status does not block disjoint dates; only overlap does.
	rooms, err := f.avail.FindAvailableRooms(day(20), day(22), nil)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "101")
}

func TestFindAvailableRoomsMaintenanceExcluded(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetRoomStatus(f.room1.ID, models.RoomMaintenance))

	rooms, err := f.avail.FindAvailableRooms(day(1), day(2), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"102"}, roomNumbers(rooms))
}

func TestFindAvailableRoomsCategoryFilter(t *testing.T) {
	f := newFixture(t)

	suite := models.RoomCategory{Name: "Suite", BasePrice: 249, Capacity: 4}
	require.NoError(t, f.store.CreateCategory(&suite))
	room := models.Room{RoomNumber: "301", CategoryID: suite.ID, Status: models.RoomAvailable}
	require.NoError(t, f.store.CreateRoom(&room))

	rooms, err := f.avail.FindAvailableRooms(day(1), day(2), &suite.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"301"}, roomNumbers(rooms))
}

func TestFindAvailableRoomsCancelledBookingFreesRange(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	cancelled := models.BookingCancelled
	_, err := f.bookings.UpdateBooking(booking.ID, BookingUpdate{Status: &cancelled})
	require.NoError(t, err)

	rooms, err := f.avail.FindAvailableRooms(day(10), day(15), nil)
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "101")
}

func TestRoomAvailableForExcludesOwnBooking(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	// Without exclusion the booking blocks its own room.
	free, err := f.avail.RoomAvailableFor(f.room1.ID, day(10), day(15), 0)
	require.NoError(t, err)
	assert.False(t, free)

	// Excluding itself, shifting within the same window is fine.
	free, err = f.avail.RoomAvailableFor(f.room1.ID, day(11), day(16), booking.ID)
	require.NoError(t, err)
	assert.True(t, free)
}
