package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGuestDeduplicatesByEmail(t *testing.T) {
	f := newFixture(t)

	guest, created, err := f.guests.CreateGuest(GuestCreate{
		Name:  "Grace Hopper",
		Email: "grace@example.com",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Same email, different casing and details: the original record wins.
	again, created, err := f.guests.CreateGuest(GuestCreate{
		Name:  "G. Hopper",
		Email: "  GRACE@example.com ",
		Phone: "555-9999",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, guest.ID, again.ID)
	assert.Equal(t, "Grace Hopper", again.Name)
	assert.Equal(t, "555-0100", again.Phone)
}

func TestCreateGuestRequiresEmail(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.guests.CreateGuest(GuestCreate{Name: "No Email", Email: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateGuest(t *testing.T) {
	f := newFixture(t)

	phone := "555-0199"
	updated, err := f.guests.UpdateGuest(f.guest.ID, GuestUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, f.guest.Name, updated.Name, "unset fields stay put")

	_, err = f.guests.UpdateGuest(999, GuestUpdate{Phone: &phone})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestUpdateGuestEmailConflict(t *testing.T) {
	f := newFixture(t)

	other, _, err := f.guests.CreateGuest(GuestCreate{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	taken := f.guest.Email
	_, err = f.guests.UpdateGuest(other.ID, GuestUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteGuest(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.guests.DeleteGuest(f.guest.ID))
	_, err := f.guests.GetGuest(f.guest.ID)
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.ErrorIs(t, f.guests.DeleteGuest(f.guest.ID), ErrGuestNotFound)
}
