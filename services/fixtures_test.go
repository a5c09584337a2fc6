package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotelx-backend/gateway"
	"hotelx-backend/models"
	"hotelx-backend/storage"
)

func day(d int) time.Time {
	return time.Date(2026, time.November, d, 0, 0, 0, 0, time.UTC)
}

// fixture wires the full service graph over a fresh memory store with one
// category, two rooms and one guest.
type fixture struct {
	store    *storage.MemoryStore
	gw       *fakeGateway
	avail    *AvailabilityService
	bookings *BookingService
	payments *PaymentService
	guests   *GuestService
	rooms    *RoomService
	stats    *StatsService

	category models.RoomCategory
	room1    models.Room
	room2    models.Room
	guest    models.Guest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	gw := &fakeGateway{}

	f := &fixture{
		store: store,
		gw:    gw,
	}
	f.avail = NewAvailabilityService(store)
	f.bookings = NewBookingService(store, f.avail)
	f.payments = NewPaymentService(store, gw)
	f.guests = NewGuestService(store)
	f.rooms = NewRoomService(store)
	f.stats = NewStatsService(store)

	f.category = models.RoomCategory{Name: "Standard", BasePrice: 89, Capacity: 2}
	require.NoError(t, store.CreateCategory(&f.category))

	f.room1 = models.Room{RoomNumber: "101", CategoryID: f.category.ID, Status: models.RoomAvailable}
	require.NoError(t, store.CreateRoom(&f.room1))
	f.room2 = models.Room{RoomNumber: "102", CategoryID: f.category.ID, Status: models.RoomAvailable}
	require.NoError(t, store.CreateRoom(&f.room2))

	f.guest = models.Guest{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, store.CreateGuest(&f.guest))

	return f
}

func (f *fixture) createBooking(t *testing.T, roomID uint, checkIn, checkOut time.Time) *models.Booking {
	t.Helper()
	booking, err := f.bookings.CreateBooking(BookingCreate{
		GuestID:      f.guest.ID,
		RoomID:       roomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   178,
	})
	require.NoError(t, err)
	return booking
}

func (f *fixture) roomStatus(t *testing.T, id uint) string {
	t.Helper()
	room, err := f.store.GetRoom(id)
	require.NoError(t, err)
	return room.Status
}

// fakeGateway is a scriptable gateway.Client. Zero-valued it approves
// everything; set failAt to the step name to make that call fail.
type fakeGateway struct {
	failAt string

	tokenized int
	charged   int
	captured  int
	invoiced  int

	webhookEvent *gateway.WebhookEvent
	webhookErr   error
}

func (g *fakeGateway) step(name string) error {
	if g.failAt == name {
		return fmt.Errorf("%w: scripted %s failure", gateway.ErrGatewayDeclined, name)
	}
	return nil
}

func (g *fakeGateway) TokenizeCard(ctx context.Context, card gateway.CardDetails) (*gateway.Token, error) {
	if err := g.step("tokenize"); err != nil {
		return nil, err
	}
	g.tokenized++
	return &gateway.Token{ID: "tok-1", Status: "VERIFIED"}, nil
}

func (g *fakeGateway) Create3DSAuthentication(ctx context.Context, tokenID string, amount float64) (*gateway.Authentication, error) {
	if err := g.step("authenticate"); err != nil {
		return nil, err
	}
	return &gateway.Authentication{ID: "auth-1", Status: "VERIFIED"}, nil
}

func (g *fakeGateway) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	if err := g.step("charge"); err != nil {
		return nil, err
	}
	g.charged++
	raw, _ := json.Marshal(map[string]string{"id": "chg-1", "status": "AUTHORIZED"})
	return &gateway.Charge{ID: "chg-1", Status: "AUTHORIZED", Raw: raw}, nil
}

func (g *fakeGateway) CaptureCharge(ctx context.Context, chargeID string, amount float64) (*gateway.Charge, error) {
	if err := g.step("capture"); err != nil {
		return nil, err
	}
	g.captured++
	raw, _ := json.Marshal(map[string]string{"id": chargeID, "status": "CAPTURED"})
	return &gateway.Charge{ID: chargeID, Status: "CAPTURED", Raw: raw}, nil
}

func (g *fakeGateway) CreateInvoice(ctx context.Context, req gateway.InvoiceRequest) (*gateway.Invoice, error) {
	if err := g.step("invoice"); err != nil {
		return nil, err
	}
	g.invoiced++
	raw, _ := json.Marshal(map[string]string{"id": "inv-1", "status": "PENDING"})
	return &gateway.Invoice{ID: "inv-1", Status: "PENDING", InvoiceURL: "https://pay.example.com/inv-1", Raw: raw}, nil
}

func (g *fakeGateway) ParseWebhook(body []byte, callbackToken string) (*gateway.WebhookEvent, error) {
	if g.webhookErr != nil {
		return nil, g.webhookErr
	}
	if g.webhookEvent != nil {
		return g.webhookEvent, nil
	}
	var event gateway.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
