package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelx-backend/gateway"
	"hotelx-backend/models"
)

func TestCreatePaymentDefaultsToUnpaid(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.CreatePayment(PaymentCreate{
		BookingID:     booking.ID,
		Amount:        178,
		PaymentMethod: models.MethodVisa,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, payment.Status)
	assert.Nil(t, payment.PaymentDate)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingNew, got.Status, "unpaid payments never advance the booking")
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	_, err := f.payments.CreatePayment(PaymentCreate{
		BookingID: booking.ID, PaymentMethod: models.MethodVisa, Status: "settled",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.payments.CreatePayment(PaymentCreate{
		BookingID: booking.ID, PaymentMethod: "bitcoin",
	})
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = f.payments.CreatePayment(PaymentCreate{
		BookingID: 999, PaymentMethod: models.MethodVisa,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestPaidPaymentCascadesBooking(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.CreatePayment(PaymentCreate{
		BookingID:     booking.ID,
		Amount:        178,
		PaymentMethod: models.MethodVisa,
		Status:        models.PaymentPaid,
	})
	require.NoError(t, err)
	require.NotNil(t, payment.PaymentDate)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestPaidCascadeDoesNotRegressLaterStatuses(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	for _, status := range []string{models.BookingConfirmed, models.BookingCheckedIn} {
		s := status
		_, err := f.bookings.UpdateBooking(booking.ID, BookingUpdate{Status: &s})
		require.NoError(t, err)
	}

	_, err := f.payments.CreatePayment(PaymentCreate{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodVisa,
		Status:        models.PaymentPaid,
	})
	require.NoError(t, err)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, got.Status, "paid cascade only lifts new bookings")
}

func TestUpdatePaymentPaidIsIdempotent(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.CreatePayment(PaymentCreate{
		BookingID:     booking.ID,
		Amount:        178,
		PaymentMethod: models.MethodVisa,
	})
	require.NoError(t, err)

	paid := models.PaymentPaid
	first, err := f.payments.UpdatePayment(payment.ID, PaymentUpdate{Status: &paid})
	require.NoError(t, err)
	require.NotNil(t, first.PaymentDate)
	stamped := *first.PaymentDate

	time.Sleep(5 * time.Millisecond)

	second, err := f.payments.UpdatePayment(payment.ID, PaymentUpdate{Status: &paid})
	require.NoError(t, err)
	require.NotNil(t, second.PaymentDate)
	assert.Equal(t, stamped, *second.PaymentDate, "payment_date stamps once")

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestProcessCardPaymentSuccess(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.ProcessPayment(context.Background(), ProcessRequest{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodVisa,
		Card: gateway.CardDetails{
			Number: "4111111111111111", ExpMonth: "12", ExpYear: "2030", CVN: "123",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Equal(t, "1111", payment.CardLastFour)
	require.NotNil(t, payment.TransactionID)
	assert.Equal(t, "chg-1", *payment.TransactionID)
	assert.Equal(t, 1, f.gw.captured)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestProcessCardPaymentDeclineLeavesAuditRow(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))
	f.gw.failAt = "charge"

	payment, err := f.payments.ProcessPayment(context.Background(), ProcessRequest{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodVisa,
		Card:          gateway.CardDetails{Number: "4000000000000002"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrGatewayDeclined))
	require.NotNil(t, payment, "the failed attempt is still recorded")
	assert.Equal(t, models.PaymentFailed, payment.Status)
	assert.Equal(t, "0002", payment.CardLastFour)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingNew, got.Status, "declined payments never confirm")
}

func TestProcessBankTransferCreatesInvoice(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.ProcessPayment(context.Background(), ProcessRequest{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProcessing, payment.Status)
	require.NotNil(t, payment.InvoiceID)
	assert.Equal(t, "inv-1", *payment.InvoiceID)
	assert.Equal(t, 1, f.gw.invoiced)
	assert.Equal(t, 0, f.gw.tokenized)
}

func TestWebhookSettlesInvoicePayment(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.ProcessPayment(context.Background(), ProcessRequest{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodBankTransfer,
	})
	require.NoError(t, err)

	f.gw.webhookEvent = &gateway.WebhookEvent{Type: gateway.EventInvoicePaid, ObjectID: "inv-1"}
	require.NoError(t, f.payments.HandleWebhook([]byte(`{}`), "token"))

	settled, err := f.payments.GetPayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, settled.Status)
	assert.NotNil(t, settled.PaymentDate)

	got, err := f.bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestWebhookExpiredInvoiceFailsPayment(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, f.room1.ID, day(10), day(15))

	payment, err := f.payments.ProcessPayment(context.Background(), ProcessRequest{
		BookingID:     booking.ID,
		PaymentMethod: models.MethodBankTransfer,
	})
	require.NoError(t, err)

	f.gw.webhookEvent = &gateway.WebhookEvent{Type: gateway.EventInvoiceExpired, ObjectID: "inv-1"}
	require.NoError(t, f.payments.HandleWebhook([]byte(`{}`), "token"))

	got, err := f.payments.GetPayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, got.Status)
	assert.Nil(t, got.PaymentDate)
}

func TestWebhookUnknownObjectIsDropped(t *testing.T) {
	f := newFixture(t)

	f.gw.webhookEvent = &gateway.WebhookEvent{Type: gateway.EventInvoicePaid, ObjectID: "inv-never-issued"}
	assert.NoError(t, f.payments.HandleWebhook([]byte(`{}`), "token"))

	payments, err := f.payments.ListPayments()
	require.NoError(t, err)
	assert.Empty(t, payments, "no payment is fabricated from a webhook")
}

func TestWebhookUnhandledEventIgnored(t *testing.T) {
	f := newFixture(t)

	f.gw.webhookEvent = &gateway.WebhookEvent{Type: "invoice.viewed", ObjectID: "inv-1"}
	assert.NoError(t, f.payments.HandleWebhook([]byte(`{}`), "token"))
}

func TestWebhookRejectedTokenPropagates(t *testing.T) {
	f := newFixture(t)

	f.gw.webhookErr = errors.New("callback token mismatch")
	assert.Error(t, f.payments.HandleWebhook([]byte(`{}`), "wrong"))
}
