package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hotelx-backend/gateway"
	"hotelx-backend/logger"
	"hotelx-backend/models"
	"hotelx-backend/storage"
)

var validPaymentStatuses = map[string]bool{
	models.PaymentUnpaid:     true,
	models.PaymentProcessing: true,
	models.PaymentPaid:       true,
	models.PaymentFailed:     true,
}

var validPaymentMethods = map[string]bool{
	models.MethodVisa:         true,
	models.MethodMastercard:   true,
	models.MethodAmex:         true,
	models.MethodBankTransfer: true,
}

// PaymentService records payment attempts and keeps booking status consistent
// with payment outcomes. Every gateway attempt leaves a row, success or not.
type PaymentService struct {
	store storage.Store
	gw    gateway.Client

	// bookingLocks serializes payment transitions per booking so the paid
	// cascade (new -> confirmed, payment_date stamp) runs at most once.
	bookingLocks *keyedMutex

	gatewayTimeout time.Duration
}

func NewPaymentService(store storage.Store, gw gateway.Client) *PaymentService {
	return &PaymentService{
		store:          store,
		gw:             gw,
		bookingLocks:   newKeyedMutex(),
		gatewayTimeout: 10 * time.Second,
	}
}

// PaymentCreate records a payment attempt whose outcome is already known
// (manual entry or a settled gateway flow).
type PaymentCreate struct {
	BookingID     uint    `json:"bookingId" binding:"required"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Status        string  `json:"status"`
	CardLastFour  string  `json:"cardLastFour"`
	TransactionID *string `json:"transactionId"`
	InvoiceID     *string `json:"invoiceId"`

	gatewayResponse []byte
}

// PaymentUpdate is a partial update; nil fields are left untouched.
type PaymentUpdate struct {
	Status        *string  `json:"status"`
	Amount        *float64 `json:"amount"`
	TransactionID *string  `json:"transactionId"`
	InvoiceID     *string  `json:"invoiceId"`
}

// CreatePayment always inserts a new row (no upsert). A payment created
// directly in status paid stamps payment_date and advances a booking still in
// "new" to "confirmed".
func (s *PaymentService) CreatePayment(req PaymentCreate) (*models.Payment, error) {
	if req.Status == "" {
		req.Status = models.PaymentUnpaid
	}
	if !validPaymentStatuses[req.Status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if !validPaymentMethods[req.PaymentMethod] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, req.PaymentMethod)
	}

	booking, err := s.store.GetBooking(req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.bookingLocks.Lock(req.BookingID)
	defer s.bookingLocks.Unlock(req.BookingID)

	payment := &models.Payment{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		CardLastFour:  req.CardLastFour,
		TransactionID: req.TransactionID,
		InvoiceID:     req.InvoiceID,
	}
	if len(req.gatewayResponse) > 0 {
		payment.GatewayResponse = datatypes.JSON(req.gatewayResponse)
	}
	if req.Status == models.PaymentPaid {
		now := time.Now().UTC()
		payment.PaymentDate = &now
	}

	if err := s.store.CreatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if req.Status == models.PaymentPaid {
		s.cascadeBookingConfirmed(booking.ID)
	}

	return s.store.GetPayment(payment.ID)
}

// UpdatePayment applies a partial update. The transition into paid stamps
// payment_date and cascades exactly once; repeating the paid update neither
// re-stamps nor re-cascades.
func (s *PaymentService) UpdatePayment(id uint, req PaymentUpdate) (*models.Payment, error) {
	payment, err := s.store.GetPayment(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	s.bookingLocks.Lock(payment.BookingID)
	defer s.bookingLocks.Unlock(payment.BookingID)

	// Re-read under the lock so concurrent paid updates observe each other.
	payment, err = s.store.GetPayment(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !validPaymentStatuses[*req.Status] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		becamePaid := *req.Status == models.PaymentPaid && payment.Status != models.PaymentPaid
		payment.Status = *req.Status
		if becamePaid {
			now := time.Now().UTC()
			payment.PaymentDate = &now
			s.cascadeBookingConfirmed(payment.BookingID)
		}
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.TransactionID != nil {
		payment.TransactionID = req.TransactionID
	}
	if req.InvoiceID != nil {
		payment.InvoiceID = req.InvoiceID
	}

	if err := s.store.UpdatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to update payment %d: %w", id, err)
	}
	return s.store.GetPayment(id)
}

// cascadeBookingConfirmed advances a booking in "new" to "confirmed". Any
// later status is left alone. Reads under the caller's booking lock.
func (s *PaymentService) cascadeBookingConfirmed(bookingID uint) {
	booking, err := s.store.GetBooking(bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("paid cascade: booking %d not loadable: %v", bookingID, err)
		return
	}
	if booking.Status != models.BookingNew {
		return
	}
	booking.Status = models.BookingConfirmed
	if err := s.store.UpdateBooking(booking); err != nil {
		logger.ErrorLogger.Errorf("failed to confirm booking %d after payment: %v", booking.ID, err)
	}
}

// ProcessRequest drives a gateway payment for a booking. Card methods run the
// tokenize -> 3DS -> charge -> capture flow; bank transfers create a hosted
// invoice settled later by webhook.
type ProcessRequest struct {
	BookingID     uint                `json:"bookingId" binding:"required"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
	Card          gateway.CardDetails `json:"card"`
	PayerEmail    string              `json:"payerEmail"`
}

// ProcessPayment executes the gateway flow. On any gateway failure (decline,
// timeout) a failed Payment row is still persisted so the attempt is
// auditable; the returned error tells the caller it did not go through.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessRequest) (*models.Payment, error) {
	if !validPaymentMethods[req.PaymentMethod] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, req.PaymentMethod)
	}

	booking, err := s.store.GetBooking(req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	externalID := fmt.Sprintf("BOOK-%d-%s", booking.ID, uuid.NewString()[:8])

	if req.PaymentMethod == models.MethodBankTransfer {
		return s.processInvoice(ctx, booking, req, externalID)
	}
	return s.processCardCharge(ctx, booking, req, externalID)
}

func (s *PaymentService) processCardCharge(ctx context.Context, booking *models.Booking, req ProcessRequest, externalID string) (*models.Payment, error) {
	lastFour := ""
	if n := len(req.Card.Number); n >= 4 {
		lastFour = req.Card.Number[n-4:]
	}

	fail := func(step string, raw []byte, cause error) (*models.Payment, error) {
		logger.ErrorLogger.Errorf("gateway %s failed for booking %d: %v", step, booking.ID, cause)
		payment, createErr := s.CreatePayment(PaymentCreate{
			BookingID:       booking.ID,
			Amount:          booking.TotalPrice,
			PaymentMethod:   req.PaymentMethod,
			Status:          models.PaymentFailed,
			CardLastFour:    lastFour,
			gatewayResponse: raw,
		})
		if createErr != nil {
			logger.ErrorLogger.Errorf("failed to record failed payment for booking %d: %v", booking.ID, createErr)
			return nil, fmt.Errorf("payment failed at %s: %w", step, cause)
		}
		return payment, fmt.Errorf("payment failed at %s: %w", step, cause)
	}

	token, err := s.gw.TokenizeCard(ctx, req.Card)
	if err != nil {
		return fail("tokenization", nil, err)
	}

	auth, err := s.gw.Create3DSAuthentication(ctx, token.ID, booking.TotalPrice)
	if err != nil {
		return fail("3ds-authentication", nil, err)
	}

	charge, err := s.gw.CreateCharge(ctx, gateway.ChargeRequest{
		TokenID:          token.ID,
		AuthenticationID: auth.ID,
		ExternalID:       externalID,
		Amount:           booking.TotalPrice,
	})
	if err != nil {
		return fail("charge", nil, err)
	}

	capture, err := s.gw.CaptureCharge(ctx, charge.ID, booking.TotalPrice)
	if err != nil {
		return fail("capture", charge.Raw, err)
	}

	return s.CreatePayment(PaymentCreate{
		BookingID:       booking.ID,
		Amount:          booking.TotalPrice,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentPaid,
		CardLastFour:    lastFour,
		TransactionID:   &capture.ID,
		gatewayResponse: capture.Raw,
	})
}

func (s *PaymentService) processInvoice(ctx context.Context, booking *models.Booking, req ProcessRequest, externalID string) (*models.Payment, error) {
	payerEmail := req.PayerEmail
	if payerEmail == "" {
		payerEmail = booking.Guest.Email
	}

	invoice, err := s.gw.CreateInvoice(ctx, gateway.InvoiceRequest{
		ExternalID:  externalID,
		Amount:      booking.TotalPrice,
		PayerEmail:  payerEmail,
		Description: fmt.Sprintf("Room booking %s", booking.BookingNumber),
	})
	if err != nil {
		logger.ErrorLogger.Errorf("gateway invoice creation failed for booking %d: %v", booking.ID, err)
		payment, createErr := s.CreatePayment(PaymentCreate{
			BookingID:     booking.ID,
			Amount:        booking.TotalPrice,
			PaymentMethod: req.PaymentMethod,
			Status:        models.PaymentFailed,
		})
		if createErr != nil {
			return nil, fmt.Errorf("payment failed at invoice-create: %w", err)
		}
		return payment, fmt.Errorf("payment failed at invoice-create: %w", err)
	}

	return s.CreatePayment(PaymentCreate{
		BookingID:       booking.ID,
		Amount:          booking.TotalPrice,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentProcessing,
		InvoiceID:       &invoice.ID,
		gatewayResponse: invoice.Raw,
	})
}

// HandleWebhook reconciles a gateway callback against the ledger. Events for
// unknown payments are logged and dropped; no payment is fabricated from a
// webhook alone.
func (s *PaymentService) HandleWebhook(body []byte, callbackToken string) error {
	event, err := s.gw.ParseWebhook(body, callbackToken)
	if err != nil {
		return fmt.Errorf("webhook rejected: %w", err)
	}

	var payment *models.Payment
	var lookupErr error
	switch event.Type {
	case gateway.EventInvoicePaid, gateway.EventInvoiceExpired:
		payment, lookupErr = s.store.GetPaymentByInvoiceID(event.ObjectID)
	case gateway.EventChargeCaptured, gateway.EventChargeFailed:
		payment, lookupErr = s.store.GetPaymentByTransactionID(event.ObjectID)
	default:
		logger.InfoLogger.Infof("ignoring unhandled webhook event %q", event.Type)
		return nil
	}

	if lookupErr != nil {
		if errors.Is(lookupErr, storage.ErrNotFound) {
			logger.InfoLogger.Infof("webhook %s for unknown payment object %q, dropping", event.Type, event.ObjectID)
			return nil
		}
		return lookupErr
	}

	status := models.PaymentPaid
	if event.Type == gateway.EventInvoiceExpired || event.Type == gateway.EventChargeFailed {
		status = models.PaymentFailed
	}

	_, err = s.UpdatePayment(payment.ID, PaymentUpdate{Status: &status})
	if err != nil {
		return fmt.Errorf("webhook reconciliation for payment %d failed: %w", payment.ID, err)
	}
	logger.InfoLogger.Infof("webhook %s settled payment %d as %s", event.Type, payment.ID, status)
	return nil
}

func (s *PaymentService) GetPayment(id uint) (*models.Payment, error) {
	payment, err := s.store.GetPayment(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListPayments() ([]models.Payment, error) {
	return s.store.ListPayments()
}
