package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrGatewayDeclined is returned when the processor rejects an operation
// (failed tokenization, 3DS rejection, declined or uncaptured charge).
var ErrGatewayDeclined = errors.New("gateway declined")

// CardDetails is what the front desk submits for a card payment. The full
// number never leaves the gateway call path and is never persisted.
type CardDetails struct {
	Number   string `json:"cardNumber"`
	ExpMonth string `json:"expMonth"`
	ExpYear  string `json:"expYear"`
	CVN      string `json:"cvn"`
}

type Token struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	MaskedCardNumber string `json:"masked_card_number"`
}

type Authentication struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ChargeRequest struct {
	TokenID          string
	AuthenticationID string
	ExternalID       string
	Amount           float64
}

type Charge struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

type InvoiceRequest struct {
	ExternalID  string
	Amount      float64
	PayerEmail  string
	Description string
}

type Invoice struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	InvoiceURL string          `json:"invoice_url"`
	Raw        json.RawMessage `json:"-"`
}

// WebhookEvent is a parsed gateway callback. ObjectID is the invoice id for
// invoice events and the charge id for card events.
type WebhookEvent struct {
	Type     string          `json:"event"`
	ObjectID string          `json:"-"`
	Raw      json.RawMessage `json:"-"`
}

// Webhook event types the reconciler understands.
const (
	EventInvoicePaid      = "invoice.paid"
	EventInvoiceExpired   = "invoice.expired"
	EventChargeCaptured   = "credit_card_charge.capture.succeeded"
	EventChargeFailed     = "credit_card_charge.capture.failed"
)

// Client is the narrow seam to the payment processor. Card payments run
// tokenize -> 3DS authenticate -> charge -> capture; bank transfers go
// through a hosted invoice settled later by webhook. The ledger only consumes
// ids and success/failure, never transport details.
type Client interface {
	TokenizeCard(ctx context.Context, card CardDetails) (*Token, error)
	Create3DSAuthentication(ctx context.Context, tokenID string, amount float64) (*Authentication, error)
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	CaptureCharge(ctx context.Context, chargeID string, amount float64) (*Charge, error)
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
	// ParseWebhook verifies the callback token and decodes the event payload.
	ParseWebhook(body []byte, callbackToken string) (*WebhookEvent, error)
}
