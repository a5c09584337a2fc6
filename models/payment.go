package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment statuses. "processing" is valid until the gateway webhook settles it.
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentFailed     = "failed"
)

// Accepted payment methods.
const (
	MethodVisa         = "visa"
	MethodMastercard   = "mastercard"
	MethodAmex         = "amex"
	MethodBankTransfer = "bank_transfer"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BookingID uint `gorm:"index;column:booking_id" json:"bookingId"`

	// Gateway identifiers; unique when present. Card charges carry a
	// transaction id, invoice flows carry an invoice id.
	TransactionID *string `gorm:"column:transaction_id;uniqueIndex;size:64" json:"transactionId,omitempty"`
	InvoiceID     *string `gorm:"column:invoice_id;uniqueIndex;size:64" json:"invoiceId,omitempty"`

	Amount        float64 `json:"amount"`
	PaymentMethod string  `gorm:"column:payment_method;size:32" json:"paymentMethod"`
	Status        string  `gorm:"size:32;default:unpaid" json:"status"`

	CardLastFour string     `gorm:"column:card_last_four;size:4" json:"cardLastFour,omitempty"`
	PaymentDate  *time.Time `gorm:"column:payment_date" json:"paymentDate,omitempty"`

	// Raw gateway payload for the last attempt, kept for audit.
	GatewayResponse datatypes.JSON `gorm:"column:gateway_response" json:"gatewayResponse,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
