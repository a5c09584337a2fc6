package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T, handler http.HandlerFunc) *XenditClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewXenditClient("xnd_test_key", "cb-token")
	c.SetBaseURL(srv.URL)
	return c
}

func TestTokenizeCardVerified(t *testing.T) {
	var gotAuth string
	c := newMockedClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/credit_card_tokens", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "4111111111111111", body["card_number"])

		json.NewEncoder(w).Encode(map[string]string{"id": "tok-99", "status": "VERIFIED"})
	})

	token, err := c.TokenizeCard(context.Background(), CardDetails{
		Number: "4111111111111111", ExpMonth: "12", ExpYear: "2030", CVN: "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-99", token.ID)
	assert.NotEmpty(t, gotAuth, "requests carry basic auth")
}

func TestTokenizeCardUnverifiedStatus(t *testing.T) {
	c := newMockedClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "tok-99", "status": "FAILED"})
	})

	_, err := c.TokenizeCard(context.Background(), CardDetails{Number: "4111111111111111"})
	assert.ErrorIs(t, err, ErrGatewayDeclined)
}

func TestCreateChargeDeclinedByStatusCode(t *testing.T) {
	c := newMockedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error_code": "INSUFFICIENT_BALANCE"})
	})

	_, err := c.CreateCharge(context.Background(), ChargeRequest{
		TokenID: "tok-1", ExternalID: "BOOK-1-abc", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrGatewayDeclined)
}

func TestCaptureChargeKeepsRawPayload(t *testing.T) {
	c := newMockedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/credit_card_charges/chg-7/capture", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "chg-7", "status": "CAPTURED", "capture_amount": 100,
		})
	})

	charge, err := c.CaptureCharge(context.Background(), "chg-7", 100)
	require.NoError(t, err)
	assert.Equal(t, "CAPTURED", charge.Status)
	assert.Contains(t, string(charge.Raw), "capture_amount")
}

func TestCreateInvoice(t *testing.T) {
	c := newMockedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/invoices", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "inv-42", "status": "PENDING", "invoice_url": "https://pay.example.com/inv-42",
		})
	})

	invoice, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		ExternalID: "BOOK-1-abc", Amount: 250, PayerEmail: "guest@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "inv-42", invoice.ID)
	assert.Equal(t, "https://pay.example.com/inv-42", invoice.InvoiceURL)
}

func TestParseWebhookTokenCheck(t *testing.T) {
	c := NewXenditClient("xnd_test_key", "cb-token")

	_, err := c.ParseWebhook([]byte(`{}`), "wrong-token")
	assert.Error(t, err)

	event, err := c.ParseWebhook([]byte(`{"event":"invoice.paid","id":"inv-1"}`), "cb-token")
	require.NoError(t, err)
	assert.Equal(t, EventInvoicePaid, event.Type)
	assert.Equal(t, "inv-1", event.ObjectID)
}

func TestParseWebhookNestedObjectID(t *testing.T) {
	c := NewXenditClient("xnd_test_key", "")

	body := []byte(`{"event":"credit_card_charge.capture.succeeded","data":{"id":"chg-9"}}`)
	event, err := c.ParseWebhook(body, "anything accepted when no token configured")
	require.NoError(t, err)
	assert.Equal(t, EventChargeCaptured, event.Type)
	assert.Equal(t, "chg-9", event.ObjectID)
}
