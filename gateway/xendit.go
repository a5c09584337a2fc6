package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hotelx-backend/logger"
)

// XenditClient talks to the Xendit payments API. Requests authenticate with
// basic auth (secret key as username) and carry a bounded timeout so a stuck
// gateway call surfaces as a failed attempt instead of hanging a request
// handler.
type XenditClient struct {
	apiKey        string
	callbackToken string
	baseURL       string
	httpClient    *http.Client
}

// NewXenditClient builds a client against the live Xendit host. Sandbox and
// production are distinguished by the key itself; SetBaseURL points the
// client at a local mock.
func NewXenditClient(apiKey, callbackToken string) *XenditClient {
	c := &XenditClient{
		apiKey:        apiKey,
		callbackToken: callbackToken,
		baseURL:       "https://api.xendit.co",
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
	logger.InfoLogger.Infof("Xendit client initialized with key %s", maskKey(apiKey))
	return c
}

// SetBaseURL overrides the API host, used for local gateway mocks.
func (c *XenditClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func (c *XenditClient) post(ctx context.Context, path string, payload interface{}, out interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode >= 400 {
		logger.ErrorLogger.Errorf("Xendit %s returned %d: %s", path, resp.StatusCode, string(raw))
		return raw, fmt.Errorf("%w: %s (%d)", ErrGatewayDeclined, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return raw, nil
}

func (c *XenditClient) TokenizeCard(ctx context.Context, card CardDetails) (*Token, error) {
	var token Token
	_, err := c.post(ctx, "/credit_card_tokens", map[string]interface{}{
		"card_number":     card.Number,
		"card_exp_month":  card.ExpMonth,
		"card_exp_year":   card.ExpYear,
		"card_cvn":        card.CVN,
		"is_multiple_use": false,
	}, &token)
	if err != nil {
		return nil, err
	}
	if token.Status != "VERIFIED" {
		return nil, fmt.Errorf("%w: token status %s", ErrGatewayDeclined, token.Status)
	}
	return &token, nil
}

func (c *XenditClient) Create3DSAuthentication(ctx context.Context, tokenID string, amount float64) (*Authentication, error) {
	var auth Authentication
	path := fmt.Sprintf("/credit_card_tokens/%s/authentications", tokenID)
	_, err := c.post(ctx, path, map[string]interface{}{
		"amount": amount,
	}, &auth)
	if err != nil {
		return nil, err
	}
	if auth.Status == "FAILED" {
		return nil, fmt.Errorf("%w: 3DS authentication failed", ErrGatewayDeclined)
	}
	return &auth, nil
}

func (c *XenditClient) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	var charge Charge
	raw, err := c.post(ctx, "/credit_card_charges", map[string]interface{}{
		"token_id":          req.TokenID,
		"authentication_id": req.AuthenticationID,
		"external_id":       req.ExternalID,
		"amount":            req.Amount,
		"capture":           false,
	}, &charge)
	if err != nil {
		return nil, err
	}
	charge.Raw = raw
	if charge.Status != "AUTHORIZED" && charge.Status != "CAPTURED" {
		return nil, fmt.Errorf("%w: charge status %s", ErrGatewayDeclined, charge.Status)
	}
	return &charge, nil
}

func (c *XenditClient) CaptureCharge(ctx context.Context, chargeID string, amount float64) (*Charge, error) {
	var charge Charge
	path := fmt.Sprintf("/credit_card_charges/%s/capture", chargeID)
	raw, err := c.post(ctx, path, map[string]interface{}{
		"capture_amount": amount,
	}, &charge)
	if err != nil {
		return nil, err
	}
	charge.Raw = raw
	if charge.Status != "CAPTURED" {
		return nil, fmt.Errorf("%w: capture status %s", ErrGatewayDeclined, charge.Status)
	}
	return &charge, nil
}

func (c *XenditClient) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	var invoice Invoice
	raw, err := c.post(ctx, "/v2/invoices", map[string]interface{}{
		"external_id": req.ExternalID,
		"amount":      req.Amount,
		"payer_email": req.PayerEmail,
		"description": req.Description,
	}, &invoice)
	if err != nil {
		return nil, err
	}
	invoice.Raw = raw
	return &invoice, nil
}

func (c *XenditClient) ParseWebhook(body []byte, callbackToken string) (*WebhookEvent, error) {
	if c.callbackToken != "" && callbackToken != c.callbackToken {
		return nil, fmt.Errorf("invalid callback token")
	}

	var payload struct {
		Event string `json:"event"`
		Data  struct {
			ID string `json:"id"`
		} `json:"data"`
		// Invoice callbacks put the id at the top level.
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	event := &WebhookEvent{Type: payload.Event, Raw: body}
	if payload.Data.ID != "" {
		event.ObjectID = payload.Data.ID
	} else {
		event.ObjectID = payload.ID
	}
	return event, nil
}
