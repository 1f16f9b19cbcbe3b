package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"wellnessapi/internal/config"
	"wellnessapi/internal/errs"
)

// Gateway is the payment provider contract the service layer depends on.
type Gateway interface {
	// CreateOrder registers an order with the provider and returns its
	// session handle for the client-side checkout.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// VerifySignature checks an incoming webhook against the provider
	// secret. timestamp and signature come from the webhook headers; body is
	// the raw request payload.
	VerifySignature(timestamp string, body []byte, signature string) bool
}

// CreateOrderRequest carries everything the provider needs to open an order.
type CreateOrderRequest struct {
	OrderID       string
	Amount        float64
	Currency      string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderNote     string
	// Tags travel with the order and come back on webhooks; they carry the
	// purchased item's identity for fulfilment.
	Tags map[string]string
}

// CreateOrderResponse is the provider's answer to an order creation.
type CreateOrderResponse struct {
	GatewayOrderID   string
	PaymentSessionID string
}

// Cashfree talks to the Cashfree PG REST API (orders endpoint, webhook
// signatures). Requests authenticate with app id / secret key headers.
type Cashfree struct {
	cfg    config.CashfreeConfig
	client *http.Client
}

var _ Gateway = (*Cashfree)(nil)

// NewCashfree creates a gateway client from configuration.
func NewCashfree(cfg config.CashfreeConfig) *Cashfree {
	return &Cashfree{
		cfg: cfg,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name,omitempty"`
}

type cashfreeOrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type cashfreeOrderPayload struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     float64           `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails cashfreeCustomer  `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta `json:"order_meta"`
	OrderNote       string            `json:"order_note,omitempty"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type cashfreeOrderResponse struct {
	CfOrderID        json.Number `json:"cf_order_id"`
	OrderID          string      `json:"order_id"`
	PaymentSessionID string      `json:"payment_session_id"`
	OrderStatus      string      `json:"order_status"`
	Message          string      `json:"message"`
}

func (c *Cashfree) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	payload := cashfreeOrderPayload{
		OrderID:       req.OrderID,
		OrderAmount:   req.Amount,
		OrderCurrency: req.Currency,
		CustomerDetails: cashfreeCustomer{
			CustomerID:    req.CustomerID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			CustomerName:  req.CustomerName,
		},
		OrderMeta: cashfreeOrderMeta{
			// {order_id} is the provider's own placeholder, filled in on
			// redirect.
			ReturnURL: c.cfg.FrontendURL + "/payment-status?order_id={order_id}",
			NotifyURL: c.cfg.WebhookBaseURL + "/api/payment/webhook",
		},
		OrderNote: req.OrderNote,
		OrderTags: req.Tags,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.cfg.AppID)
	httpReq.Header.Set("x-client-secret", c.cfg.SecretKey)
	httpReq.Header.Set("x-api-version", c.cfg.APIVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errs.Upstream("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Upstream("read payment gateway response", err)
	}

	var decoded cashfreeOrderResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, errs.Upstream("decode payment gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("payment gateway returned status %d", resp.StatusCode)
		}
		return nil, errs.Upstream(msg, fmt.Errorf("gateway status %d", resp.StatusCode))
	}

	return &CreateOrderResponse{
		GatewayOrderID:   decoded.CfOrderID.String(),
		PaymentSessionID: decoded.PaymentSessionID,
	}, nil
}

// VerifySignature implements the provider's webhook scheme:
// base64(HMAC-SHA256(secret, timestamp + rawBody)).
func (c *Cashfree) VerifySignature(timestamp string, body []byte, signature string) bool {
	if timestamp == "" || signature == "" || c.cfg.SecretKey == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Webhook payload shapes, decoded from the raw body after signature
// verification.

type WebhookOrder struct {
	OrderID     string            `json:"order_id"`
	CfOrderID   json.Number       `json:"cf_order_id"`
	OrderAmount float64           `json:"order_amount"`
	OrderStatus string            `json:"order_status"`
	OrderTags   map[string]string `json:"order_tags"`
}

type WebhookData struct {
	Order           WebhookOrder     `json:"order"`
	CustomerDetails cashfreeCustomer `json:"customer_details"`
}

// WebhookEvent is the envelope the provider posts on order state changes.
type WebhookEvent struct {
	Type      string      `json:"type"`
	EventTime string      `json:"event_time"`
	Data      WebhookData `json:"data"`
}

// ParseWebhook decodes a verified webhook body.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, errs.Validation("malformed webhook payload")
	}
	return &ev, nil
}

// Terminal failure statuses reported by the provider.
var failureStatuses = map[string]bool{
	"FAILED":       true,
	"USER_DROPPED": true,
	"VOID":         true,
	"CANCELLED":    true,
	"EXPIRED":      true,
	"ERROR":        true,
}

// IsFailureStatus reports whether a provider order status is a terminal
// failure.
func IsFailureStatus(status string) bool {
	return failureStatuses[status]
}
