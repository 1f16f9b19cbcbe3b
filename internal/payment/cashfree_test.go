package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/config"
	"wellnessapi/internal/errs"
)

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestCashfree_VerifySignature(t *testing.T) {
	gw := NewCashfree(config.CashfreeConfig{SecretKey: "test-secret"})
	body := []byte(`{"data":{"order":{"order_id":"CF_ORDER_1"}}}`)

	t.Run("valid", func(t *testing.T) {
		assert.True(t, gw.VerifySignature("1700000000", body, sign("test-secret", "1700000000", body)))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, gw.VerifySignature("1700000000", body, sign("other-secret", "1700000000", body)))
	})

	t.Run("tampered body", func(t *testing.T) {
		sig := sign("test-secret", "1700000000", body)
		assert.False(t, gw.VerifySignature("1700000000", []byte(`{}`), sig))
	})

	t.Run("missing pieces", func(t *testing.T) {
		assert.False(t, gw.VerifySignature("", body, sign("test-secret", "", body)))
		assert.False(t, gw.VerifySignature("1700000000", body, ""))
	})
}

func TestCashfree_CreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			assert.Equal(t, "app-id", r.Header.Get("x-client-id"))
			assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
			assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))

			var payload cashfreeOrderPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "CF_ORDER_abc_1", payload.OrderID)
			assert.Equal(t, 299.0, payload.OrderAmount)
			assert.Equal(t, "ebook", payload.OrderTags["itemType"])
			assert.Contains(t, payload.OrderMeta.NotifyURL, "/api/payment/webhook")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"cf_order_id":12345,"order_id":"CF_ORDER_abc_1","payment_session_id":"session_xyz","order_status":"ACTIVE"}`))
		}))
		defer srv.Close()

		gw := NewCashfree(config.CashfreeConfig{
			AppID:          "app-id",
			SecretKey:      "secret",
			BaseURL:        srv.URL,
			APIVersion:     "2023-08-01",
			FrontendURL:    "http://frontend",
			WebhookBaseURL: "http://backend",
		})

		resp, err := gw.CreateOrder(context.Background(), CreateOrderRequest{
			OrderID:       "CF_ORDER_abc_1",
			Amount:        299,
			Currency:      "INR",
			CustomerID:    "cust-1",
			CustomerEmail: "a@b.com",
			CustomerPhone: "9999999999",
			Tags:          map[string]string{"itemType": "ebook", "itemId": "id-1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "12345", resp.GatewayOrderID)
		assert.Equal(t, "session_xyz", resp.PaymentSessionID)
	})

	t.Run("gateway rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"authentication failed"}`))
		}))
		defer srv.Close()

		gw := NewCashfree(config.CashfreeConfig{BaseURL: srv.URL})

		resp, err := gw.CreateOrder(context.Background(), CreateOrderRequest{OrderID: "x"})

		assert.Nil(t, resp)
		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
		assert.Equal(t, "authentication failed", errs.MessageOf(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		gw := NewCashfree(config.CashfreeConfig{BaseURL: "http://127.0.0.1:1"})

		_, err := gw.CreateOrder(context.Background(), CreateOrderRequest{OrderID: "x"})

		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
	})
}

func TestParseWebhook(t *testing.T) {
	body := []byte(`{
		"type": "PAYMENT_SUCCESS_WEBHOOK",
		"data": {
			"order": {
				"order_id": "CF_ORDER_abc_1",
				"cf_order_id": 12345,
				"order_amount": 299,
				"order_status": "PAID",
				"order_tags": {"itemType": "ebook", "itemId": "id-1"}
			},
			"customer_details": {"customer_id": "cust-1", "customer_email": "a@b.com", "customer_phone": "9999999999"}
		}
	}`)

	ev, err := ParseWebhook(body)

	require.NoError(t, err)
	assert.Equal(t, "CF_ORDER_abc_1", ev.Data.Order.OrderID)
	assert.Equal(t, "PAID", ev.Data.Order.OrderStatus)
	assert.Equal(t, "ebook", ev.Data.Order.OrderTags["itemType"])

	_, err = ParseWebhook([]byte("not-json"))
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestIsFailureStatus(t *testing.T) {
	for _, s := range []string{"FAILED", "USER_DROPPED", "VOID", "CANCELLED", "EXPIRED", "ERROR"} {
		assert.True(t, IsFailureStatus(s), s)
	}
	assert.False(t, IsFailureStatus("PAID"))
	assert.False(t, IsFailureStatus("ACTIVE"))
}
