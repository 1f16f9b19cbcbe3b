package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/payment"
	paymentmocks "wellnessapi/internal/payment/mocks"
	repomocks "wellnessapi/internal/repository/mocks"
)

type paymentFixture struct {
	orders  *repomocks.MockPaymentOrderRepository
	ebooks  *repomocks.MockContentRepository[model.Ebook]
	plans   *repomocks.MockContentRepository[model.NutritionPlan]
	gateway *paymentmocks.MockGateway
	svc     PaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		orders:  new(repomocks.MockPaymentOrderRepository),
		ebooks:  new(repomocks.MockContentRepository[model.Ebook]),
		plans:   new(repomocks.MockContentRepository[model.NutritionPlan]),
		gateway: new(paymentmocks.MockGateway),
	}
	f.svc = NewPaymentService(f.orders, f.ebooks, f.plans, f.gateway)
	return f
}

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		Amount:        299,
		ItemType:      model.ItemTypeEbook,
		ItemID:        "ebook-1",
		CustomerID:    "cust-1",
		CustomerEmail: "a@b.com",
		CustomerPhone: "9999999999",
	}
}

func TestPaymentService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newPaymentFixture()

		f.ebooks.On("FindByID", ctx, "ebook-1").Return(&model.Ebook{
			ID: "ebook-1", Title: "Back Pain Relief", Slug: "back-pain-relief", Price: 299,
		}, nil)
		f.orders.On("Create", ctx, mock.MatchedBy(func(o *model.PaymentOrder) bool {
			return o.Status == model.OrderStatusCreated &&
				o.Currency == "INR" &&
				strings.HasPrefix(o.OrderID, "CF_ORDER_backpainre_")
		})).Return(func(ctx context.Context, o *model.PaymentOrder) *model.PaymentOrder { return o }, nil)
		f.gateway.On("CreateOrder", ctx, mock.MatchedBy(func(req payment.CreateOrderRequest) bool {
			return req.Amount == 299 && req.Tags["itemType"] == model.ItemTypeEbook && req.Tags["itemId"] == "ebook-1"
		})).Return(&payment.CreateOrderResponse{GatewayOrderID: "cf-123", PaymentSessionID: "sess-1"}, nil)
		f.orders.On("SetGatewayOrderID", ctx, mock.Anything, "cf-123").Return(nil)

		res, err := f.svc.CreateOrder(ctx, validOrderInput())

		require.NoError(t, err)
		assert.Equal(t, "sess-1", res.PaymentSessionID)
		assert.Equal(t, "cf-123", res.GatewayOrderID)
	})

	t.Run("price mismatch", func(t *testing.T) {
		f := newPaymentFixture()

		f.ebooks.On("FindByID", ctx, "ebook-1").Return(&model.Ebook{
			ID: "ebook-1", Title: "Back Pain Relief", Slug: "back-pain-relief", Price: 499,
		}, nil)

		_, err := f.svc.CreateOrder(ctx, validOrderInput())

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("unknown item type", func(t *testing.T) {
		f := newPaymentFixture()

		in := validOrderInput()
		in.ItemType = "course"

		_, err := f.svc.CreateOrder(ctx, in)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("missing item", func(t *testing.T) {
		f := newPaymentFixture()

		f.ebooks.On("FindByID", ctx, "ebook-1").Return(nil, errs.NotFound("ebook not found"))

		_, err := f.svc.CreateOrder(ctx, validOrderInput())

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("gateway failure marks the order failed", func(t *testing.T) {
		f := newPaymentFixture()

		f.ebooks.On("FindByID", ctx, "ebook-1").Return(&model.Ebook{
			ID: "ebook-1", Title: "Back Pain Relief", Slug: "back-pain-relief", Price: 299,
		}, nil)
		f.orders.On("Create", ctx, mock.Anything).
			Return(func(ctx context.Context, o *model.PaymentOrder) *model.PaymentOrder { return o }, nil)
		f.gateway.On("CreateOrder", ctx, mock.Anything).
			Return(nil, errs.Upstream("payment gateway unreachable", nil))
		f.orders.On("UpdateStatus", ctx, mock.Anything, model.OrderStatusFailed).Return(nil)

		_, err := f.svc.CreateOrder(ctx, validOrderInput())

		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
		f.orders.AssertCalled(t, "UpdateStatus", ctx, mock.Anything, model.OrderStatusFailed)
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"CF_ORDER_x_1","order_status":"PAID","order_tags":{"itemType":"ebook","itemId":"ebook-1"}}}}`)

	t.Run("paid order is marked paid", func(t *testing.T) {
		f := newPaymentFixture()

		f.gateway.On("VerifySignature", "ts", body, "sig").Return(true)
		f.orders.On("UpdateStatus", ctx, "CF_ORDER_x_1", model.OrderStatusPaid).Return(nil)

		require.NoError(t, f.svc.HandleWebhook(ctx, "ts", "sig", body))
		f.orders.AssertExpectations(t)
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		f := newPaymentFixture()

		f.gateway.On("VerifySignature", "ts", body, "bad").Return(false)

		err := f.svc.HandleWebhook(ctx, "ts", "bad", body)

		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terminal failure statuses mark the order failed", func(t *testing.T) {
		f := newPaymentFixture()

		failed := []byte(`{"data":{"order":{"order_id":"CF_ORDER_x_1","order_status":"USER_DROPPED"}}}`)
		f.gateway.On("VerifySignature", "ts", failed, "sig").Return(true)
		f.orders.On("UpdateStatus", ctx, "CF_ORDER_x_1", model.OrderStatusFailed).Return(nil)

		require.NoError(t, f.svc.HandleWebhook(ctx, "ts", "sig", failed))
	})

	t.Run("unknown order is acknowledged", func(t *testing.T) {
		f := newPaymentFixture()

		f.gateway.On("VerifySignature", "ts", body, "sig").Return(true)
		f.orders.On("UpdateStatus", ctx, "CF_ORDER_x_1", model.OrderStatusPaid).
			Return(errs.NotFound("order not found"))

		assert.NoError(t, f.svc.HandleWebhook(ctx, "ts", "sig", body))
	})

	t.Run("intermediate status is a no-op", func(t *testing.T) {
		f := newPaymentFixture()

		active := []byte(`{"data":{"order":{"order_id":"CF_ORDER_x_1","order_status":"ACTIVE"}}}`)
		f.gateway.On("VerifySignature", "ts", active, "sig").Return(true)

		require.NoError(t, f.svc.HandleWebhook(ctx, "ts", "sig", active))
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Status(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	f.orders.On("FindByOrderID", ctx, "CF_ORDER_x_1").
		Return(&model.PaymentOrder{OrderID: "CF_ORDER_x_1", Status: model.OrderStatusPaid}, nil)

	o, err := f.svc.Status(ctx, "CF_ORDER_x_1")

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, o.Status)

	_, err = f.svc.Status(ctx, "")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
