package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/payment"
	"wellnessapi/internal/repository"
)

// CreateOrderInput is the checkout request for a purchasable item.
type CreateOrderInput struct {
	Amount        float64
	Currency      string
	ItemType      string
	ItemID        string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// CreateOrderResult is what the client needs to launch the hosted checkout.
type CreateOrderResult struct {
	OrderID          string `json:"your_order_id"`
	GatewayOrderID   string `json:"cf_order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

// PaymentService defines the purchase use cases.
type PaymentService interface {
	// CreateOrder price-checks the item against our own record, registers
	// the order with the gateway and persists a local ledger row.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)

	// HandleWebhook verifies and applies a gateway callback. Processed
	// payloads never error, even when they reference unknown orders; only a
	// bad signature or unreadable body is rejected.
	HandleWebhook(ctx context.Context, timestamp, signature string, body []byte) error

	// Status returns our ledger row for an order.
	Status(ctx context.Context, orderID string) (*model.PaymentOrder, error)
}

type paymentService struct {
	orders  repository.PaymentOrderRepository
	ebooks  repository.ContentRepository[model.Ebook]
	plans   repository.ContentRepository[model.NutritionPlan]
	gateway payment.Gateway
}

// NewPaymentService constructs a new PaymentService.
func NewPaymentService(orders repository.PaymentOrderRepository, ebooks repository.ContentRepository[model.Ebook], plans repository.ContentRepository[model.NutritionPlan], gateway payment.Gateway) PaymentService {
	return &paymentService{orders: orders, ebooks: ebooks, plans: plans, gateway: gateway}
}

// purchasable is the common view of an item the payment flow can sell.
type purchasable struct {
	ID    string
	Title string
	Slug  string
	Price float64
	Label string
}

func (s *paymentService) lookupItem(ctx context.Context, itemType, itemID string) (*purchasable, error) {
	switch itemType {
	case model.ItemTypeEbook:
		e, err := s.ebooks.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return &purchasable{ID: e.ID, Title: e.Title, Slug: e.Slug, Price: e.Price, Label: "E-book"}, nil
	case model.ItemTypeNutritionPlan:
		p, err := s.plans.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return &purchasable{ID: p.ID, Title: p.Title, Slug: p.Slug, Price: p.Price, Label: "Nutrition Plan"}, nil
	default:
		return nil, errs.Validation("invalid item type %q", itemType)
	}
}

// orderIDFor builds our gateway-facing order identifier from a compacted
// slug fragment and the current time.
func orderIDFor(slug string) string {
	compact := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, slug)
	if len(compact) > 10 {
		compact = compact[:10]
	}
	if compact == "" {
		compact = "item"
	}
	return fmt.Sprintf("CF_ORDER_%s_%d", compact, time.Now().UnixMilli())
}

func (s *paymentService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.Amount <= 0 {
		return nil, errs.Validation("a positive amount is required")
	}
	if in.ItemID == "" || in.ItemType == "" {
		return nil, errs.Validation("itemId and itemType are required")
	}
	if in.CustomerID == "" || in.CustomerEmail == "" || in.CustomerPhone == "" {
		return nil, errs.Validation("customer id, email and phone are required")
	}

	item, err := s.lookupItem(ctx, in.ItemType, in.ItemID)
	if err != nil {
		return nil, err
	}
	if in.Amount != item.Price {
		return nil, errs.Validation("price mismatch: expected %.2f for %s", item.Price, item.Title)
	}

	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "INR"
	}

	now := time.Now().UTC()
	order := &model.PaymentOrder{
		ID:            uuid.NewString(),
		OrderID:       orderIDFor(item.Slug),
		ItemType:      in.ItemType,
		ItemID:        in.ItemID,
		Amount:        in.Amount,
		Currency:      currency,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Status:        model.OrderStatusCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	resp, err := s.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		OrderNote:     fmt.Sprintf("%s Purchase: %s (ID: %s)", item.Label, item.Title, item.ID),
		Tags: map[string]string{
			"itemId":   item.ID,
			"itemType": in.ItemType,
			"itemSlug": item.Slug,
		},
	})
	if err != nil {
		if uerr := s.orders.UpdateStatus(ctx, order.OrderID, model.OrderStatusFailed); uerr != nil {
			slog.WarnContext(ctx, "failed to mark order failed", "order_id", order.OrderID, "error", uerr.Error())
		}
		return nil, err
	}

	if err := s.orders.SetGatewayOrderID(ctx, order.OrderID, resp.GatewayOrderID); err != nil {
		slog.WarnContext(ctx, "failed to record gateway order id", "order_id", order.OrderID, "error", err.Error())
	}

	return &CreateOrderResult{
		OrderID:          order.OrderID,
		GatewayOrderID:   resp.GatewayOrderID,
		PaymentSessionID: resp.PaymentSessionID,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, timestamp, signature string, body []byte) error {
	if !s.gateway.VerifySignature(timestamp, body, signature) {
		return errs.Unauthorized("invalid webhook signature")
	}

	ev, err := payment.ParseWebhook(body)
	if err != nil {
		return err
	}

	order := ev.Data.Order
	if order.OrderID == "" || order.OrderStatus == "" {
		slog.WarnContext(ctx, "webhook missing order fields", "type", ev.Type)
		return nil
	}

	var next string
	switch {
	case order.OrderStatus == "PAID":
		next = model.OrderStatusPaid
	case payment.IsFailureStatus(order.OrderStatus):
		next = model.OrderStatusFailed
	default:
		slog.InfoContext(ctx, "webhook status ignored",
			"order_id", order.OrderID, "status", order.OrderStatus)
		return nil
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, next); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			slog.WarnContext(ctx, "webhook for unknown order", "order_id", order.OrderID)
			return nil
		}
		return err
	}

	if next == model.OrderStatusPaid {
		slog.InfoContext(ctx, "order fulfilled",
			"order_id", order.OrderID,
			"item_type", order.OrderTags["itemType"],
			"item_id", order.OrderTags["itemId"],
			"customer", ev.Data.CustomerDetails.CustomerEmail)
	}
	return nil
}

func (s *paymentService) Status(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	if orderID == "" {
		return nil, errs.Validation("order id is required")
	}
	return s.orders.FindByOrderID(ctx, orderID)
}
