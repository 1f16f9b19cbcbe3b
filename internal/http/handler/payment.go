package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/service"
)

// PaymentHandler exposes checkout, the gateway webhook and order status.
type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createOrderRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	ItemType      string  `json:"itemType"`
	ItemID        string  `json:"itemId"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("malformed request body"))
	}

	res, err := h.svc.CreateOrder(c.UserContext(), service.CreateOrderInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		ItemType:      req.ItemType,
		ItemID:        req.ItemID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, res)
}

// Webhook verifies the gateway signature over the raw body. The gateway
// retries anything that is not a 200, so processed events always ack.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	timestamp := c.Get("x-webhook-timestamp")
	signature := c.Get("x-webhook-signature")

	if err := h.svc.HandleWebhook(c.UserContext(), timestamp, signature, c.Body()); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "webhook acknowledged"})
}

func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	order, err := h.svc.Status(c.UserContext(), c.Params("orderID"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}
