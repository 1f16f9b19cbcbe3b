package model

import "time"

// Payment order statuses.
const (
	OrderStatusCreated   = "created"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

// Purchasable item types accepted by the payment flow.
const (
	ItemTypeEbook         = "ebook"
	ItemTypeNutritionPlan = "nutritionPlan"
)

// PaymentOrder records a one-time purchase delegated to the payment gateway.
// OrderID is our identifier sent to the gateway; GatewayOrderID is the
// gateway's own identifier returned on order creation.
type PaymentOrder struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	GatewayOrderID string    `json:"gatewayOrderId,omitempty"`
	ItemType       string    `json:"itemType"`
	ItemID         string    `json:"itemId"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	CustomerID     string    `json:"customerId"`
	CustomerName   string    `json:"customerName,omitempty"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerPhone  string    `json:"customerPhone"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
