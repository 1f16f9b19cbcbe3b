package model

import "time"

// NutritionPlan is a purchasable diet plan document. Thumbnail and PDF are
// required when the plan is created but can be cleared later.
type NutritionPlan struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Pages       int       `json:"pages,omitempty"`
	Category    string    `json:"category"`
	Thumbnail   *AssetRef `json:"thumbnail"`
	PDF         *AssetRef `json:"pdfDocument"`
	PaymentLink string    `json:"paymentLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
