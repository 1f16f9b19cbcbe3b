package model

import "time"

// Ebook is a purchasable PDF product with a thumbnail image. Both asset slots
// are mandatory at creation time.
type Ebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Pages       int       `json:"pages"`
	Category    string    `json:"category"`
	Thumbnail   *AssetRef `json:"thumbnail"`
	PDF         *AssetRef `json:"pdfDocument"`
	PaymentLink string    `json:"paymentLink,omitempty"`
	PublishDate time.Time `json:"publishDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
