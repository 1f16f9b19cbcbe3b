package model

import "time"

// Setting is a keyed site configuration value (contact details, banner text
// and similar). Keys are unique.
type Setting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
