package model

import "time"

// BlogPost statuses.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// BlogPost is an article with a mandatory cover image.
type BlogPost struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt"`
	CoverImage      *AssetRef `json:"coverImage"`
	Categories      []string  `json:"categories"`
	AuthorName      string    `json:"authorName,omitempty"`
	AuthorBio       string    `json:"authorBio,omitempty"`
	IsFeatured      bool      `json:"isFeatured"`
	Status          string    `json:"status"`
	MetaTitle       string    `json:"metaTitle,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	ReadingTime     string    `json:"readingTime,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
