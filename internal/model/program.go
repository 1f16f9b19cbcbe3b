package model

import "time"

// Program is a single exercise program with a thumbnail and an optional
// YouTube video link.
type Program struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	Thumbnail   *AssetRef `json:"thumbnail"`
	YouTubeLink string    `json:"youtubeLink,omitempty"`
	PublishDate time.Time `json:"publishDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProgramSeries groups programs under a cover image.
type ProgramSeries struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CoverImage  *AssetRef `json:"coverImage"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishDate time.Time `json:"publishDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
