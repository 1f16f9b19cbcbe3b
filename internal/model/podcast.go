package model

import "time"

// PodcastSeries is a show holding an ordered set of episodes.
type PodcastSeries struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CoverImage  *AssetRef `json:"coverImage"`
	Category    string    `json:"category,omitempty"`
	PublishDate time.Time `json:"publishDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PodcastEpisode belongs to a PodcastSeries. EpisodeNumber is unique within
// its series.
type PodcastEpisode struct {
	ID            string    `json:"id"`
	SeriesID      string    `json:"podcastSeriesId"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Thumbnail     *AssetRef `json:"thumbnail"`
	YouTubeLink   string    `json:"youtubeLink"`
	Duration      string    `json:"duration"`
	EpisodeNumber int       `json:"episodeNumber"`
	PublishDate   time.Time `json:"publishDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
