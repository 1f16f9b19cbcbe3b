package postgres

import (
	"context"
	"database/sql"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// PodcastSeriesPostgres is the PostgreSQL implementation of the podcast
// series collection.
type PodcastSeriesPostgres struct {
	table[model.PodcastSeries]
}

var _ repository.ContentRepository[model.PodcastSeries] = (*PodcastSeriesPostgres)(nil)

// NewPodcastSeriesPostgres creates a new podcast series repository.
func NewPodcastSeriesPostgres(db *sql.DB) *PodcastSeriesPostgres {
	return &PodcastSeriesPostgres{table[model.PodcastSeries]{
		db:    db,
		name:  "podcast_series",
		label: "podcast series",
		cols: []string{
			"id", "title", "slug", "description",
			"cover_image_key", "cover_image_url", "category",
			"publish_date", "created_at", "updated_at",
		},
		scan: scanPodcastSeries,
		args: podcastSeriesArgs,
	}}
}

func scanPodcastSeries(row rowScanner) (*model.PodcastSeries, error) {
	var (
		s                  model.PodcastSeries
		coverKey, coverURL sql.NullString
	)
	if err := row.Scan(
		&s.ID, &s.Title, &s.Slug, &s.Description,
		&coverKey, &coverURL, &s.Category,
		&s.PublishDate, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.CoverImage = assetRef(coverKey, coverURL)
	return &s, nil
}

func podcastSeriesArgs(s *model.PodcastSeries) []any {
	coverKey, coverURL := assetCols(s.CoverImage)
	return []any{
		s.ID, s.Title, s.Slug, s.Description,
		coverKey, coverURL, s.Category,
		s.PublishDate, s.CreatedAt, s.UpdatedAt,
	}
}

// PodcastEpisodePostgres is the PostgreSQL implementation of the podcast
// episode collection.
type PodcastEpisodePostgres struct {
	table[model.PodcastEpisode]
}

var _ repository.PodcastEpisodeRepository = (*PodcastEpisodePostgres)(nil)

// NewPodcastEpisodePostgres creates a new podcast episode repository.
func NewPodcastEpisodePostgres(db *sql.DB) *PodcastEpisodePostgres {
	return &PodcastEpisodePostgres{table[model.PodcastEpisode]{
		db:    db,
		name:  "podcast_episodes",
		label: "podcast episode",
		cols: []string{
			"id", "series_id", "title", "slug", "description",
			"thumbnail_key", "thumbnail_url", "youtube_link",
			"duration", "episode_number",
			"publish_date", "created_at", "updated_at",
		},
		scan:  scanPodcastEpisode,
		args:  podcastEpisodeArgs,
		order: "episode_number ASC, id ASC",
	}}
}

// ListBySeries pages episodes of one series ordered by episode number.
func (r *PodcastEpisodePostgres) ListBySeries(ctx context.Context, seriesID string, pq repository.PageQuery) (*repository.PageResult[model.PodcastEpisode], error) {
	return r.listWhere(ctx, "series_id = $1", []any{seriesID}, pq)
}

func scanPodcastEpisode(row rowScanner) (*model.PodcastEpisode, error) {
	var (
		e                  model.PodcastEpisode
		thumbKey, thumbURL sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.SeriesID, &e.Title, &e.Slug, &e.Description,
		&thumbKey, &thumbURL, &e.YouTubeLink,
		&e.Duration, &e.EpisodeNumber,
		&e.PublishDate, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Thumbnail = assetRef(thumbKey, thumbURL)
	return &e, nil
}

func podcastEpisodeArgs(e *model.PodcastEpisode) []any {
	thumbKey, thumbURL := assetCols(e.Thumbnail)
	return []any{
		e.ID, e.SeriesID, e.Title, e.Slug, e.Description,
		thumbKey, thumbURL, e.YouTubeLink,
		e.Duration, e.EpisodeNumber,
		e.PublishDate, e.CreatedAt, e.UpdatedAt,
	}
}
