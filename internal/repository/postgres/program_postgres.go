package postgres

import (
	"database/sql"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// ProgramPostgres is the PostgreSQL implementation of the program collection.
type ProgramPostgres struct {
	table[model.Program]
}

var _ repository.ContentRepository[model.Program] = (*ProgramPostgres)(nil)

// NewProgramPostgres creates a new program repository.
func NewProgramPostgres(db *sql.DB) *ProgramPostgres {
	return &ProgramPostgres{table[model.Program]{
		db:    db,
		name:  "programs",
		label: "program",
		cols: []string{
			"id", "title", "slug", "description", "price", "duration",
			"thumbnail_key", "thumbnail_url", "youtube_link",
			"publish_date", "created_at", "updated_at",
		},
		scan: scanProgram,
		args: programArgs,
	}}
}

func scanProgram(row rowScanner) (*model.Program, error) {
	var (
		p                  model.Program
		thumbKey, thumbURL sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Duration,
		&thumbKey, &thumbURL, &p.YouTubeLink,
		&p.PublishDate, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Thumbnail = assetRef(thumbKey, thumbURL)
	return &p, nil
}

func programArgs(p *model.Program) []any {
	thumbKey, thumbURL := assetCols(p.Thumbnail)
	return []any{
		p.ID, p.Title, p.Slug, p.Description, p.Price, p.Duration,
		thumbKey, thumbURL, p.YouTubeLink,
		p.PublishDate, p.CreatedAt, p.UpdatedAt,
	}
}

// ProgramSeriesPostgres is the PostgreSQL implementation of the program
// series collection.
type ProgramSeriesPostgres struct {
	table[model.ProgramSeries]
}

var _ repository.ContentRepository[model.ProgramSeries] = (*ProgramSeriesPostgres)(nil)

// NewProgramSeriesPostgres creates a new program series repository.
func NewProgramSeriesPostgres(db *sql.DB) *ProgramSeriesPostgres {
	return &ProgramSeriesPostgres{table[model.ProgramSeries]{
		db:    db,
		name:  "program_series",
		label: "program series",
		cols: []string{
			"id", "title", "slug", "description",
			"cover_image_key", "cover_image_url", "category", "author",
			"publish_date", "created_at", "updated_at",
		},
		scan: scanProgramSeries,
		args: programSeriesArgs,
	}}
}

func scanProgramSeries(row rowScanner) (*model.ProgramSeries, error) {
	var (
		s                  model.ProgramSeries
		coverKey, coverURL sql.NullString
	)
	if err := row.Scan(
		&s.ID, &s.Title, &s.Slug, &s.Description,
		&coverKey, &coverURL, &s.Category, &s.Author,
		&s.PublishDate, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.CoverImage = assetRef(coverKey, coverURL)
	return &s, nil
}

func programSeriesArgs(s *model.ProgramSeries) []any {
	coverKey, coverURL := assetCols(s.CoverImage)
	return []any{
		s.ID, s.Title, s.Slug, s.Description,
		coverKey, coverURL, s.Category, s.Author,
		s.PublishDate, s.CreatedAt, s.UpdatedAt,
	}
}
