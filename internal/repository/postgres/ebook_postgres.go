package postgres

import (
	"database/sql"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// EbookPostgres is the PostgreSQL implementation of the ebook collection.
type EbookPostgres struct {
	table[model.Ebook]
}

var _ repository.ContentRepository[model.Ebook] = (*EbookPostgres)(nil)

// NewEbookPostgres creates a new ebook repository.
func NewEbookPostgres(db *sql.DB) *EbookPostgres {
	return &EbookPostgres{table[model.Ebook]{
		db:    db,
		name:  "ebooks",
		label: "ebook",
		cols: []string{
			"id", "title", "slug", "description", "price", "pages", "category",
			"thumbnail_key", "thumbnail_url", "pdf_key", "pdf_url",
			"payment_link", "publish_date", "created_at", "updated_at",
		},
		scan: scanEbook,
		args: ebookArgs,
	}}
}

func scanEbook(row rowScanner) (*model.Ebook, error) {
	var (
		e                    model.Ebook
		thumbKey, thumbURL   sql.NullString
		pdfKey, pdfURL       sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Price, &e.Pages, &e.Category,
		&thumbKey, &thumbURL, &pdfKey, &pdfURL,
		&e.PaymentLink, &e.PublishDate, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Thumbnail = assetRef(thumbKey, thumbURL)
	e.PDF = assetRef(pdfKey, pdfURL)
	return &e, nil
}

func ebookArgs(e *model.Ebook) []any {
	thumbKey, thumbURL := assetCols(e.Thumbnail)
	pdfKey, pdfURL := assetCols(e.PDF)
	return []any{
		e.ID, e.Title, e.Slug, e.Description, e.Price, e.Pages, e.Category,
		thumbKey, thumbURL, pdfKey, pdfURL,
		e.PaymentLink, e.PublishDate, e.CreatedAt, e.UpdatedAt,
	}
}
