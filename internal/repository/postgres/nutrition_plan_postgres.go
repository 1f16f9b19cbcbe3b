package postgres

import (
	"database/sql"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// NutritionPlanPostgres is the PostgreSQL implementation of the nutrition
// plan collection.
type NutritionPlanPostgres struct {
	table[model.NutritionPlan]
}

var _ repository.ContentRepository[model.NutritionPlan] = (*NutritionPlanPostgres)(nil)

// NewNutritionPlanPostgres creates a new nutrition plan repository.
func NewNutritionPlanPostgres(db *sql.DB) *NutritionPlanPostgres {
	return &NutritionPlanPostgres{table[model.NutritionPlan]{
		db:    db,
		name:  "nutrition_plans",
		label: "nutrition plan",
		cols: []string{
			"id", "title", "slug", "description", "price", "pages", "category",
			"thumbnail_key", "thumbnail_url", "pdf_key", "pdf_url",
			"payment_link", "created_at", "updated_at",
		},
		scan: scanNutritionPlan,
		args: nutritionPlanArgs,
	}}
}

func scanNutritionPlan(row rowScanner) (*model.NutritionPlan, error) {
	var (
		p                  model.NutritionPlan
		thumbKey, thumbURL sql.NullString
		pdfKey, pdfURL     sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Pages, &p.Category,
		&thumbKey, &thumbURL, &pdfKey, &pdfURL,
		&p.PaymentLink, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Thumbnail = assetRef(thumbKey, thumbURL)
	p.PDF = assetRef(pdfKey, pdfURL)
	return &p, nil
}

func nutritionPlanArgs(p *model.NutritionPlan) []any {
	thumbKey, thumbURL := assetCols(p.Thumbnail)
	pdfKey, pdfURL := assetCols(p.PDF)
	return []any{
		p.ID, p.Title, p.Slug, p.Description, p.Price, p.Pages, p.Category,
		thumbKey, thumbURL, pdfKey, pdfURL,
		p.PaymentLink, p.CreatedAt, p.UpdatedAt,
	}
}
