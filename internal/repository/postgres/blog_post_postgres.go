package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// BlogPostPostgres is the PostgreSQL implementation of the blog post
// collection. Categories are stored as a JSONB array.
type BlogPostPostgres struct {
	table[model.BlogPost]
}

var _ repository.BlogPostRepository = (*BlogPostPostgres)(nil)

// NewBlogPostPostgres creates a new blog post repository.
func NewBlogPostPostgres(db *sql.DB) *BlogPostPostgres {
	return &BlogPostPostgres{table[model.BlogPost]{
		db:    db,
		name:  "blog_posts",
		label: "blog post",
		cols: []string{
			"id", "title", "slug", "content", "excerpt",
			"cover_image_key", "cover_image_url", "categories",
			"author_name", "author_bio", "is_featured", "status",
			"meta_title", "meta_description", "reading_time",
			"created_at", "updated_at",
		},
		scan: scanBlogPost,
		args: blogPostArgs,
	}}
}

// ListFiltered pages posts narrowed by status and/or featured flag.
func (r *BlogPostPostgres) ListFiltered(ctx context.Context, f repository.BlogFilter, pq repository.PageQuery) (*repository.PageResult[model.BlogPost], error) {
	where := ""
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where = fmt.Sprintf("status = $%d", len(args))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		cond := fmt.Sprintf("is_featured = $%d", len(args))
		if where != "" {
			where += " AND " + cond
		} else {
			where = cond
		}
	}
	return r.listWhere(ctx, where, args, pq)
}

func scanBlogPost(row rowScanner) (*model.BlogPost, error) {
	var (
		p                  model.BlogPost
		coverKey, coverURL sql.NullString
		categories         []byte
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt,
		&coverKey, &coverURL, &categories,
		&p.AuthorName, &p.AuthorBio, &p.IsFeatured, &p.Status,
		&p.MetaTitle, &p.MetaDescription, &p.ReadingTime,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.CoverImage = assetRef(coverKey, coverURL)
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &p.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return &p, nil
}

func blogPostArgs(p *model.BlogPost) []any {
	coverKey, coverURL := assetCols(p.CoverImage)
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	encoded, _ := json.Marshal(categories)
	return []any{
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt,
		coverKey, coverURL, encoded,
		p.AuthorName, p.AuthorBio, p.IsFeatured, p.Status,
		p.MetaTitle, p.MetaDescription, p.ReadingTime,
		p.CreatedAt, p.UpdatedAt,
	}
}
