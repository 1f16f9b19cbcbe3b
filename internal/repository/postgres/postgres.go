package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

// Package postgres implements the repository interfaces over database/sql
// with parameterized queries. The seven content collections share one generic
// table mapping; each entity file supplies only its column list and scan/args
// functions.

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

// table is the generic persistence mapping for one content collection.
// cols lists every column with id first; args must produce values in the
// same order; scan must read them back in the same order.
type table[T any] struct {
	db    *sql.DB
	name  string
	label string
	cols  []string
	scan  func(rowScanner) (*T, error)
	args  func(*T) []any
	// order overrides the default newest-first listing order.
	order string
}

func (t *table[T]) columnList() string {
	return strings.Join(t.cols, ", ")
}

func (t *table[T]) placeholders() string {
	ph := make([]string, len(t.cols))
	for i := range t.cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}

// translate maps driver errors onto the application taxonomy.
func (t *table[T]) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound("%s not found", t.label)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.Duplicate("a %s with this title (or resulting slug) already exists", t.label)
	}
	return err
}

func (t *table[T]) Create(ctx context.Context, doc *T) (*T, error) {
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.name, t.columnList(), t.placeholders(), t.columnList(),
	)
	out, err := t.scan(t.db.QueryRowContext(ctx, q, t.args(doc)...))
	if err != nil {
		return nil, t.translate(err)
	}
	return out, nil
}

func (t *table[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return t.findBy(ctx, "id", id)
}

func (t *table[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	return t.findBy(ctx, "slug", slug)
}

func (t *table[T]) findBy(ctx context.Context, col, val string) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.columnList(), t.name, col)
	out, err := t.scan(t.db.QueryRowContext(ctx, q, val))
	if err != nil {
		return nil, t.translate(err)
	}
	return out, nil
}

func (t *table[T]) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var (
		q    string
		args []any
	)
	if excludeID == "" {
		q = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1)", t.name)
		args = []any{slug}
	} else {
		q = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND id <> $2)", t.name)
		args = []any{slug, excludeID}
	}
	var exists bool
	if err := t.db.QueryRowContext(ctx, q, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *table[T]) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[T], error) {
	return t.listWhere(ctx, "", nil, pq)
}

// listWhere runs a filtered page query. where is a SQL fragment whose
// placeholders start at $1; limit/offset are appended after the given args.
func (t *table[T]) listWhere(ctx context.Context, where string, args []any, pq repository.PageQuery) (*repository.PageResult[T], error) {
	cond := ""
	if where != "" {
		cond = " WHERE " + where
	}

	var total int
	qCount := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", t.name, cond)
	if err := t.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	order := t.order
	if order == "" {
		order = "created_at DESC, id DESC"
	}
	qList := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		t.columnList(), t.name, cond, order, len(args)+1, len(args)+2,
	)
	rows, err := t.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		doc, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

func (t *table[T]) Update(ctx context.Context, doc *T) (*T, error) {
	// cols[0] is id; the remaining columns are rewritten in place.
	sets := make([]string, 0, len(t.cols)-1)
	for i, col := range t.cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	q := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		t.name, strings.Join(sets, ", "), t.columnList(),
	)
	out, err := t.scan(t.db.QueryRowContext(ctx, q, t.args(doc)...))
	if err != nil {
		return nil, t.translate(err)
	}
	return out, nil
}

func (t *table[T]) Delete(ctx context.Context, id string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name)
	res, err := t.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Deleting an already-gone row stays a no-op.
	_, _ = res.RowsAffected()
	return nil
}

// assetRef converts a nullable column pair into a reference. An empty key
// means the slot is unpopulated.
func assetRef(key, url sql.NullString) *model.AssetRef {
	if !key.Valid || key.String == "" {
		return nil
	}
	return &model.AssetRef{Key: key.String, URL: url.String}
}

// assetCols flattens a reference back into its column pair for writes.
func assetCols(ref *model.AssetRef) (any, any) {
	if ref == nil {
		return nil, nil
	}
	return ref.Key, ref.URL
}
