package service

import (
	"context"
	"errors"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
	"wellnessapi/internal/slug"
)

// Package service implements the use cases behind the HTTP layer. Content
// services share two pieces of machinery: slug resolution against the owning
// collection, and a slot transaction that keeps remote asset writes ordered
// around the document write (new objects stored before old ones go, and
// superseded objects removed only after the row is committed).

// resolveSlug derives the slug a document should be stored under, checking
// candidates against the collection while excluding the document itself.
func resolveSlug[T any](ctx context.Context, repo repository.ContentRepository[T], title, prevTitle, currentSlug, excludeID string, isNew bool) (string, error) {
	s, err := slug.Resolve(ctx, title, prevTitle, currentSlug, isNew, func(ctx context.Context, candidate string) (bool, error) {
		return repo.SlugExists(ctx, candidate, excludeID)
	})
	if err != nil {
		if errors.Is(err, slug.ErrEmpty) {
			return "", errs.Validation("title must contain at least one letter or digit")
		}
		if errors.Is(err, slug.ErrResolutionFailed) {
			return "", errs.Internal("slug resolution exhausted", err)
		}
		return "", err
	}
	return s, nil
}

// slotTxn stages the asset side of one document write. apply records each
// slot transition; commit releases superseded objects after the row is saved;
// rollback discards objects uploaded for a write that never happened.
type slotTxn struct {
	assets   *asset.Manager
	cleanups []asset.Cleanup
	uploaded []asset.SlotRef
}

func newSlotTxn(assets *asset.Manager) *slotTxn {
	return &slotTxn{assets: assets}
}

func (tx *slotTxn) apply(ctx context.Context, existing *model.AssetRef, incoming *asset.Upload, clear bool, slot asset.Slot) (*model.AssetRef, error) {
	ref, cleanup, err := tx.assets.Upsert(ctx, existing, incoming, clear, slot)
	if err != nil {
		return nil, err
	}
	tx.cleanups = append(tx.cleanups, cleanup)
	if incoming != nil {
		tx.uploaded = append(tx.uploaded, asset.SlotRef{Slot: slot, Ref: ref})
	}
	return ref, nil
}

func (tx *slotTxn) commit(ctx context.Context) {
	for _, c := range tx.cleanups {
		c(ctx)
	}
}

func (tx *slotTxn) rollback(ctx context.Context) {
	for _, sr := range tx.uploaded {
		tx.assets.Discard(ctx, sr.Ref, sr.Slot)
	}
}

// pageQuery clamps raw pagination input onto repository bounds.
func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

// ListResult is the service-level DTO for paginated collections.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

func toListResult[T any](res *repository.PageResult[T]) *ListResult[T] {
	return &ListResult[T]{Items: res.Items, Total: res.Total}
}
