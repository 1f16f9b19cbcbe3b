package repository

import (
	"context"

	"wellnessapi/internal/model"
)

// Package repository contains data access abstractions. Implementations live
// in subpackages (postgres) and contain no business logic. Errors come back
// tagged with errs kinds (not-found, duplicate) so callers never inspect
// driver errors.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ContentRepository is the per-collection persistence contract shared by
// every slugged content entity.
type ContentRepository[T any] interface {
	// Create inserts a new document. The caller provides ID, Slug and
	// timestamps; the unique slug index is the backstop for resolver races.
	Create(ctx context.Context, doc *T) (*T, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*T, error)

	// FindBySlug returns a document by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*T, error)

	// SlugExists reports whether another document (excluding excludeID, which
	// may be empty for new documents) already holds slug.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)

	// List returns a page of documents, newest first, with the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[T], error)

	// Update rewrites the full document row by ID and returns the stored row.
	Update(ctx context.Context, doc *T) (*T, error)

	// Delete removes a document by ID. Deleting a missing row is not an error.
	Delete(ctx context.Context, id string) error
}

// PodcastEpisodeRepository adds series-scoped listing on top of the shared
// content contract.
type PodcastEpisodeRepository interface {
	ContentRepository[model.PodcastEpisode]
	ListBySeries(ctx context.Context, seriesID string, pq PageQuery) (*PageResult[model.PodcastEpisode], error)
}

// BlogFilter narrows blog listings. Zero values mean "no filter".
type BlogFilter struct {
	Status   string
	Featured *bool
}

// BlogPostRepository adds filtered listing on top of the shared content
// contract.
type BlogPostRepository interface {
	ContentRepository[model.BlogPost]
	ListFiltered(ctx context.Context, f BlogFilter, pq PageQuery) (*PageResult[model.BlogPost], error)
}

// AppointmentRepository persists consultation requests.
type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Appointment], error)
	Update(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// SettingRepository persists keyed site settings.
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	// Upsert inserts or rewrites the value under key and returns the stored
	// row.
	Upsert(ctx context.Context, key, value string) (*model.Setting, error)
	DeleteByKey(ctx context.Context, key string) error
}

// PaymentOrderRepository persists purchase orders.
type PaymentOrderRepository interface {
	Create(ctx context.Context, o *model.PaymentOrder) (*model.PaymentOrder, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error)
	// SetGatewayOrderID records the gateway's identifier once the remote
	// order exists.
	SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error
	// UpdateStatus transitions an order, keyed by our order ID.
	UpdateStatus(ctx context.Context, orderID, status string) error
}
