package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

var podcastSeriesCoverSlot = asset.Slot{Name: "coverImage", Folder: "podcast-series-covers", Kind: asset.KindImage, Required: true}

// CreatePodcastSeriesInput carries the parsed multipart fields for a new show.
type CreatePodcastSeriesInput struct {
	Title       string
	Description string
	Category    string
	PublishDate time.Time
	CoverImage  *asset.Upload
}

// UpdatePodcastSeriesInput carries a partial update.
type UpdatePodcastSeriesInput struct {
	Title       *string
	Description *string
	Category    *string
	PublishDate *time.Time
	CoverImage  *asset.Upload
}

// PodcastSeriesService defines the podcast show use cases. Deleting a show
// cascades to its episodes, so the episode thumbnails come down with it.
type PodcastSeriesService interface {
	Create(ctx context.Context, in CreatePodcastSeriesInput) (*model.PodcastSeries, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.PodcastSeries], error)
	Get(ctx context.Context, id string) (*model.PodcastSeries, error)
	GetBySlug(ctx context.Context, slug string) (*model.PodcastSeries, error)
	Update(ctx context.Context, id string, in UpdatePodcastSeriesInput) (*model.PodcastSeries, error)
	Delete(ctx context.Context, id string) error
}

type podcastSeriesService struct {
	repo     repository.ContentRepository[model.PodcastSeries]
	episodes repository.PodcastEpisodeRepository
	assets   *asset.Manager
}

// NewPodcastSeriesService constructs a new PodcastSeriesService.
func NewPodcastSeriesService(repo repository.ContentRepository[model.PodcastSeries], episodes repository.PodcastEpisodeRepository, assets *asset.Manager) PodcastSeriesService {
	return &podcastSeriesService{repo: repo, episodes: episodes, assets: assets}
}

func (s *podcastSeriesService) Create(ctx context.Context, in CreatePodcastSeriesInput) (*model.PodcastSeries, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if err := asset.RequireOnCreate(podcastSeriesCoverSlot, in.CoverImage); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	cover, err := tx.apply(ctx, nil, in.CoverImage, false, podcastSeriesCoverSlot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	publish := in.PublishDate
	if publish.IsZero() {
		publish = now
	}
	ps := &model.PodcastSeries{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slugVal,
		Description: in.Description,
		CoverImage:  cover,
		Category:    in.Category,
		PublishDate: publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, ps)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	tx.commit(ctx)
	return created, nil
}

func (s *podcastSeriesService) List(ctx context.Context, limit, offset int) (*ListResult[model.PodcastSeries], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *podcastSeriesService) Get(ctx context.Context, id string) (*model.PodcastSeries, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *podcastSeriesService) GetBySlug(ctx context.Context, slugVal string) (*model.PodcastSeries, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *podcastSeriesService) Update(ctx context.Context, id string, in UpdatePodcastSeriesInput) (*model.PodcastSeries, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if in.Title != nil {
		title = *in.Title
	}
	slugVal, err := resolveSlug(ctx, s.repo, title, current.Title, current.Slug, current.ID, false)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	cover, err := tx.apply(ctx, current.CoverImage, in.CoverImage, false, podcastSeriesCoverSlot)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Title = title
	next.Slug = slugVal
	next.CoverImage = cover
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Category != nil {
		next.Category = *in.Category
	}
	if in.PublishDate != nil {
		next.PublishDate = *in.PublishDate
	}
	next.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	tx.commit(ctx)
	return updated, nil
}

func (s *podcastSeriesService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Collect episode thumbnails before the cascade removes the rows.
	var orphaned []asset.SlotRef
	page := pageQuery(100, 0)
	for {
		eps, err := s.episodes.ListBySeries(ctx, id, page)
		if err != nil {
			return err
		}
		for _, ep := range eps.Items {
			orphaned = append(orphaned, asset.SlotRef{Slot: episodeThumbnailSlot, Ref: ep.Thumbnail})
		}
		page.Offset += page.Limit
		if page.Offset >= eps.Total {
			break
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	orphaned = append(orphaned, asset.SlotRef{Slot: podcastSeriesCoverSlot, Ref: current.CoverImage})
	s.assets.RemoveAll(ctx, orphaned...)
	return nil
}
