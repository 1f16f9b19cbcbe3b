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

var episodeThumbnailSlot = asset.Slot{Name: "thumbnail", Folder: "podcast-episode-thumbnails", Kind: asset.KindImage, Required: true}

// CreatePodcastEpisodeInput carries the parsed multipart fields for a new
// episode.
type CreatePodcastEpisodeInput struct {
	SeriesID      string
	Title         string
	Description   string
	YouTubeLink   string
	Duration      string
	EpisodeNumber int
	PublishDate   time.Time
	Thumbnail     *asset.Upload
}

// UpdatePodcastEpisodeInput carries a partial update. Episodes cannot move
// between series.
type UpdatePodcastEpisodeInput struct {
	Title         *string
	Description   *string
	YouTubeLink   *string
	Duration      *string
	EpisodeNumber *int
	PublishDate   *time.Time
	Thumbnail     *asset.Upload
}

// PodcastEpisodeService defines episode use cases.
type PodcastEpisodeService interface {
	Create(ctx context.Context, in CreatePodcastEpisodeInput) (*model.PodcastEpisode, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.PodcastEpisode], error)
	ListBySeries(ctx context.Context, seriesID string, limit, offset int) (*ListResult[model.PodcastEpisode], error)
	Get(ctx context.Context, id string) (*model.PodcastEpisode, error)
	GetBySlug(ctx context.Context, slug string) (*model.PodcastEpisode, error)
	Update(ctx context.Context, id string, in UpdatePodcastEpisodeInput) (*model.PodcastEpisode, error)
	Delete(ctx context.Context, id string) error
}

type podcastEpisodeService struct {
	repo   repository.PodcastEpisodeRepository
	series repository.ContentRepository[model.PodcastSeries]
	assets *asset.Manager
}

// NewPodcastEpisodeService constructs a new PodcastEpisodeService.
func NewPodcastEpisodeService(repo repository.PodcastEpisodeRepository, series repository.ContentRepository[model.PodcastSeries], assets *asset.Manager) PodcastEpisodeService {
	return &podcastEpisodeService{repo: repo, series: series, assets: assets}
}

func (s *podcastEpisodeService) Create(ctx context.Context, in CreatePodcastEpisodeInput) (*model.PodcastEpisode, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if in.SeriesID == "" {
		return nil, errs.Validation("podcastSeriesId is required")
	}
	if in.YouTubeLink == "" {
		return nil, errs.Validation("youtubeLink is required")
	}
	if err := validateYouTubeLink(in.YouTubeLink); err != nil {
		return nil, err
	}
	if in.EpisodeNumber < 1 {
		return nil, errs.Validation("episodeNumber must be at least 1")
	}
	if err := asset.RequireOnCreate(episodeThumbnailSlot, in.Thumbnail); err != nil {
		return nil, err
	}

	// Parent must exist before anything is uploaded.
	if _, err := s.series.FindByID(ctx, in.SeriesID); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.Validation("podcast series %s does not exist", in.SeriesID)
		}
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, nil, in.Thumbnail, false, episodeThumbnailSlot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	publish := in.PublishDate
	if publish.IsZero() {
		publish = now
	}
	ep := &model.PodcastEpisode{
		ID:            uuid.NewString(),
		SeriesID:      in.SeriesID,
		Title:         in.Title,
		Slug:          slugVal,
		Description:   in.Description,
		Thumbnail:     thumb,
		YouTubeLink:   in.YouTubeLink,
		Duration:      in.Duration,
		EpisodeNumber: in.EpisodeNumber,
		PublishDate:   publish,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, ep)
	if err != nil {
		tx.rollback(ctx)
		if errs.IsKind(err, errs.KindDuplicate) {
			return nil, errs.Duplicate("episode %d already exists in this series, or the slug is taken", in.EpisodeNumber)
		}
		return nil, err
	}
	tx.commit(ctx)
	return created, nil
}

func (s *podcastEpisodeService) List(ctx context.Context, limit, offset int) (*ListResult[model.PodcastEpisode], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *podcastEpisodeService) ListBySeries(ctx context.Context, seriesID string, limit, offset int) (*ListResult[model.PodcastEpisode], error) {
	if seriesID == "" {
		return nil, errs.Validation("podcastSeriesId is required")
	}
	res, err := s.repo.ListBySeries(ctx, seriesID, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *podcastEpisodeService) Get(ctx context.Context, id string) (*model.PodcastEpisode, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *podcastEpisodeService) GetBySlug(ctx context.Context, slugVal string) (*model.PodcastEpisode, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *podcastEpisodeService) Update(ctx context.Context, id string, in UpdatePodcastEpisodeInput) (*model.PodcastEpisode, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if in.Title != nil {
		title = *in.Title
	}
	if in.YouTubeLink != nil {
		if *in.YouTubeLink == "" {
			return nil, errs.Validation("youtubeLink is required")
		}
		if err := validateYouTubeLink(*in.YouTubeLink); err != nil {
			return nil, err
		}
	}
	if in.EpisodeNumber != nil && *in.EpisodeNumber < 1 {
		return nil, errs.Validation("episodeNumber must be at least 1")
	}
	slugVal, err := resolveSlug(ctx, s.repo, title, current.Title, current.Slug, current.ID, false)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, current.Thumbnail, in.Thumbnail, false, episodeThumbnailSlot)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Title = title
	next.Slug = slugVal
	next.Thumbnail = thumb
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.YouTubeLink != nil {
		next.YouTubeLink = *in.YouTubeLink
	}
	if in.Duration != nil {
		next.Duration = *in.Duration
	}
	if in.EpisodeNumber != nil {
		next.EpisodeNumber = *in.EpisodeNumber
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

func (s *podcastEpisodeService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx, asset.SlotRef{Slot: episodeThumbnailSlot, Ref: current.Thumbnail})
	return nil
}
