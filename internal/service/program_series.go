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

var programSeriesCoverSlot = asset.Slot{Name: "coverImage", Folder: "program-series-covers", Kind: asset.KindImage, Required: true}

// CreateProgramSeriesInput carries the parsed multipart fields for a new
// series.
type CreateProgramSeriesInput struct {
	Title       string
	Description string
	Category    string
	Author      string
	PublishDate time.Time
	CoverImage  *asset.Upload
}

// UpdateProgramSeriesInput carries a partial update.
type UpdateProgramSeriesInput struct {
	Title       *string
	Description *string
	Category    *string
	Author      *string
	PublishDate *time.Time
	CoverImage  *asset.Upload
}

// ProgramSeriesService defines the program series use cases.
type ProgramSeriesService interface {
	Create(ctx context.Context, in CreateProgramSeriesInput) (*model.ProgramSeries, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.ProgramSeries], error)
	Get(ctx context.Context, id string) (*model.ProgramSeries, error)
	GetBySlug(ctx context.Context, slug string) (*model.ProgramSeries, error)
	Update(ctx context.Context, id string, in UpdateProgramSeriesInput) (*model.ProgramSeries, error)
	Delete(ctx context.Context, id string) error
}

type programSeriesService struct {
	repo   repository.ContentRepository[model.ProgramSeries]
	assets *asset.Manager
}

// NewProgramSeriesService constructs a new ProgramSeriesService.
func NewProgramSeriesService(repo repository.ContentRepository[model.ProgramSeries], assets *asset.Manager) ProgramSeriesService {
	return &programSeriesService{repo: repo, assets: assets}
}

func (s *programSeriesService) Create(ctx context.Context, in CreateProgramSeriesInput) (*model.ProgramSeries, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if err := asset.RequireOnCreate(programSeriesCoverSlot, in.CoverImage); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	cover, err := tx.apply(ctx, nil, in.CoverImage, false, programSeriesCoverSlot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	publish := in.PublishDate
	if publish.IsZero() {
		publish = now
	}
	ps := &model.ProgramSeries{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slugVal,
		Description: in.Description,
		CoverImage:  cover,
		Category:    in.Category,
		Author:      in.Author,
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

func (s *programSeriesService) List(ctx context.Context, limit, offset int) (*ListResult[model.ProgramSeries], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *programSeriesService) Get(ctx context.Context, id string) (*model.ProgramSeries, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *programSeriesService) GetBySlug(ctx context.Context, slugVal string) (*model.ProgramSeries, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *programSeriesService) Update(ctx context.Context, id string, in UpdateProgramSeriesInput) (*model.ProgramSeries, error) {
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
	cover, err := tx.apply(ctx, current.CoverImage, in.CoverImage, false, programSeriesCoverSlot)
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
	if in.Author != nil {
		next.Author = *in.Author
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

func (s *programSeriesService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx, asset.SlotRef{Slot: programSeriesCoverSlot, Ref: current.CoverImage})
	return nil
}
