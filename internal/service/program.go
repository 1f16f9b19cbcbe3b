package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

var programThumbnailSlot = asset.Slot{Name: "thumbnail", Folder: "program-thumbnails", Kind: asset.KindImage, Required: true}

var youtubeLinkRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

func validateYouTubeLink(link string) error {
	if link != "" && !youtubeLinkRe.MatchString(link) {
		return errs.Validation("youtubeLink must be a valid YouTube URL")
	}
	return nil
}

// CreateProgramInput carries the parsed multipart fields for a new program.
type CreateProgramInput struct {
	Title       string
	Description string
	Price       float64
	Duration    string
	YouTubeLink string
	PublishDate time.Time
	Thumbnail   *asset.Upload
}

// UpdateProgramInput carries a partial update.
type UpdateProgramInput struct {
	Title       *string
	Description *string
	Price       *float64
	Duration    *string
	YouTubeLink *string
	PublishDate *time.Time
	Thumbnail   *asset.Upload
}

// ProgramService defines the exercise program use cases.
type ProgramService interface {
	Create(ctx context.Context, in CreateProgramInput) (*model.Program, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Program], error)
	Get(ctx context.Context, id string) (*model.Program, error)
	GetBySlug(ctx context.Context, slug string) (*model.Program, error)
	Update(ctx context.Context, id string, in UpdateProgramInput) (*model.Program, error)
	Delete(ctx context.Context, id string) error
}

type programService struct {
	repo   repository.ContentRepository[model.Program]
	assets *asset.Manager
}

// NewProgramService constructs a new ProgramService.
func NewProgramService(repo repository.ContentRepository[model.Program], assets *asset.Manager) ProgramService {
	return &programService{repo: repo, assets: assets}
}

func (s *programService) Create(ctx context.Context, in CreateProgramInput) (*model.Program, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if in.Price < 0 {
		return nil, errs.Validation("price cannot be negative")
	}
	if err := validateYouTubeLink(in.YouTubeLink); err != nil {
		return nil, err
	}
	if err := asset.RequireOnCreate(programThumbnailSlot, in.Thumbnail); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, nil, in.Thumbnail, false, programThumbnailSlot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	publish := in.PublishDate
	if publish.IsZero() {
		publish = now
	}
	p := &model.Program{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slugVal,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Thumbnail:   thumb,
		YouTubeLink: in.YouTubeLink,
		PublishDate: publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	tx.commit(ctx)
	return created, nil
}

func (s *programService) List(ctx context.Context, limit, offset int) (*ListResult[model.Program], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *programService) Get(ctx context.Context, id string) (*model.Program, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *programService) GetBySlug(ctx context.Context, slugVal string) (*model.Program, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *programService) Update(ctx context.Context, id string, in UpdateProgramInput) (*model.Program, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if in.Title != nil {
		title = *in.Title
	}
	if in.YouTubeLink != nil {
		if err := validateYouTubeLink(*in.YouTubeLink); err != nil {
			return nil, err
		}
	}
	slugVal, err := resolveSlug(ctx, s.repo, title, current.Title, current.Slug, current.ID, false)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, current.Thumbnail, in.Thumbnail, false, programThumbnailSlot)
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
	if in.Price != nil {
		if *in.Price < 0 {
			tx.rollback(ctx)
			return nil, errs.Validation("price cannot be negative")
		}
		next.Price = *in.Price
	}
	if in.Duration != nil {
		next.Duration = *in.Duration
	}
	if in.YouTubeLink != nil {
		next.YouTubeLink = *in.YouTubeLink
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

func (s *programService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx, asset.SlotRef{Slot: programThumbnailSlot, Ref: current.Thumbnail})
	return nil
}
