package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
	"wellnessapi/internal/storage"
)

// Nutrition plan slots are mandatory at creation but clearable afterwards so
// a plan can be unlisted from direct download without deleting the row.
var (
	planThumbnailSlot = asset.Slot{Name: "thumbnail", Folder: "nutrition-plan-thumbnails", Kind: asset.KindImage, Required: true, Clearable: true}
	planPDFSlot       = asset.Slot{Name: "pdfFile", Folder: "nutrition-plan-pdfs", Kind: asset.KindDocument, Required: true, Clearable: true}
)

const maxPlanTitleLen = 100

// CreateNutritionPlanInput carries the parsed multipart fields for a new plan.
type CreateNutritionPlanInput struct {
	Title       string
	Description string
	Price       float64
	Pages       int
	Category    string
	PaymentLink string
	Thumbnail   *asset.Upload
	PDF         *asset.Upload
}

// UpdateNutritionPlanInput carries a partial update. ClearThumbnail and
// ClearPDF empty the slot when no replacement file is sent.
type UpdateNutritionPlanInput struct {
	Title          *string
	Description    *string
	Price          *float64
	Pages          *int
	Category       *string
	PaymentLink    *string
	Thumbnail      *asset.Upload
	PDF            *asset.Upload
	ClearThumbnail bool
	ClearPDF       bool
}

// NutritionPlanService defines the nutrition plan use cases.
type NutritionPlanService interface {
	Create(ctx context.Context, in CreateNutritionPlanInput) (*model.NutritionPlan, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.NutritionPlan], error)
	Get(ctx context.Context, id string) (*model.NutritionPlan, error)
	GetBySlug(ctx context.Context, slug string) (*model.NutritionPlan, error)
	Update(ctx context.Context, id string, in UpdateNutritionPlanInput) (*model.NutritionPlan, error)
	Delete(ctx context.Context, id string) error
	DownloadPDF(ctx context.Context, id string) (*PDFDownload, error)
}

type nutritionPlanService struct {
	repo   repository.ContentRepository[model.NutritionPlan]
	assets *asset.Manager
	store  storage.Storage
}

// NewNutritionPlanService constructs a new NutritionPlanService.
func NewNutritionPlanService(repo repository.ContentRepository[model.NutritionPlan], assets *asset.Manager, store storage.Storage) NutritionPlanService {
	return &nutritionPlanService{repo: repo, assets: assets, store: store}
}

func validatePlanTitle(title string) error {
	if title == "" {
		return errs.Validation("title is required")
	}
	if len(title) > maxPlanTitleLen {
		return errs.Validation("title cannot exceed %d characters", maxPlanTitleLen)
	}
	return nil
}

func (s *nutritionPlanService) Create(ctx context.Context, in CreateNutritionPlanInput) (*model.NutritionPlan, error) {
	if err := validatePlanTitle(in.Title); err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, errs.Validation("price cannot be negative")
	}
	if err := asset.RequireOnCreate(planThumbnailSlot, in.Thumbnail); err != nil {
		return nil, err
	}
	if err := asset.RequireOnCreate(planPDFSlot, in.PDF); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, nil, in.Thumbnail, false, planThumbnailSlot)
	if err != nil {
		return nil, err
	}
	pdf, err := tx.apply(ctx, nil, in.PDF, false, planPDFSlot)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.NutritionPlan{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        slugVal,
		Description: in.Description,
		Price:       in.Price,
		Pages:       in.Pages,
		Category:    in.Category,
		Thumbnail:   thumb,
		PDF:         pdf,
		PaymentLink: in.PaymentLink,
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

func (s *nutritionPlanService) List(ctx context.Context, limit, offset int) (*ListResult[model.NutritionPlan], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *nutritionPlanService) Get(ctx context.Context, id string) (*model.NutritionPlan, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *nutritionPlanService) GetBySlug(ctx context.Context, slugVal string) (*model.NutritionPlan, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *nutritionPlanService) Update(ctx context.Context, id string, in UpdateNutritionPlanInput) (*model.NutritionPlan, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if in.Title != nil {
		if err := validatePlanTitle(*in.Title); err != nil {
			return nil, err
		}
		title = *in.Title
	}
	slugVal, err := resolveSlug(ctx, s.repo, title, current.Title, current.Slug, current.ID, false)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, current.Thumbnail, in.Thumbnail, in.ClearThumbnail, planThumbnailSlot)
	if err != nil {
		return nil, err
	}
	pdf, err := tx.apply(ctx, current.PDF, in.PDF, in.ClearPDF, planPDFSlot)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}

	next := *current
	next.Title = title
	next.Slug = slugVal
	next.Thumbnail = thumb
	next.PDF = pdf
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
	if in.Pages != nil {
		next.Pages = *in.Pages
	}
	if in.Category != nil {
		next.Category = *in.Category
	}
	if in.PaymentLink != nil {
		next.PaymentLink = *in.PaymentLink
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

func (s *nutritionPlanService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx,
		asset.SlotRef{Slot: planThumbnailSlot, Ref: current.Thumbnail},
		asset.SlotRef{Slot: planPDFSlot, Ref: current.PDF},
	)
	return nil
}

func (s *nutritionPlanService) DownloadPDF(ctx context.Context, id string) (*PDFDownload, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.PDF == nil {
		return nil, errs.NotFound("nutrition plan has no PDF attached")
	}
	r, info, err := s.store.Get(ctx, p.PDF.Key)
	if err != nil {
		return nil, errs.Upstream("failed to fetch PDF from storage", err)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &PDFDownload{
		Reader:      r,
		Filename:    p.Slug + ".pdf",
		ContentType: contentType,
		Size:        info.Size,
	}, nil
}
