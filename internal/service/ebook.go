package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
	"wellnessapi/internal/storage"
)

// Ebook asset slots. Both are mandatory at creation and replace-only
// afterwards: an ebook without a thumbnail or a PDF is not sellable.
var (
	ebookThumbnailSlot = asset.Slot{Name: "thumbnail", Folder: "ebook-thumbnails", Kind: asset.KindImage, Required: true}
	ebookPDFSlot       = asset.Slot{Name: "pdfFile", Folder: "ebook-pdfs", Kind: asset.KindDocument, Required: true}
)

// CreateEbookInput carries the parsed multipart fields for a new ebook.
type CreateEbookInput struct {
	Title       string
	Description string
	Price       float64
	Pages       int
	Category    string
	PaymentLink string
	PublishDate time.Time
	Thumbnail   *asset.Upload
	PDF         *asset.Upload
}

// UpdateEbookInput carries a partial update. Nil field pointers leave the
// stored value untouched; nil uploads keep the current objects.
type UpdateEbookInput struct {
	Title       *string
	Description *string
	Price       *float64
	Pages       *int
	Category    *string
	PaymentLink *string
	PublishDate *time.Time
	Thumbnail   *asset.Upload
	PDF         *asset.Upload
}

// PDFDownload is an open PDF stream ready to proxy to a client, shared by the
// ebook and nutrition plan download endpoints.
type PDFDownload struct {
	Reader      io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// EbookService defines the ebook use cases.
type EbookService interface {
	Create(ctx context.Context, in CreateEbookInput) (*model.Ebook, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Ebook], error)
	Get(ctx context.Context, id string) (*model.Ebook, error)
	GetBySlug(ctx context.Context, slug string) (*model.Ebook, error)
	Update(ctx context.Context, id string, in UpdateEbookInput) (*model.Ebook, error)
	Delete(ctx context.Context, id string) error

	// DownloadPDF opens the ebook's PDF for streaming. The returned reader
	// honors ctx cancellation so an aborted client download stops the
	// upstream read.
	DownloadPDF(ctx context.Context, id string) (*PDFDownload, error)
}

type ebookService struct {
	repo   repository.ContentRepository[model.Ebook]
	assets *asset.Manager
	store  storage.Storage
}

// NewEbookService constructs a new EbookService.
func NewEbookService(repo repository.ContentRepository[model.Ebook], assets *asset.Manager, store storage.Storage) EbookService {
	return &ebookService{repo: repo, assets: assets, store: store}
}

func (s *ebookService) Create(ctx context.Context, in CreateEbookInput) (*model.Ebook, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if in.Price < 0 {
		return nil, errs.Validation("price cannot be negative")
	}
	if err := asset.RequireOnCreate(ebookThumbnailSlot, in.Thumbnail); err != nil {
		return nil, err
	}
	if err := asset.RequireOnCreate(ebookPDFSlot, in.PDF); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	thumb, err := tx.apply(ctx, nil, in.Thumbnail, false, ebookThumbnailSlot)
	if err != nil {
		return nil, err
	}
	pdf, err := tx.apply(ctx, nil, in.PDF, false, ebookPDFSlot)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}

	now := time.Now().UTC()
	publish := in.PublishDate
	if publish.IsZero() {
		publish = now
	}
	e := &model.Ebook{
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
		PublishDate: publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	tx.commit(ctx)
	return created, nil
}

func (s *ebookService) List(ctx context.Context, limit, offset int) (*ListResult[model.Ebook], error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *ebookService) Get(ctx context.Context, id string) (*model.Ebook, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ebookService) GetBySlug(ctx context.Context, slugVal string) (*model.Ebook, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *ebookService) Update(ctx context.Context, id string, in UpdateEbookInput) (*model.Ebook, error) {
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
	thumb, err := tx.apply(ctx, current.Thumbnail, in.Thumbnail, false, ebookThumbnailSlot)
	if err != nil {
		return nil, err
	}
	pdf, err := tx.apply(ctx, current.PDF, in.PDF, false, ebookPDFSlot)
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

func (s *ebookService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx,
		asset.SlotRef{Slot: ebookThumbnailSlot, Ref: current.Thumbnail},
		asset.SlotRef{Slot: ebookPDFSlot, Ref: current.PDF},
	)
	return nil
}

func (s *ebookService) DownloadPDF(ctx context.Context, id string) (*PDFDownload, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.PDF == nil {
		return nil, errs.NotFound("ebook has no PDF attached")
	}
	r, info, err := s.store.Get(ctx, e.PDF.Key)
	if err != nil {
		return nil, errs.Upstream("failed to fetch PDF from storage", err)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &PDFDownload{
		Reader:      r,
		Filename:    e.Slug + ".pdf",
		ContentType: contentType,
		Size:        info.Size,
	}, nil
}
