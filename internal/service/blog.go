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

var blogCoverSlot = asset.Slot{Name: "coverImage", Folder: "blog-covers", Kind: asset.KindImage, Required: true}

const maxExcerptLen = 300

// CreateBlogPostInput carries the parsed multipart fields for a new post.
type CreateBlogPostInput struct {
	Title           string
	Content         string
	Excerpt         string
	Categories      []string
	AuthorName      string
	AuthorBio       string
	IsFeatured      bool
	Status          string
	MetaTitle       string
	MetaDescription string
	ReadingTime     string
	CoverImage      *asset.Upload
}

// UpdateBlogPostInput carries a partial update. A nil Categories slice keeps
// the stored list; an empty non-nil slice clears it.
type UpdateBlogPostInput struct {
	Title           *string
	Content         *string
	Excerpt         *string
	Categories      []string
	AuthorName      *string
	AuthorBio       *string
	IsFeatured      *bool
	Status          *string
	MetaTitle       *string
	MetaDescription *string
	ReadingTime     *string
	CoverImage      *asset.Upload
}

// BlogService defines the blog post use cases.
type BlogService interface {
	Create(ctx context.Context, in CreateBlogPostInput) (*model.BlogPost, error)
	List(ctx context.Context, f repository.BlogFilter, limit, offset int) (*ListResult[model.BlogPost], error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Update(ctx context.Context, id string, in UpdateBlogPostInput) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	repo   repository.BlogPostRepository
	assets *asset.Manager
}

// NewBlogService constructs a new BlogService.
func NewBlogService(repo repository.BlogPostRepository, assets *asset.Manager) BlogService {
	return &blogService{repo: repo, assets: assets}
}

func validateBlogStatus(status string) error {
	if status != model.BlogStatusDraft && status != model.BlogStatusPublished {
		return errs.Validation("status must be %q or %q", model.BlogStatusDraft, model.BlogStatusPublished)
	}
	return nil
}

func (s *blogService) Create(ctx context.Context, in CreateBlogPostInput) (*model.BlogPost, error) {
	if in.Title == "" {
		return nil, errs.Validation("title is required")
	}
	if in.Content == "" {
		return nil, errs.Validation("content is required")
	}
	if len(in.Excerpt) > maxExcerptLen {
		return nil, errs.Validation("excerpt cannot exceed %d characters", maxExcerptLen)
	}
	status := in.Status
	if status == "" {
		status = model.BlogStatusDraft
	}
	if err := validateBlogStatus(status); err != nil {
		return nil, err
	}
	if err := asset.RequireOnCreate(blogCoverSlot, in.CoverImage); err != nil {
		return nil, err
	}

	slugVal, err := resolveSlug(ctx, s.repo, in.Title, "", "", "", true)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	cover, err := tx.apply(ctx, nil, in.CoverImage, false, blogCoverSlot)
	if err != nil {
		return nil, err
	}

	categories := in.Categories
	if categories == nil {
		categories = []string{}
	}
	now := time.Now().UTC()
	p := &model.BlogPost{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Slug:            slugVal,
		Content:         in.Content,
		Excerpt:         in.Excerpt,
		CoverImage:      cover,
		Categories:      categories,
		AuthorName:      in.AuthorName,
		AuthorBio:       in.AuthorBio,
		IsFeatured:      in.IsFeatured,
		Status:          status,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		ReadingTime:     in.ReadingTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		tx.rollback(ctx)
		return nil, err
	}
	tx.commit(ctx)
	return created, nil
}

func (s *blogService) List(ctx context.Context, f repository.BlogFilter, limit, offset int) (*ListResult[model.BlogPost], error) {
	if f.Status != "" {
		if err := validateBlogStatus(f.Status); err != nil {
			return nil, err
		}
	}
	res, err := s.repo.ListFiltered(ctx, f, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return toListResult(res), nil
}

func (s *blogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	if id == "" {
		return nil, errs.Validation("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slugVal string) (*model.BlogPost, error) {
	if slugVal == "" {
		return nil, errs.Validation("slug is required")
	}
	return s.repo.FindBySlug(ctx, slugVal)
}

func (s *blogService) Update(ctx context.Context, id string, in UpdateBlogPostInput) (*model.BlogPost, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if in.Title != nil {
		title = *in.Title
	}
	if in.Excerpt != nil && len(*in.Excerpt) > maxExcerptLen {
		return nil, errs.Validation("excerpt cannot exceed %d characters", maxExcerptLen)
	}
	if in.Status != nil {
		if err := validateBlogStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	slugVal, err := resolveSlug(ctx, s.repo, title, current.Title, current.Slug, current.ID, false)
	if err != nil {
		return nil, err
	}

	tx := newSlotTxn(s.assets)
	cover, err := tx.apply(ctx, current.CoverImage, in.CoverImage, false, blogCoverSlot)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Title = title
	next.Slug = slugVal
	next.CoverImage = cover
	if in.Content != nil {
		next.Content = *in.Content
	}
	if in.Excerpt != nil {
		next.Excerpt = *in.Excerpt
	}
	if in.Categories != nil {
		next.Categories = in.Categories
	}
	if in.AuthorName != nil {
		next.AuthorName = *in.AuthorName
	}
	if in.AuthorBio != nil {
		next.AuthorBio = *in.AuthorBio
	}
	if in.IsFeatured != nil {
		next.IsFeatured = *in.IsFeatured
	}
	if in.Status != nil {
		next.Status = *in.Status
	}
	if in.MetaTitle != nil {
		next.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		next.MetaDescription = *in.MetaDescription
	}
	if in.ReadingTime != nil {
		next.ReadingTime = *in.ReadingTime
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

func (s *blogService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RemoveAll(ctx, asset.SlotRef{Slot: blogCoverSlot, Ref: current.CoverImage})
	return nil
}
