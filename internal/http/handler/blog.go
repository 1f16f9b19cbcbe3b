package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/repository"
	"wellnessapi/internal/service"
)

// BlogHandler exposes the blog post collection. Listing accepts optional
// status and featured filters.
type BlogHandler struct {
	svc service.BlogService
}

func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	filter := repository.BlogFilter{Status: c.Query("status")}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}

	res, err := h.svc.List(c.UserContext(), filter, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, res)
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *BlogHandler) GetBySlug(c *fiber.Ctx) error {
	p, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	featured, err := f.boolVal("isFeatured")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Create(c.UserContext(), service.CreateBlogPostInput{
		Title:           f.str("title"),
		Content:         f.str("content"),
		Excerpt:         f.str("excerpt"),
		Categories:      f.list("categories"),
		AuthorName:      f.str("authorName"),
		AuthorBio:       f.str("authorBio"),
		IsFeatured:      featured,
		Status:          f.str("status"),
		MetaTitle:       f.str("metaTitle"),
		MetaDescription: f.str("metaDescription"),
		ReadingTime:     f.str("readingTime"),
		CoverImage:      cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, p)
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	featured, err := f.boolPtr("isFeatured")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdateBlogPostInput{
		Title:           f.strPtr("title"),
		Content:         f.strPtr("content"),
		Excerpt:         f.strPtr("excerpt"),
		Categories:      f.list("categories"),
		AuthorName:      f.strPtr("authorName"),
		AuthorBio:       f.strPtr("authorBio"),
		IsFeatured:      featured,
		Status:          f.strPtr("status"),
		MetaTitle:       f.strPtr("metaTitle"),
		MetaDescription: f.strPtr("metaDescription"),
		ReadingTime:     f.strPtr("readingTime"),
		CoverImage:      cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
