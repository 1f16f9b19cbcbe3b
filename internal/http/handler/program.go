package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/service"
)

// ProgramHandler exposes the exercise program collection.
type ProgramHandler struct {
	svc service.ProgramService
}

func NewProgramHandler(svc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

func (h *ProgramHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, res)
}

func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *ProgramHandler) GetBySlug(c *fiber.Ctx) error {
	p, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	price, err := f.float("price")
	if err != nil {
		return fail(c, err)
	}
	publishDate, err := f.date("publishDate")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Create(c.UserContext(), service.CreateProgramInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Price:       price,
		Duration:    f.str("duration"),
		YouTubeLink: f.str("youtubeLink"),
		PublishDate: publishDate,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, p)
}

func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	price, err := f.floatPtr("price")
	if err != nil {
		return fail(c, err)
	}
	publishDate, err := f.datePtr("publishDate")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdateProgramInput{
		Title:       f.strPtr("title"),
		Description: f.strPtr("description"),
		Price:       price,
		Duration:    f.strPtr("duration"),
		YouTubeLink: f.strPtr("youtubeLink"),
		PublishDate: publishDate,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// ProgramSeriesHandler exposes the program series collection.
type ProgramSeriesHandler struct {
	svc service.ProgramSeriesService
}

func NewProgramSeriesHandler(svc service.ProgramSeriesService) *ProgramSeriesHandler {
	return &ProgramSeriesHandler{svc: svc}
}

func (h *ProgramSeriesHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, res)
}

func (h *ProgramSeriesHandler) Get(c *fiber.Ctx) error {
	ps, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *ProgramSeriesHandler) GetBySlug(c *fiber.Ctx) error {
	ps, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *ProgramSeriesHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	publishDate, err := f.date("publishDate")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	ps, err := h.svc.Create(c.UserContext(), service.CreateProgramSeriesInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Category:    f.str("category"),
		Author:      f.str("author"),
		PublishDate: publishDate,
		CoverImage:  cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, ps)
}

func (h *ProgramSeriesHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	publishDate, err := f.datePtr("publishDate")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	ps, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdateProgramSeriesInput{
		Title:       f.strPtr("title"),
		Description: f.strPtr("description"),
		Category:    f.strPtr("category"),
		Author:      f.strPtr("author"),
		PublishDate: publishDate,
		CoverImage:  cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *ProgramSeriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
