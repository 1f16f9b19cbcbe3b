package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/service"
)

// NutritionPlanHandler exposes the nutrition plan collection.
type NutritionPlanHandler struct {
	svc service.NutritionPlanService
}

func NewNutritionPlanHandler(svc service.NutritionPlanService) *NutritionPlanHandler {
	return &NutritionPlanHandler{svc: svc}
}

func (h *NutritionPlanHandler) List(c *fiber.Ctx) error {
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

func (h *NutritionPlanHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *NutritionPlanHandler) GetBySlug(c *fiber.Ctx) error {
	p, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *NutritionPlanHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	price, err := f.float("price")
	if err != nil {
		return fail(c, err)
	}
	pages, err := f.int("pages")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}
	pdf, err := f.file("pdfFile")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Create(c.UserContext(), service.CreateNutritionPlanInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Price:       price,
		Pages:       pages,
		Category:    f.str("category"),
		PaymentLink: f.str("paymentLink"),
		Thumbnail:   thumbnail,
		PDF:         pdf,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, p)
}

func (h *NutritionPlanHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	price, err := f.floatPtr("price")
	if err != nil {
		return fail(c, err)
	}
	pages, err := f.intPtr("pages")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}
	pdf, err := f.file("pdfFile")
	if err != nil {
		return fail(c, err)
	}

	p, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdateNutritionPlanInput{
		Title:          f.strPtr("title"),
		Description:    f.strPtr("description"),
		Price:          price,
		Pages:          pages,
		Category:       f.strPtr("category"),
		PaymentLink:    f.strPtr("paymentLink"),
		Thumbnail:      thumbnail,
		PDF:            pdf,
		ClearThumbnail: thumbnail == nil && f.clears("thumbnail"),
		ClearPDF:       pdf == nil && f.clears("pdfFile"),
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}

func (h *NutritionPlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *NutritionPlanHandler) Download(c *fiber.Ctx) error {
	dl, err := h.svc.DownloadPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, dl.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.Filename))
	if dl.Size > 0 {
		return c.SendStream(dl.Reader, int(dl.Size))
	}
	return c.SendStream(dl.Reader)
}
