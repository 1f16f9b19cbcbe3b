package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/service"
)

// EbookHandler exposes the ebook collection.
type EbookHandler struct {
	svc service.EbookService
}

func NewEbookHandler(svc service.EbookService) *EbookHandler {
	return &EbookHandler{svc: svc}
}

func pagination(c *fiber.Ctx) (int, int, error) {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid offset")
	}
	return limit, offset, nil
}

func (h *EbookHandler) List(c *fiber.Ctx) error {
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

func (h *EbookHandler) Get(c *fiber.Ctx) error {
	e, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, e)
}

func (h *EbookHandler) GetBySlug(c *fiber.Ctx) error {
	e, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, e)
}

func (h *EbookHandler) Create(c *fiber.Ctx) error {
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
	publishDate, err := f.date("publishDate")
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

	e, err := h.svc.Create(c.UserContext(), service.CreateEbookInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Price:       price,
		Pages:       pages,
		Category:    f.str("category"),
		PaymentLink: f.str("paymentLink"),
		PublishDate: publishDate,
		Thumbnail:   thumbnail,
		PDF:         pdf,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, e)
}

func (h *EbookHandler) Update(c *fiber.Ctx) error {
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
	publishDate, err := f.datePtr("publishDate")
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

	e, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdateEbookInput{
		Title:       f.strPtr("title"),
		Description: f.strPtr("description"),
		Price:       price,
		Pages:       pages,
		Category:    f.strPtr("category"),
		PaymentLink: f.strPtr("paymentLink"),
		PublishDate: publishDate,
		Thumbnail:   thumbnail,
		PDF:         pdf,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, e)
}

func (h *EbookHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// Download proxies the PDF from object storage. The stream is tied to the
// request context, so a client that disconnects aborts the upstream read.
func (h *EbookHandler) Download(c *fiber.Ctx) error {
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
