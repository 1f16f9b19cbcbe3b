package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/service"
)

// SettingHandler exposes the key/value site settings.
type SettingHandler struct {
	svc service.SettingService
}

func NewSettingHandler(svc service.SettingService) *SettingHandler {
	return &SettingHandler{svc: svc}
}

func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.svc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, settings)
}

func (h *SettingHandler) Get(c *fiber.Ctx) error {
	s, err := h.svc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, s)
}

func (h *SettingHandler) Upsert(c *fiber.Ctx) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("malformed request body"))
	}

	s, err := h.svc.Upsert(c.UserContext(), c.Params("key"), req.Value)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, s)
}

func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("key")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
