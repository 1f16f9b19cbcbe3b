package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/service"
)

// AppointmentHandler exposes consultation requests. Creation is the public
// booking form; the rest serve the admin dashboard.
type AppointmentHandler struct {
	svc service.AppointmentService
}

func NewAppointmentHandler(svc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type createAppointmentRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	City             string `json:"city"`
	ConsultationMode string `json:"consultationMode"`
	Message          string `json:"message"`
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("malformed request body"))
	}

	a, err := h.svc.Create(c.UserContext(), service.CreateAppointmentInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		Gender:           req.Gender,
		City:             req.City,
		ConsultationMode: req.ConsultationMode,
		Message:          req.Message,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, a)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
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

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	a, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, a)
}

func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("malformed request body"))
	}

	a, err := h.svc.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, a)
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
