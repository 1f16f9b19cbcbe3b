package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/service"
)

// envelope is the uniform response body. Error responses carry Success=false
// and a safe message; list responses add count/total.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(envelope{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Data: data})
}

func okList[T any](c *fiber.Ctx, res *service.ListResult[T]) error {
	count := len(res.Items)
	return c.JSON(envelope{Success: true, Data: res.Items, Count: &count, Total: &res.Total})
}

// statusOf maps the error taxonomy to HTTP exactly once. Duplicates are 400,
// not 409: clients treat a taken title like any other validation problem.
func statusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindDuplicate:
		return fiber.StatusBadRequest
	case errs.KindNotFound:
		return fiber.StatusNotFound
	case errs.KindUnauthorized:
		return fiber.StatusUnauthorized
	case errs.KindUpload, errs.KindUpstream:
		return fiber.StatusBadGateway
	case errs.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// fail translates a service error into the envelope. Untagged errors get a
// generic message so internals never leak.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(envelope{Success: false, Error: errs.MessageOf(err)})
}

// ErrorHandler returns the Fiber global error handler. Handlers normally
// respond via fail; this catches routing-level errors (404s, oversized
// bodies) and anything a handler returned raw.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				msg = "internal server error"
			}
			return c.Status(fe.Code).JSON(envelope{Success: false, Error: msg})
		}
		return fail(c, err)
	}
}
