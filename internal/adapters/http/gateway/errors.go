package gateway

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

var errNoEmployeeRecord = errors.New("gateway: no employee record for the current user")

func statusFor(err error) int {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrTaskNotFound),
		errors.Is(err, employee.ErrDocumentNotFound),
		errors.Is(err, employee.ErrDocumentUnavailable),
		errors.Is(err, workflow.ErrTemplateNotFound),
		errors.Is(err, errNoEmployeeRecord):
		return fiber.StatusNotFound
	case errors.Is(err, employee.ErrEmailAlreadyExists), errors.Is(err, workflow.ErrTemplateExists):
		return fiber.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrNoSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, employee.ErrTaskFieldNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, employee.ErrDocumentStoreMissing):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidTaskID),
		errors.Is(err, employee.ErrInvalidTemplateID),
		errors.Is(err, employee.ErrInvalidDocumentID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidStartDate),
		errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrInvalidTaskTitle),
		errors.Is(err, employee.ErrInvalidDocument),
		errors.Is(err, employee.ErrInvalidPageSize),
		errors.Is(err, employee.ErrInvalidPageToken),
		errors.Is(err, workflow.ErrInvalidCategory),
		errors.Is(err, workflow.ErrInvalidPriority),
		errors.Is(err, workflow.ErrInvalidDayOffset):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
