package handler

import (
	"errors"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
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
		errors.Is(err, workflow.ErrInvalidID),
		errors.Is(err, workflow.ErrInvalidName),
		errors.Is(err, workflow.ErrInvalidDepartment),
		errors.Is(err, workflow.ErrInvalidTaskTitle),
		errors.Is(err, workflow.ErrInvalidDescription),
		errors.Is(err, workflow.ErrInvalidCategory),
		errors.Is(err, workflow.ErrInvalidPriority),
		errors.Is(err, workflow.ErrInvalidDayOffset),
		errors.Is(err, workflow.ErrNoTasks),
		errors.Is(err, workflow.ErrInvalidPageSize),
		errors.Is(err, workflow.ErrInvalidPageToken):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrEmailAlreadyExists), errors.Is(err, workflow.ErrTemplateExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrTaskNotFound),
		errors.Is(err, employee.ErrDocumentNotFound),
		errors.Is(err, employee.ErrDocumentUnavailable),
		errors.Is(err, workflow.ErrTemplateNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrNoSession):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, employee.ErrTaskFieldNotAllowed):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, employee.ErrDocumentStoreMissing):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
