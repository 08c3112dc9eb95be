package employee

import "errors"

var (
	ErrInvalidID            = errors.New("employee: invalid id")
	ErrInvalidTaskID        = errors.New("employee: invalid task id")
	ErrInvalidTemplateID    = errors.New("employee: invalid template id")
	ErrInvalidDocumentID    = errors.New("employee: invalid document id")
	ErrInvalidName          = errors.New("employee: invalid name")
	ErrInvalidEmail         = errors.New("employee: invalid email")
	ErrInvalidStartDate     = errors.New("employee: invalid start date")
	ErrInvalidStatus        = errors.New("employee: invalid status")
	ErrInvalidTaskTitle     = errors.New("employee: invalid task title")
	ErrInvalidDocument      = errors.New("employee: invalid document")
	ErrInvalidPageSize      = errors.New("employee: invalid page size")
	ErrInvalidPageToken     = errors.New("employee: invalid page token")
	ErrEmployeeNotFound     = errors.New("employee: not found")
	ErrTaskNotFound         = errors.New("employee: task not found")
	ErrDocumentNotFound     = errors.New("employee: document not found")
	ErrEmailAlreadyExists   = errors.New("employee: email already exists")
	ErrDocumentStoreMissing = errors.New("employee: document store is not configured")
	ErrTaskFieldNotAllowed  = errors.New("employee: task field cannot be changed by the employee")
	ErrDocumentUnavailable  = errors.New("employee: document content is unavailable")
)
