package workflow

import "errors"

var (
	ErrInvalidID          = errors.New("workflow: invalid id")
	ErrInvalidName        = errors.New("workflow: invalid name")
	ErrInvalidDepartment  = errors.New("workflow: invalid department")
	ErrInvalidTaskTitle   = errors.New("workflow: invalid task title")
	ErrInvalidDescription = errors.New("workflow: invalid task description")
	ErrInvalidCategory    = errors.New("workflow: invalid category")
	ErrInvalidPriority    = errors.New("workflow: invalid priority")
	ErrInvalidDayOffset   = errors.New("workflow: invalid day offset")
	ErrNoTasks            = errors.New("workflow: template requires at least one task")
	ErrInvalidPageSize    = errors.New("workflow: invalid page size")
	ErrInvalidPageToken   = errors.New("workflow: invalid page token")
	ErrTemplateNotFound   = errors.New("workflow: template not found")
	ErrTemplateExists     = errors.New("workflow: template already exists")
)
