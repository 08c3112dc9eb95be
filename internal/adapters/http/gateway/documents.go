package gateway

import (
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

type taskPatchRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" validate:"omitempty,oneof=documentation setup training compliance"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string    `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Completed   *bool      `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	AssignedTo  *string    `json:"assigned_to"`
}

func (g *gateway) updateTask(c *fiber.Ctx) error {
	var req taskPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := g.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := employee.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CompletedAt: req.CompletedAt,
		AssignedTo:  req.AssignedTo,
	}
	if req.Category != nil {
		category := workflow.Category(*req.Category)
		patch.Category = &category
	}
	if req.Priority != nil {
		priority := workflow.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := time.ParseInLocation(dateLayout, *req.DueDate, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
		}
		patch.DueDate = &due
	}
	if identity := currentIdentity(c); identity != nil && identity.Role == access.RoleEmployee {
		if err := patch.CompletionOnly(); err != nil {
			return err
		}
	}

	updated, err := g.deps.Employees.UpdateTask(c.UserContext(), employee.UpdateTaskInput{
		EmployeeID: c.Params("employeeID"),
		TaskID:     c.Params("taskID"),
		Patch:      patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employee": toEmployeeView(updated, g.deps.Now())})
}

// uploadDocument は multipart の file フィールドを書類として添付します。
func (g *gateway) uploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = fh.Filename
	}

	doc, err := g.deps.Employees.AttachDocument(c.UserContext(), employee.AttachDocumentInput{
		EmployeeID:  c.Params("employeeID"),
		TaskID:      c.Params("taskID"),
		Name:        name,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": toDocumentView(*doc)})
}

func (g *gateway) downloadDocument(c *fiber.Ctx) error {
	content, err := g.deps.Employees.GetDocument(c.UserContext(), employee.GetDocumentInput{
		EmployeeID: c.Params("employeeID"),
		TaskID:     c.Params("taskID"),
		DocumentID: c.Params("documentID"),
	})
	if err != nil {
		return err
	}

	contentType := content.Document.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": content.Document.Name}))
	return c.Send(content.Content)
}
