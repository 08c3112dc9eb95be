package gateway

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/report/xlsx"
)

func (g *gateway) progressReport(c *fiber.Ctx) error {
	now := g.deps.Now()

	var buf bytes.Buffer
	if err := xlsx.Generate(c.UserContext(), g.deps.Employees, &buf, now); err != nil {
		return fmt.Errorf("generate progress report: %w", err)
	}

	filename := fmt.Sprintf("onboarding_progress_%s.xlsx", now.Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsx.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(buf.Bytes())
}
