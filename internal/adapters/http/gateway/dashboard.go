package gateway

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

const listPageSize = 200

func (g *gateway) adminDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	overview, err := g.deps.Employees.GetOverview(ctx)
	if err != nil {
		return err
	}
	employees, err := g.allEmployees(ctx)
	if err != nil {
		return err
	}
	templates, err := g.allTemplates(ctx)
	if err != nil {
		return err
	}

	now := g.deps.Now()
	employeeViews := make([]employeeView, 0, len(employees))
	for _, e := range employees {
		employeeViews = append(employeeViews, toEmployeeView(e, now))
	}
	templateViews := make([]templateView, 0, len(templates))
	for _, t := range templates {
		templateViews = append(templateViews, toTemplateView(t))
	}

	return c.JSON(fiber.Map{
		"user":      toUserView(currentIdentity(c)),
		"overview":  toOverviewView(overview),
		"employees": employeeViews,
		"templates": templateViews,
	})
}

func (g *gateway) workflowBuilder(c *fiber.Ctx) error {
	templates, err := g.allTemplates(c.UserContext())
	if err != nil {
		return err
	}
	views := make([]templateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, toTemplateView(t))
	}
	return c.JSON(fiber.Map{
		"user":      toUserView(currentIdentity(c)),
		"templates": views,
	})
}

func (g *gateway) employeeDashboard(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	ctx := c.UserContext()

	self, err := g.ownRecord(ctx, identity.ID)
	if err != nil {
		return err
	}
	summary, err := g.deps.Employees.GetTaskSummary(ctx, employee.GetEmployeeInput{ID: identity.ID})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":     toUserView(identity),
		"employee": toEmployeeView(self, g.deps.Now()),
		"summary":  toSummaryView(summary),
	})
}

func (g *gateway) employeeProfile(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	self, err := g.ownRecord(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	view := toEmployeeView(self, g.deps.Now())
	view.Tasks = nil
	return c.JSON(fiber.Map{
		"user":    toUserView(identity),
		"profile": view,
	})
}

func (g *gateway) ownRecord(ctx context.Context, id string) (*employee.Employee, error) {
	self, err := g.deps.Employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: id})
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, errNoEmployeeRecord
	}
	return self, err
}

func (g *gateway) allEmployees(ctx context.Context) ([]*employee.Employee, error) {
	var (
		out   []*employee.Employee
		token string
	)
	for {
		page, err := g.deps.Employees.ListEmployees(ctx, employee.ListEmployeesInput{PageSize: listPageSize, PageToken: token})
		if err != nil {
			return nil, err
		}
		out = append(out, page.Employees...)
		if page.NextPageToken == "" {
			return out, nil
		}
		token = page.NextPageToken
	}
}

func (g *gateway) allTemplates(ctx context.Context) ([]*workflow.Template, error) {
	var (
		out   []*workflow.Template
		token string
	)
	for {
		page, err := g.deps.Templates.ListTemplates(ctx, workflow.ListTemplatesInput{PageSize: listPageSize, PageToken: token})
		if err != nil {
			return nil, err
		}
		out = append(out, page.Templates...)
		if page.NextPageToken == "" {
			return out, nil
		}
		token = page.NextPageToken
	}
}
