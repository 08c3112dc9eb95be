// Package gateway は画面遷移ガードと JSON API を提供する HTTP ゲートウェイです。
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

const shutdownTimeout = 5 * time.Second

// Observer は HTTP リクエストとログイン試行を記録します。
type Observer interface {
	ObserveHTTP(route string, status int)
	ObserveLogin(success bool)
}

// Dependencies はゲートウェイが呼び出すユースケースと周辺機能です。
type Dependencies struct {
	Sessions       session.UseCase
	Employees      employee.UseCase
	Templates      workflow.UseCase
	Observer       Observer
	MetricsHandler http.Handler
	Logger         *slog.Logger
	Now            func() time.Time
	SecureCookie   bool
}

type gateway struct {
	deps     Dependencies
	validate *validator.Validate
}

// New は全ルートを登録した fiber.App を返します。
func New(deps Dependencies) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	g := &gateway{deps: deps, validate: validator.New()}

	app := fiber.New(fiber.Config{
		AppName:               "onboarding-gateway",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		BodyLimit:             16 << 20,
	})

	app.Use(g.requestLogger())
	app.Use(g.resolveIdentity())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(access.LoginPath, fiber.StatusSeeOther)
	})
	app.Get(access.LoginPath, g.loginView)
	app.Get(access.AdminHomePath, g.guardView(access.RoleAdmin), g.adminDashboard)
	app.Get(access.WorkflowBuilderPath, g.guardView(access.RoleAdmin), g.workflowBuilder)
	app.Get(access.EmployeeHomePath, g.guardView(access.RoleEmployee), g.employeeDashboard)
	app.Get(access.EmployeeProfilePath, g.guardView(access.RoleEmployee), g.employeeProfile)

	api := app.Group("/api")
	api.Post("/login", g.login)
	api.Post("/logout", g.logout)
	api.Get("/me", g.requireSession(), g.me)

	owned := []fiber.Handler{g.requireSession(), g.requireActOn()}
	api.Patch("/employees/:employeeID/tasks/:taskID", append(owned, g.updateTask)...)
	api.Post("/employees/:employeeID/tasks/:taskID/documents", append(owned, g.uploadDocument)...)
	api.Get("/employees/:employeeID/tasks/:taskID/documents/:documentID", append(owned, g.downloadDocument)...)

	api.Get("/reports/progress.xlsx", g.requireSession(), g.requireRole(access.RoleAdmin), g.progressReport)

	return app
}

// Server は HTTP ゲートウェイのライフサイクルを管理します。
type Server struct {
	listenAddr string
	app        *fiber.App
}

// NewServer は指定アドレスで待ち受けるゲートウェイを構築します。
func NewServer(listenAddr string, deps Dependencies) *Server {
	return &Server{listenAddr: listenAddr, app: New(deps)}
}

// Run はゲートウェイを起動し、コンテキストがキャンセルされると停止します。
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.ShutdownWithTimeout(shutdownTimeout)
	}()

	if err := s.app.Listen(s.listenAddr); err != nil {
		return fmt.Errorf("serve HTTP on %s: %w", s.listenAddr, err)
	}
	return nil
}

// Shutdown はゲートウェイを停止します。
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}
