package server

import (
	"context"
	"net"
	"testing"
	"time"

	blobmemory "github.com/ogurasousui/onboarding-workflow/internal/adapters/blob/memory"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/handler"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/repository/memory"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testPassword = "password123"

type harness struct {
	conn      *grpc.ClientConn
	sessions  *onboardingv1.SessionServiceClient
	employees *onboardingv1.EmployeeServiceClient
	templates *onboardingv1.WorkflowTemplateServiceClient
}

func startServer(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	txm := memory.NewTransactionManager(store)
	employeeRepo := memory.NewEmployeeRepository(store)

	if _, err := employeeRepo.Create(context.Background(), &employee.Employee{
		ID:         "2",
		Name:       "John Doe",
		Email:      "john.doe@company.com",
		Department: "Engineering",
		StartDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     employee.StatusPending,
		Tasks:      []employee.Task{},
	}); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	workflowSvc := workflow.NewService(memory.NewTemplateRepository(store), nil, txm, nil)
	employeeSvc := employee.NewService(employeeRepo, workflowSvc, nil, txm,
		employee.WithDocumentStore(blobmemory.NewStore()))

	creds, err := session.NewStaticCredentials([]session.Account{
		{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: access.RoleAdmin, Password: testPassword},
		{ID: "2", Name: "John Doe", Email: "john.doe@company.com", Role: access.RoleEmployee, Password: testPassword},
	}, 4)
	if err != nil {
		t.Fatalf("NewStaticCredentials: %v", err)
	}
	sessionSvc, err := session.NewService(creds, []byte("test-signing-secret-0123"), time.Hour, nil)
	if err != nil {
		t.Fatalf("session.NewService: %v", err)
	}

	srv := New("bufnet", Services{
		Session:  handler.NewSessionGrpcHandler(sessionSvc, nil),
		Employee: handler.NewEmployeeGrpcHandler(employeeSvc),
		Workflow: handler.NewWorkflowTemplateGrpcHandler(workflowSvc),
	}, grpc.ChainUnaryInterceptor(handler.AuthUnaryInterceptor(sessionSvc)))

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	return &harness{
		conn:      conn,
		sessions:  onboardingv1.NewSessionServiceClient(conn),
		employees: onboardingv1.NewEmployeeServiceClient(conn),
		templates: onboardingv1.NewWorkflowTemplateServiceClient(conn),
	}
}

func (h *harness) login(t *testing.T, email string) context.Context {
	t.Helper()

	resp, err := h.sessions.Login(context.Background(), &onboardingv1.LoginRequest{Email: email, Password: testPassword})
	if err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+resp.Token)
}

func TestServer_OnboardingFlow(t *testing.T) {
	t.Parallel()

	h := startServer(t)
	admin := h.login(t, "admin@company.com")

	tmpl, err := h.templates.CreateTemplate(admin, &onboardingv1.CreateTemplateRequest{
		Name:       "Engineering Onboarding",
		Department: "Engineering",
		Tasks: []*onboardingv1.TaskBlueprint{
			{Title: "Complete Tax Forms", Description: "W-4", Category: "documentation", Priority: "high", DueOffset: "5"},
			{Title: "Setup Development Environment", Description: "Tools", Category: "setup", DueOffset: "7"},
		},
	})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if tmpl.Template.EstimatedDuration != 7 || tmpl.Template.Tasks[1].Priority != "medium" {
		t.Fatalf("unexpected template: %+v", tmpl.Template)
	}

	assigned, err := h.employees.AssignTemplate(admin, &onboardingv1.AssignTemplateRequest{EmployeeID: "2", TemplateID: tmpl.Template.ID})
	if err != nil {
		t.Fatalf("AssignTemplate: %v", err)
	}
	if got := assigned.Employee.Tasks[0].DueDate; got != "2024-01-20" {
		t.Fatalf("expected due date 2024-01-20, got %s", got)
	}

	john := h.login(t, "john.doe@company.com")
	completed := true
	updated, err := h.employees.UpdateTask(john, &onboardingv1.UpdateTaskRequest{
		EmployeeID: "2",
		TaskID:     assigned.Employee.Tasks[0].ID,
		Completed:  &completed,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Employee.Progress != 50 || updated.Employee.Status != "in-progress" {
		t.Fatalf("unexpected progress: %d %s", updated.Employee.Progress, updated.Employee.Status)
	}
	if updated.Employee.Tasks[0].CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}

	doc, err := h.employees.AttachDocument(john, &onboardingv1.AttachDocumentRequest{
		EmployeeID:  "2",
		TaskID:      assigned.Employee.Tasks[0].ID,
		Name:        "w4.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("AttachDocument: %v", err)
	}
	downloaded, err := h.employees.GetDocument(john, &onboardingv1.GetDocumentRequest{
		EmployeeID: "2",
		TaskID:     assigned.Employee.Tasks[0].ID,
		DocumentID: doc.Document.ID,
	})
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if string(downloaded.Content) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", downloaded.Content)
	}

	overview, err := h.employees.GetOverview(admin, &onboardingv1.GetOverviewRequest{})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if overview.Overview.TotalEmployees != 1 || overview.Overview.AverageProgress != 50 || overview.Overview.PendingTasks != 1 {
		t.Fatalf("unexpected overview: %+v", overview.Overview)
	}
}

func TestServer_Guard(t *testing.T) {
	t.Parallel()

	h := startServer(t)
	john := h.login(t, "john.doe@company.com")

	if _, err := h.employees.GetOverview(context.Background(), &onboardingv1.GetOverviewRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", err)
	}
	if _, err := h.employees.ListEmployees(john, &onboardingv1.ListEmployeesRequest{}); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for employee on admin method, got %v", err)
	}
	if _, err := h.employees.GetEmployee(john, &onboardingv1.GetEmployeeRequest{ID: "3"}); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for other employee, got %v", err)
	}

	me, err := h.sessions.CurrentUser(john, &onboardingv1.CurrentUserRequest{})
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if me.User.ID != "2" || me.User.Role != "employee" {
		t.Fatalf("unexpected user: %+v", me.User)
	}

	if _, err := h.sessions.Logout(john, &onboardingv1.LogoutRequest{}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := h.sessions.CurrentUser(john, &onboardingv1.CurrentUserRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated after logout, got %v", err)
	}
}

func TestServer_LoginRejected(t *testing.T) {
	t.Parallel()

	h := startServer(t)
	_, err := h.sessions.Login(context.Background(), &onboardingv1.LoginRequest{Email: "admin@company.com", Password: "nope"})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	h := startServer(t)
	client := healthpb.NewHealthClient(h.conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		resp *healthpb.HealthCheckResponse
		err  error
	)
	for {
		resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			break
		}
		select {
		case <-ctx.Done():
			t.Fatalf("health check never reported SERVING: %v", err)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
