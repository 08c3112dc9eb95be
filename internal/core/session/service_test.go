package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"golang.org/x/crypto/bcrypt"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

func demoAccounts() []Account {
	return []Account{
		{ID: "1", Name: "Sarah Johnson", Email: "admin@company.com", Role: access.RoleAdmin, Password: "password123"},
		{ID: "2", Name: "John Doe", Email: "john.doe@company.com", Role: access.RoleEmployee, Password: "password123"},
		{ID: "3", Name: "Jane Smith", Email: "jane.smith@company.com", Role: access.RoleEmployee, Password: "password123"},
	}
}

func newTestService(t *testing.T, clk Clock) *Service {
	t.Helper()

	creds, err := NewStaticCredentials(demoAccounts(), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewStaticCredentials returned error: %v", err)
	}
	svc, err := NewService(creds, []byte("test-secret"), time.Hour, clk)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Now().UTC()}
	svc := newTestService(t, clk)

	sess, err := svc.Login(context.Background(), LoginInput{Email: " Admin@Company.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.Identity.ID != "1" || sess.Identity.Role != access.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", sess.Identity)
	}
	if !sess.ExpiresAt.Equal(clk.now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", sess.ExpiresAt)
	}

	current, err := svc.CurrentUser(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if current.Email != "admin@company.com" {
		t.Fatalf("unexpected current user: %+v", current)
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	cases := []LoginInput{
		{Email: "admin@company.com", Password: "wrong"},
		{Email: "nobody@company.com", Password: "password123"},
		{Email: "", Password: "password123"},
		{Email: "admin@company.com", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.Login(context.Background(), in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", in, err)
		}
	}
	if svc.ActiveSessions() != 0 {
		t.Fatalf("failed logins must not open sessions")
	}
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	sess, err := svc.Login(context.Background(), LoginInput{Email: "john.doe@company.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("Logout must be unconditional, got %v", err)
	}
}

func TestService_CurrentUser_Expired(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clk)

	sess, err := svc.Login(context.Background(), LoginInput{Email: "jane.smith@company.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	clk.now = clk.now.Add(2 * time.Hour)

	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}
	if svc.ActiveSessions() != 0 {
		t.Fatalf("expired session should be dropped")
	}
}

func TestService_CurrentUser_ForeignSignature(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	other := newTestService(t, nil)
	other.secret = []byte("another-secret")

	sess, err := other.Login(context.Background(), LoginInput{Email: "john.doe@company.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for foreign token, got %v", err)
	}
}

func TestNewService_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil, time.Hour, nil); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
