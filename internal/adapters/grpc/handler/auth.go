package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationMetadataKey = "authorization"
	bearerPrefix             = "bearer "
)

// Authenticator はトークンから利用者を解決します。
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*access.Identity, error)
}

type identityContextKey struct{}

// ContextWithIdentity は認証済み利用者をコンテキストに格納します。
func ContextWithIdentity(ctx context.Context, identity *access.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext はコンテキスト上の利用者を返します。
func IdentityFromContext(ctx context.Context) (*access.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(*access.Identity)
	return identity, ok && identity != nil
}

// methodPolicy はメソッドごとの認可条件です。role が 0 の場合はロールを問いません。
type methodPolicy struct {
	public bool
	role   access.Role
}

var methodPolicies = map[string]methodPolicy{
	onboardingv1.SessionService_Login_FullMethodName:       {public: true},
	onboardingv1.SessionService_Logout_FullMethodName:      {public: true},
	onboardingv1.SessionService_CurrentUser_FullMethodName: {},

	onboardingv1.EmployeeService_CreateEmployee_FullMethodName: {role: access.RoleAdmin},
	onboardingv1.EmployeeService_ListEmployees_FullMethodName:  {role: access.RoleAdmin},
	onboardingv1.EmployeeService_AssignTemplate_FullMethodName: {role: access.RoleAdmin},
	onboardingv1.EmployeeService_GetOverview_FullMethodName:    {role: access.RoleAdmin},
	onboardingv1.EmployeeService_GetEmployee_FullMethodName:    {},
	onboardingv1.EmployeeService_UpdateTask_FullMethodName:     {},
	onboardingv1.EmployeeService_AttachDocument_FullMethodName: {},
	onboardingv1.EmployeeService_GetDocument_FullMethodName:    {},
	onboardingv1.EmployeeService_GetTaskSummary_FullMethodName: {},

	onboardingv1.WorkflowTemplateService_CreateTemplate_FullMethodName: {role: access.RoleAdmin},
	onboardingv1.WorkflowTemplateService_UpdateTemplate_FullMethodName: {role: access.RoleAdmin},
	onboardingv1.WorkflowTemplateService_GetTemplate_FullMethodName:    {role: access.RoleAdmin},
	onboardingv1.WorkflowTemplateService_ListTemplates_FullMethodName:  {role: access.RoleAdmin},

	"/grpc.health.v1.Health/Check": {public: true},
	"/grpc.health.v1.Health/Watch": {public: true},
	"/grpc.health.v1.Health/List":  {public: true},
}

// AuthUnaryInterceptor は authorization メタデータのトークンを検証し、メソッドの必要ロールを判定します。
// 登録されていないメソッドは認証済みであることだけを要求します。
func AuthUnaryInterceptor(auth Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		policy := methodPolicies[info.FullMethod]
		if policy.public {
			return handler(ctx, req)
		}

		identity, err := authenticate(ctx, auth)
		if err != nil {
			return nil, err
		}

		var decision access.Decision
		if policy.role.Valid() {
			decision = access.Authorize(identity, policy.role)
		} else {
			decision = access.AuthorizeAuthenticated(identity)
		}
		switch decision.Outcome {
		case access.OutcomeAllow:
			return handler(ContextWithIdentity(ctx, identity), req)
		case access.OutcomeRedirectHome:
			return nil, status.Error(codes.PermissionDenied, fmt.Sprintf("role %s cannot call %s; home is %s", identity.Role, info.FullMethod, decision.Redirect))
		default:
			return nil, status.Error(codes.Unauthenticated, "login is required")
		}
	}
}

func authenticate(ctx context.Context, auth Authenticator) (*access.Identity, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "authorization token is required")
	}
	identity, err := auth.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, toStatusError(err)
	}
	return identity, nil
}

// bearerToken は authorization メタデータからトークンを取り出します。
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, value := range md.Get(authorizationMetadataKey) {
		value = strings.TrimSpace(value)
		if len(value) > len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(value[len(bearerPrefix):])
		}
	}
	return ""
}

// requireActOn は利用者が指定社員のデータを操作できない場合に PermissionDenied を返します。
func requireActOn(ctx context.Context, employeeID string) error {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "login is required")
	}
	if !access.CanActOn(identity, employeeID) {
		return status.Error(codes.PermissionDenied, "cannot act on another employee")
	}
	return nil
}
