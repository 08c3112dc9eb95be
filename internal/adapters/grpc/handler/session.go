package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoginObserver はログイン試行の結果を記録します。
type LoginObserver interface {
	ObserveLogin(success bool)
}

// SessionGrpcHandler は SessionService の gRPC 実装です。
type SessionGrpcHandler struct {
	svc      session.UseCase
	observer LoginObserver
	onboardingv1.UnimplementedSessionServiceServer
}

// NewSessionGrpcHandler は SessionGrpcHandler を生成します。observer は nil でも構いません。
func NewSessionGrpcHandler(svc session.UseCase, observer LoginObserver) *SessionGrpcHandler {
	return &SessionGrpcHandler{svc: svc, observer: observer}
}

// Login は資格情報を照合してトークンを発行します。
func (h *SessionGrpcHandler) Login(ctx context.Context, req *onboardingv1.LoginRequest) (*onboardingv1.LoginResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	sess, err := h.svc.Login(ctx, session.LoginInput{Email: req.Email, Password: req.Password})
	if h.observer != nil {
		h.observer.ObserveLogin(err == nil)
	}
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.LoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      toProtoUser(&sess.Identity),
	}, nil
}

// Logout は authorization メタデータのセッションを閉じます。トークンが無くても成功します。
func (h *SessionGrpcHandler) Logout(ctx context.Context, req *onboardingv1.LogoutRequest) (*onboardingv1.LogoutResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if token := bearerToken(ctx); token != "" {
		if err := h.svc.Logout(ctx, token); err != nil {
			return nil, toStatusError(err)
		}
	}
	return &onboardingv1.LogoutResponse{}, nil
}

// CurrentUser は現在の利用者を返します。
func (h *SessionGrpcHandler) CurrentUser(ctx context.Context, req *onboardingv1.CurrentUserRequest) (*onboardingv1.CurrentUserResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if identity, ok := IdentityFromContext(ctx); ok {
		return &onboardingv1.CurrentUserResponse{User: toProtoUser(identity)}, nil
	}

	identity, err := h.svc.CurrentUser(ctx, bearerToken(ctx))
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, toStatusError(err)
	}
	return &onboardingv1.CurrentUserResponse{User: toProtoUser(identity)}, nil
}

func toProtoUser(identity *access.Identity) *onboardingv1.User {
	if identity == nil {
		return nil
	}
	return &onboardingv1.User{
		ID:     identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role.String(),
		Avatar: identity.Avatar,
	}
}
