package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
)

const (
	tokenIssuer     = "onboarding-workflow"
	defaultTokenTTL = 12 * time.Hour
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// UseCase はセッションに関するユースケースの公開インターフェースです。
type UseCase interface {
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*access.Identity, error)
}

// LoginInput はログイン時の入力です。
type LoginInput struct {
	Email    string
	Password string
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service は資格情報の照合とセッションの発行・破棄を行います。
type Service struct {
	verifier Verifier
	secret   []byte
	ttl      time.Duration
	clock    Clock
	sessions *store
}

// NewService は Service を生成します。ttl が 0 以下なら 12 時間です。
func NewService(verifier Verifier, secret []byte, ttl time.Duration, clock Clock) (*Service, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Service{
		verifier: verifier,
		secret:   secret,
		ttl:      ttl,
		clock:    clock,
		sessions: newStore(),
	}, nil
}

// Login は資格情報を照合し、成功時にセッションを開きます。
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	identity, err := s.verifier.Verify(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	s.sessions.sweep(now)

	sessionID := uuid.NewString()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		Role: identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   identity.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("session: sign token: %w", err)
	}

	s.sessions.put(sessionID, *identity, expiresAt)

	return &Session{Token: token, Identity: *identity, ExpiresAt: expiresAt}, nil
}

// Logout はセッションを無条件に閉じます。不正なトークンでもエラーにはなりません。
func (s *Service) Logout(_ context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	s.sessions.remove(claims.ID)
	return nil
}

// CurrentUser はトークンに対応する利用者を返します。
func (s *Service) CurrentUser(_ context.Context, token string) (*access.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, ErrNoSession
	}

	now := s.clock.Now()
	if !claims.VerifyExpiresAt(now, true) {
		s.sessions.remove(claims.ID)
		return nil, ErrNoSession
	}

	e, ok := s.sessions.get(claims.ID)
	if !ok {
		return nil, ErrNoSession
	}
	if !now.Before(e.expiresAt) {
		s.sessions.remove(claims.ID)
		return nil, ErrNoSession
	}

	identity := e.identity
	return &identity, nil
}

// ActiveSessions は開いているセッション数を返します。
func (s *Service) ActiveSessions() int {
	return s.sessions.len()
}

func (s *Service) parse(raw string) (*tokenClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims tokenClaims
	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("session: parse token: %w", err)
	}
	if claims.ID == "" {
		return nil, ErrNoSession
	}
	return &claims, nil
}
