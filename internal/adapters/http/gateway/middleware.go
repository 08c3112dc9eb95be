package gateway

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
)

const (
	tokenCookieName = "jwt"
	identityLocal   = "identity"
)

// requestLogger はエラーハンドラを通した後のステータスを記録します。
func (g *gateway) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		if g.deps.Observer != nil {
			g.deps.Observer.ObserveHTTP(route, status)
		}

		level := slog.LevelDebug
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		g.deps.Logger.LogAttrs(c.UserContext(), level, "http request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(started)),
		)
		return nil
	}
}

// resolveIdentity は jwt Cookie または Authorization ヘッダーから利用者を解決します。
// 無効なトークンは未ログインとして扱います。
func (g *gateway) resolveIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := requestToken(c)
		if token != "" {
			if identity, err := g.deps.Sessions.CurrentUser(c.UserContext(), token); err == nil {
				c.Locals(identityLocal, identity)
			}
		}
		return c.Next()
	}
}

func requestToken(c *fiber.Ctx) string {
	if auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return c.Cookies(tokenCookieName)
}

func currentIdentity(c *fiber.Ctx) *access.Identity {
	identity, _ := c.Locals(identityLocal).(*access.Identity)
	return identity
}

// guardView は画面ルートの判定を行い、許可されない場合は 303 でリダイレクトします。
func (g *gateway) guardView(required access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := access.Authorize(currentIdentity(c), required)
		if !decision.Allowed() {
			return c.Redirect(decision.Redirect, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

func (g *gateway) requireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.AuthorizeAuthenticated(currentIdentity(c)).Allowed() {
			return fiber.NewError(fiber.StatusUnauthorized, "login is required")
		}
		return c.Next()
	}
}

func (g *gateway) requireRole(required access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.Authorize(currentIdentity(c), required).Allowed() {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func (g *gateway) requireActOn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.CanActOn(currentIdentity(c), c.Params("employeeID")) {
			return fiber.NewError(fiber.StatusForbidden, "cannot act on another employee")
		}
		return c.Next()
	}
}
