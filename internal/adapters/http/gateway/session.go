package gateway

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userView  `json:"user"`
	Redirect  string    `json:"redirect"`
}

func (g *gateway) loginView(c *fiber.Ctx) error {
	if identity := currentIdentity(c); identity != nil {
		return c.Redirect(access.HomePath(identity.Role), fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"view": "login"})
}

func (g *gateway) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := g.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	sess, err := g.deps.Sessions.Login(c.UserContext(), session.LoginInput{Email: req.Email, Password: req.Password})
	if g.deps.Observer != nil {
		g.deps.Observer.ObserveLogin(err == nil)
	}
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   g.deps.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      toUserView(&sess.Identity),
		Redirect:  access.HomePath(sess.Identity.Role),
	})
}

// logout はセッションの有無に関わらず Cookie を消去します。
func (g *gateway) logout(c *fiber.Ctx) error {
	if token := requestToken(c); token != "" {
		if err := g.deps.Sessions.Logout(c.UserContext(), token); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   g.deps.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"redirect": access.LoginPath})
}

func (g *gateway) me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": toUserView(currentIdentity(c))})
}
