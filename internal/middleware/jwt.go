package middleware // middleware provides reusable HTTP middleware for protected routes

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

// UserResolver maps a verified token subject (email) onto a stored user.
// *repository.UserRepo satisfies it; tests substitute a fake.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// resolves its subject to a persisted user and attaches the user to the
// request context. Every rejection is a plain 401: a failed lookup is
// deliberately indistinguishable from a bad token so the endpoint cannot be
// used to probe which accounts exist.
func JWTAuth(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			u, err := users.GetByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUser, u)
			c.Set(CtxUserID, u.ID)
			c.Set(CtxRole, u.Role)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by JWTAuth, or nil when the route
// is not behind it.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(CtxUser).(*model.User)
	return u
}
