package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kevgathuku/docue/internal/core/domain"
)

const ctxUserKey = "user"

// requireAuth validates the x-access-token header and injects the freshly
// loaded user into context.
func requireAuth(storage *Storage, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("x-access-token")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			userID, err := parseToken(secret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			user, err := storage.GetUser(userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(ctxUserKey, user)
			return next(c)
		}
	}
}

// requireAdmin gates role and user administration on access level 2.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !domain.CanAdminister(ctxUser(c)) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func ctxUser(c echo.Context) domain.User {
	user, _ := c.Get(ctxUserKey).(domain.User)
	return user
}
