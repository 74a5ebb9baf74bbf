// File: internal/middleware/middleware.go
package middleware

import (
	"net/http"
	"strings"

	"civic-reports/internal/model"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return parts[1], nil
}

// RequireAuth 解析 bearer token 並載入完整使用者放入 context
func RequireAuth(ident *service.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				return err
			}
			user, err := ident.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之後檢查使用者紀錄的管理員旗標
func RequireAdmin(ident *service.Identity) echo.MiddlewareFunc {
	auth := RequireAuth(ident)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			user := c.Get(ContextUserKey).(*model.User)
			if _, err := service.RequireAdmin(user); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}

// CurrentUser 取出 RequireAuth 放入 context 的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
