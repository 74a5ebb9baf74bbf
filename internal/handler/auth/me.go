// File: internal/handler/auth/me.go
package auth

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        auth
// @Produce     json
// @Success     200 {object} model.User
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
		}
		return c.JSON(http.StatusOK, user)
	}
}
