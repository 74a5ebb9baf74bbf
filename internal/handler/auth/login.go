// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.LoginRequest true "登入資料"
// @Success     200 {object} dto.LoginResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		token, expiresAt, err := accounts.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   expiresAt,
		})
	}
}
