// File: internal/handler/auth/register.go
package auth

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新帳號
// @Summary     Register a new user
// @Description 以 Email 與密碼建立帳號，Email 重複回傳 409
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.RegisterRequest true "註冊資料"
// @Success     201 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     409 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(accounts *service.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		if _, err := accounts.Register(c.Request().Context(), req.Email, req.Password); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "user registered successfully"})
	}
}
