// File: internal/handler/auth/admin_data.go
package auth

import (
	"net/http"

	"civic-reports/internal/dto"

	"github.com/labstack/echo/v4"
)

// AdminDataHandler 管理員煙霧測試端點
// @Summary     Admin smoke test
// @Description 驗證管理員權限鏈路是否暢通
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/admin/data [get]
func AdminDataHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "you are an admin"})
	}
}
