// File: internal/handler/reports/delete.go
package reports

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/middleware"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// DeleteHandler 刪除通報，限擁有者或管理員
// @Summary     Delete a report
// @Tags        reports
// @Produce     json
// @Param       id path string true "通報 id"
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/{id} [delete]
func DeleteHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
		}
		if err := svc.Remove(c.Request().Context(), user, c.Param("id")); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "report deleted successfully"})
	}
}
