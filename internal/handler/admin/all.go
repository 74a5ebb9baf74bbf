// File: internal/handler/admin/all.go
package admin

import (
	"net/http"

	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// AllHandler 管理端完整通報列表
// @Summary     List all reports
// @Tags        admin
// @Produce     json
// @Success     200 {array} model.Report
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/admin/all [get]
func AllHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		reports, err := svc.AdminAll(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, reports)
	}
}
