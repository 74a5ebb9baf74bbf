// File: internal/handler/admin/stats.go
package admin

import (
	"net/http"

	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// StatsHandler 通報彙總統計
// @Summary     Report statistics
// @Tags        admin
// @Produce     json
// @Success     200 {object} repository.ReportStats
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/admin/stats [get]
func StatsHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := svc.AdminStats(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
