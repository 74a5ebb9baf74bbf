// File: internal/handler/admin/filter.go
package admin

import (
	"net/http"

	"civic-reports/internal/handler"
	"civic-reports/internal/repository"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// FilterHandler 依分類、緊急程度、狀態等值過濾，條件彼此 AND
// @Summary     Filter reports
// @Tags        admin
// @Produce     json
// @Param       category query string false "分類"
// @Param       urgency  query string false "緊急程度"
// @Param       status   query string false "狀態"
// @Success     200 {array} model.Report
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/admin/filter [get]
func FilterHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		reports, err := svc.AdminFilter(c.Request().Context(), repository.ReportFilter{
			Category: c.QueryParam("category"),
			Urgency:  c.QueryParam("urgency"),
			Status:   c.QueryParam("status"),
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, reports)
	}
}
