// File: internal/handler/reports/detail.go
package reports

import (
	"net/http"

	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// DetailHandler 依 id 查看通報明細，公開端點
// @Summary     Report detail
// @Tags        reports
// @Produce     json
// @Param       id path string true "通報 id"
// @Success     200 {object} model.Report
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /reports/{id} [get]
func DetailHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		report, err := svc.Detail(c.Request().Context(), c.Param("id"))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, report)
	}
}
