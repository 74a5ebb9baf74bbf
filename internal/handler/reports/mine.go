// File: internal/handler/reports/mine.go
package reports

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/middleware"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// MineHandler 取得呼叫者自己的通報
// @Summary     My reports
// @Tags        reports
// @Produce     json
// @Success     200 {array} model.Report
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/mine [get]
func MineHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
		}
		reports, err := svc.Mine(c.Request().Context(), user)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, reports)
	}
}
