// File: internal/handler/admin/map.go
package admin

import (
	"net/http"

	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// MapHandler 地圖檢視資料，缺座標的通報不會出現
// @Summary     Map view data
// @Tags        admin
// @Produce     json
// @Success     200 {array} service.MapPoint
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/admin/map [get]
func MapHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		points, err := svc.AdminMap(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, points)
	}
}
