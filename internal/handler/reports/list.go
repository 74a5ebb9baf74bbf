// File: internal/handler/reports/list.go
package reports

import (
	"net/http"

	"civic-reports/internal/dto"

	"github.com/labstack/echo/v4"
)

// ListHandler 公開列表（目前僅佔位回應）
// @Summary     List reports placeholder
// @Tags        reports
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Router      /reports [get]
func ListHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "reports coming soon"})
	}
}
