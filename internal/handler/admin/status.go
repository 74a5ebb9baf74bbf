// File: internal/handler/admin/status.go
package admin

import (
	"net/http"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// StatusHandler 變更通報狀態
// @Summary     Update report status
// @Description 狀態僅接受 not-started、in-progress、done
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path string                  true "通報 id"
// @Param       body body dto.UpdateStatusRequest true "新狀態"
// @Success     200 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports/admin/{id}/status [patch]
func StatusHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		if err := svc.SetStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "status updated successfully"})
	}
}
