// File: internal/handler/error.go
package handler

import (
	"errors"
	"net/http"

	"civic-reports/internal/apperr"
	"civic-reports/internal/dto"

	"github.com/labstack/echo/v4"
)

// RespondError 將錯誤分類對應到固定狀態碼
// 未分類錯誤一律回 500 與通用訊息，不外洩內部細節
func RespondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
	case errors.Is(err, apperr.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "unauthorized"})
	case errors.Is(err, apperr.ErrForbidden):
		return c.JSON(http.StatusForbidden, dto.HTTPError{Message: "forbidden"})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "resource not found"})
	case errors.Is(err, apperr.ErrConflict):
		return c.JSON(http.StatusConflict, dto.HTTPError{Message: "resource already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "internal server error"})
	}
}
