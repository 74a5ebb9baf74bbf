// File: internal/handler/reports/create.go
package reports

import (
	"net/http"
	"strconv"
	"strings"

	"civic-reports/internal/dto"
	"civic-reports/internal/handler"
	"civic-reports/internal/middleware"
	"civic-reports/internal/model"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
)

// CreateHandler 建立通報
// multipart 表單可附多張圖片，JSON 版本僅含欄位不含附件
// @Summary     Submit a report
// @Description 建立通報，multipart 表單的 files[] 為選附圖片，任一上傳失敗即整筆中止
// @Tags        reports
// @Accept      mpfd
// @Accept      json
// @Produce     json
// @Param       title       formData string true  "標題"
// @Param       description formData string true  "描述"
// @Param       category    formData string true  "分類"
// @Param       urgency     formData string true  "緊急程度"
// @Param       lat         formData number true  "緯度"
// @Param       lng         formData number true  "經度"
// @Param       files       formData file   false "附件圖片"
// @Success     201 {object} dto.CreateReportResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /reports [post]
func CreateHandler(svc *service.ReportService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
		}

		contentType := c.Request().Header.Get(echo.HeaderContentType)
		if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
			return createFromMultipart(c, svc, user)
		}
		return createFromJSON(c, svc, user)
	}
}

func createFromJSON(c echo.Context, svc *service.ReportService, user *model.User) error {
	var req dto.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
	}

	id, err := svc.Submit(c.Request().Context(), user, service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Urgency:     req.Urgency,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
	}, nil)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.CreateReportResponse{ID: id, Message: "report submitted successfully"})
}

func createFromMultipart(c echo.Context, svc *service.ReportService, user *model.User) error {
	lat, err := strconv.ParseFloat(c.FormValue("lat"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "lat must be a number"})
	}
	lng, err := strconv.ParseFloat(c.FormValue("lng"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "lng must be a number"})
	}

	var files []service.ImageFile
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["files"] {
			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "unreadable attachment"})
			}
			defer src.Close()
			files = append(files, service.ImageFile{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Body:        src,
			})
		}
	}

	id, err := svc.Submit(c.Request().Context(), user, service.SubmitInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Urgency:     c.FormValue("urgency"),
		Lat:         lat,
		Lng:         lng,
	}, files)
	if err != nil {
		return handler.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.CreateReportResponse{ID: id, Message: "report with image(s) submitted successfully"})
}
