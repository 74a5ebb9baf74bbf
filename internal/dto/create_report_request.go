// File: internal/dto/create_report_request.go
package dto

// CreateReportRequest JSON 版本的通報建立請求（不含附件）
// multipart 版本由 handler 直接讀取 form 欄位與檔案
// swagger:model dto.CreateReportRequest
type CreateReportRequest struct {
	Title       string   `json:"title" validate:"required" example:"Broken Streetlight"`
	Description string   `json:"description" validate:"required" example:"The streetlight near the main gate is not working."`
	Category    string   `json:"category" validate:"required" example:"Infrastructure"`
	Urgency     string   `json:"urgency" validate:"required" example:"High"`
	Lat         *float64 `json:"lat" validate:"required" example:"37.5665"`
	Lng         *float64 `json:"lng" validate:"required" example:"126.9780"`
}
