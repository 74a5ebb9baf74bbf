// File: internal/dto/create_report_response.go
package dto

// swagger:model dto.CreateReportResponse
type CreateReportResponse struct {
	ID      string `json:"id" example:"9f1b2c3d-..."`
	Message string `json:"message" example:"report submitted successfully"`
}
