// File: internal/dto/update_status_request.go
package dto

// swagger:model dto.UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required" example:"in-progress"`
}
