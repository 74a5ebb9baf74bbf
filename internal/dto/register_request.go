// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}
