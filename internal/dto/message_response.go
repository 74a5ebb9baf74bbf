// File: internal/dto/message_response.go
package dto

// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
