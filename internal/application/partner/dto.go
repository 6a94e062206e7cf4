package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/partner"
)

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,oneof=RESIDENTIAL PROFESSIONAL"`
	Phone    string `json:"phone" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address" binding:"max=500"`
}

// UpdateClientRequest represents a request to update a client.
// Name changes are rejected once the client is referenced by a sale.
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ClientListFilter represents filter options for client listings
type ClientListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,oneof=RESIDENTIAL PROFESSIONAL"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a client aggregate to its response DTO
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Code:      client.Code,
		Name:      client.Name,
		Category:  client.Category.String(),
		Phone:     client.Phone,
		Email:     client.Email,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientResponses converts a slice of clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}
