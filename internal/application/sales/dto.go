package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/telops/backend/internal/domain/sales"
)

// CreateSaleRequest represents a request to open a draft sale.
// Either an existing client ID or a free-form client name may be given.
type CreateSaleRequest struct {
	ClientID   *uuid.UUID `json:"client_id"`
	ClientName string     `json:"client_name" binding:"max=200"`
}

// AddSaleItemRequest represents a request to add a line item to a draft sale
type AddSaleItemRequest struct {
	ArticleID uuid.UUID `json:"article_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// CancelSaleRequest represents a request to cancel a draft sale
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SaleListFilter represents filter options for sale listings
type SaleListFilter struct {
	Search    string     `form:"search"`
	ClientID  *uuid.UUID `form:"client_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=DRAFT VALIDATED COMPLETED CANCELLED"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleItemResponse represents a line item in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ArticleID   uuid.UUID       `json:"article_id"`
	ArticleName string          `json:"article_name"`
	ArticleCode string          `json:"article_code"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	Reference    string             `json:"reference"`
	ClientID     *uuid.UUID         `json:"client_id,omitempty"`
	ClientName   string             `json:"client_name"`
	Items        []SaleItemResponse `json:"items"`
	ItemCount    int                `json:"item_count"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       string             `json:"status"`
	CreatedBy    *uuid.UUID         `json:"created_by,omitempty"`
	ValidatedBy  *uuid.UUID         `json:"validated_by,omitempty"`
	ValidatedAt  *time.Time         `json:"validated_at,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason string             `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Version      int                `json:"version"`
}

// SaleListItemResponse represents a sale in list responses (less detail)
type SaleListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	ClientName  string          `json:"client_name"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSaleItemResponse converts a line item to its response DTO
func ToSaleItemResponse(item *sales.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:          item.ID,
		ArticleID:   item.ArticleID,
		ArticleName: item.ArticleName,
		ArticleCode: item.ArticleCode,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
	}
}

// ToSaleResponse converts a sale aggregate to its response DTO
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i := range sale.Items {
		items[i] = ToSaleItemResponse(&sale.Items[i])
	}

	return SaleResponse{
		ID:           sale.ID,
		Reference:    sale.Reference,
		ClientID:     sale.ClientID,
		ClientName:   sale.ClientName,
		Items:        items,
		ItemCount:    len(items),
		TotalAmount:  sale.TotalAmount,
		Status:       sale.Status.String(),
		CreatedBy:    sale.CreatedBy,
		ValidatedBy:  sale.ValidatedBy,
		ValidatedAt:  sale.ValidatedAt,
		CompletedAt:  sale.CompletedAt,
		CancelledAt:  sale.CancelledAt,
		CancelReason: sale.CancelReason,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
		Version:      sale.Version,
	}
}

// ToSaleListItemResponses converts sales to their list DTOs
func ToSaleListItemResponses(salesList []sales.Sale) []SaleListItemResponse {
	responses := make([]SaleListItemResponse, len(salesList))
	for i := range salesList {
		s := &salesList[i]
		responses[i] = SaleListItemResponse{
			ID:          s.ID,
			Reference:   s.Reference,
			ClientName:  s.ClientName,
			ItemCount:   len(s.Items),
			TotalAmount: s.TotalAmount,
			Status:      s.Status.String(),
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		}
	}
	return responses
}
