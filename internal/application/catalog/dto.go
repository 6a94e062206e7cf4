package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/telops/backend/internal/domain/catalog"
)

// CreateArticleRequest represents a request to create a catalog article
type CreateArticleRequest struct {
	Code      string          `json:"code" binding:"required,min=1,max=50"`
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Category  string          `json:"category" binding:"required,oneof=SUBSCRIPTION HARDWARE"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	// Stock is nil for articles whose inventory is not tracked
	Stock *int64 `json:"stock"`
}

// UpdateArticleRequest represents a request to update an article
type UpdateArticleRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Active    *bool            `json:"active"`
}

// AdjustStockRequest represents a signed stock adjustment
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// ArticleListFilter represents filter options for article listings
type ArticleListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,oneof=SUBSCRIPTION HARDWARE"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     *int64          `json:"stock,omitempty"`
	Tracked   bool            `json:"tracked"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToArticleResponse converts an article aggregate to its response DTO
func ToArticleResponse(article *catalog.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Code:      article.Code,
		Name:      article.Name,
		Category:  article.Category.String(),
		UnitPrice: article.UnitPrice,
		Stock:     article.Stock,
		Tracked:   article.TracksStock(),
		Active:    article.Active,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
		Version:   article.Version,
	}
}

// ToArticleResponses converts a slice of articles
func ToArticleResponses(articles []catalog.Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = ToArticleResponse(&articles[i])
	}
	return responses
}
