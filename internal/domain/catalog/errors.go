package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// Error codes raised by the catalog context
const (
	CodeArticleNotFound   = "ARTICLE_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// ErrArticleNotFound is returned when an article is missing or inactive
var ErrArticleNotFound = shared.NewDomainError(CodeArticleNotFound, "Article not found")

// InsufficientStockError reports a failed stock reservation together with
// the quantities involved, so callers can show available vs requested.
type InsufficientStockError struct {
	ArticleID   uuid.UUID
	ArticleCode string
	Available   int64
	Requested   int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for article %s: %d available, %d requested",
		e.ArticleCode, e.Available, e.Requested)
}

// Code returns the stable error code for transport mapping
func (e *InsufficientStockError) Code() string {
	return CodeInsufficientStock
}
