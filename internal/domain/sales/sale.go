package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/shared"
	"github.com/telops/backend/internal/domain/shared/valueobject"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusValidated SaleStatus = "VALIDATED"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusValidated, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusDraft:
		return target == SaleStatusValidated || target == SaleStatusCancelled
	case SaleStatusValidated:
		return target == SaleStatusCompleted
	case SaleStatusCompleted, SaleStatusCancelled:
		return false // Terminal states
	}
	return false
}

// SaleItem represents a line item in a sale. The article name, code and unit
// price are snapshotted at add time and never follow later catalog changes.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ArticleID   uuid.UUID `gorm:"type:uuid;not null"`
	ArticleName string    `gorm:"size:200;not null"`
	ArticleCode string    `gorm:"size:50;not null"`
	Quantity    int64     `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt   time.Time
}

// NewSaleItem creates a line item with a snapshotted unit price.
// TotalPrice is always Quantity x UnitPrice.
func NewSaleItem(saleID uuid.UUID, article *catalog.Article, quantity int64) (*SaleItem, error) {
	if article == nil {
		return nil, catalog.ErrArticleNotFound
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	unitPrice := article.UnitPrice
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ArticleID:   article.ID,
		ArticleName: article.Name,
		ArticleCode: article.Code,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// GetUnitPriceMoney returns the snapshotted unit price as Money
func (i *SaleItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyXOF(i.UnitPrice)
}

// GetTotalPriceMoney returns the line total as Money
func (i *SaleItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyXOF(i.TotalPrice)
}

// Sale is the aggregate root of the sale lifecycle engine.
// It owns its line items; they are created and removed only through the
// aggregate while the sale is in DRAFT.
type Sale struct {
	shared.AuditedAggregateRoot
	Reference    string     `gorm:"uniqueIndex;size:50;not null"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	ClientName   string     `gorm:"size:200"`
	Items        []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status       SaleStatus `gorm:"size:20;not null;index"`
	ValidatedBy  *uuid.UUID `gorm:"type:uuid"`
	ValidatedAt  *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"size:500"`
}

// NewSale creates a sale in DRAFT state. clientID may be nil; the client name
// snapshot is kept on the sale either way.
func NewSale(reference string, clientID *uuid.UUID, clientName string, createdBy uuid.UUID) (*Sale, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Sale reference cannot be empty")
	}
	if len(reference) > 50 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Sale reference cannot exceed 50 characters")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Sale creator is required")
	}

	sale := &Sale{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Reference:            reference,
		ClientID:             clientID,
		ClientName:           strings.TrimSpace(clientName),
		Items:                make([]SaleItem, 0),
		TotalAmount:          decimal.Zero,
		Status:               SaleStatusDraft,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddItem attaches a line item priced against the article's current price and
// reserves tracked stock on the article. The caller persists both the sale and
// the mutated article in one transaction.
func (s *Sale) AddItem(article *catalog.Article, quantity int64) (*SaleItem, error) {
	if s.Status != SaleStatusDraft {
		return nil, shared.NewDomainError(shared.CodeSaleNotEditable,
			fmt.Sprintf("Cannot add items to a %s sale", s.Status))
	}

	item, err := NewSaleItem(s.ID, article, quantity)
	if err != nil {
		return nil, err
	}

	if err := article.ReserveStock(quantity); err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recomputeTotal()
	s.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem detaches a line item and returns it so the caller can restore the
// reserved stock on the article within the same transaction.
func (s *Sale) RemoveItem(itemID uuid.UUID) (*SaleItem, error) {
	if s.Status != SaleStatusDraft {
		return nil, shared.NewDomainError(shared.CodeSaleNotEditable,
			fmt.Sprintf("Cannot remove items from a %s sale", s.Status))
	}

	for idx, item := range s.Items {
		if item.ID == itemID {
			removed := item
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.recomputeTotal()
			s.UpdatedAt = time.Now()
			return &removed, nil
		}
	}

	return nil, shared.NewDomainError(shared.CodeItemNotFound, "Sale item not found")
}

// Validate transitions the sale from DRAFT to VALIDATED, stamping the
// validating actor and timestamp. Requires at least one item.
func (s *Sale) Validate(actorID uuid.UUID) error {
	if !s.Status.CanTransitionTo(SaleStatusValidated) {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot validate sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot validate a sale without items")
	}
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Validating actor is required")
	}

	now := time.Now()
	s.Status = SaleStatusValidated
	s.ValidatedBy = &actorID
	s.ValidatedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleValidatedEvent(s, actorID))

	return nil
}

// Complete transitions the sale from VALIDATED to COMPLETED
func (s *Sale) Complete() error {
	if !s.Status.CanTransitionTo(SaleStatusCompleted) {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot complete sale in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleCompletedEvent(s))

	return nil
}

// Cancel transitions the sale from DRAFT to CANCELLED. The caller restores
// reserved stock for every tracked item in the same transaction.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	s.Status = SaleStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// recomputeTotal re-derives the sale total from the full item set.
// Totals are never patched incrementally, so the amount invariant cannot drift.
func (s *Sale) recomputeTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.TotalPrice)
	}
	s.TotalAmount = total
}

// CheckTotalInvariant verifies total == sum of item totals. A mismatch means
// a bug in the engine or an out-of-band write and is treated as fatal.
func (s *Sale) CheckTotalInvariant() error {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.TotalPrice)
	}
	if !s.TotalAmount.Equal(sum) {
		return shared.NewDomainError(shared.CodeInvariantViolation,
			fmt.Sprintf("Sale %s total %s does not match item sum %s", s.Reference, s.TotalAmount, sum))
	}
	return nil
}

// GetTotalAmountMoney returns the sale total as Money
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyXOF(s.TotalAmount)
}

// GetItem returns an item by its ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of items in the sale
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// IsDraft returns true if the sale is in draft status
func (s *Sale) IsDraft() bool {
	return s.Status == SaleStatusDraft
}

// IsValidated returns true if the sale is validated
func (s *Sale) IsValidated() bool {
	return s.Status == SaleStatusValidated
}

// IsCompleted returns true if the sale is completed
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// IsCancelled returns true if the sale is cancelled
func (s *Sale) IsCancelled() bool {
	return s.Status == SaleStatusCancelled
}

// IsTerminal returns true if the sale reached a terminal state
func (s *Sale) IsTerminal() bool {
	return s.IsCompleted() || s.IsCancelled()
}

// CanModify returns true if line items may be added or removed
func (s *Sale) CanModify() bool {
	return s.IsDraft()
}
