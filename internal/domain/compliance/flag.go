package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telops/backend/internal/domain/shared"
)

// FlagSeverity grades how suspicious a flagged sale is
type FlagSeverity string

const (
	SeverityLow    FlagSeverity = "LOW"
	SeverityMedium FlagSeverity = "MEDIUM"
	SeverityHigh   FlagSeverity = "HIGH"
)

// IsValid checks if the severity is a known FlagSeverity
func (s FlagSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// FlagStatus represents the review state of a flag
type FlagStatus string

const (
	FlagStatusOpen     FlagStatus = "OPEN"
	FlagStatusReviewed FlagStatus = "REVIEWED"
	FlagStatusResolved FlagStatus = "RESOLVED"
)

// IsValid checks if the status is a known FlagStatus
func (s FlagStatus) IsValid() bool {
	switch s {
	case FlagStatusOpen, FlagStatusReviewed, FlagStatusResolved:
		return true
	}
	return false
}

// SaleFlag is an advisory record produced by the anomaly scan. The
// (advisor, sale, title) triple is unique: re-running the scan over an
// unchanged window never duplicates a flag.
type SaleFlag struct {
	shared.BaseAggregateRoot
	SaleID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_flag_dedup,priority:2"`
	AdvisorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_flag_dedup,priority:1"`
	Title       string    `gorm:"size:200;not null;uniqueIndex:idx_flag_dedup,priority:3"`
	Description string    `gorm:"size:1000"`
	Severity    FlagSeverity `gorm:"size:10;not null"`
	Status      FlagStatus   `gorm:"size:20;not null;index"`
	ReviewedBy  *uuid.UUID   `gorm:"type:uuid"`
	ReviewedAt  *time.Time
}

// NewSaleFlag creates an open advisory flag
func NewSaleFlag(saleID, advisorID uuid.UUID, title, description string, severity FlagSeverity) (*SaleFlag, error) {
	title = strings.TrimSpace(title)
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Flag requires a sale reference")
	}
	if advisorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADVISOR", "Flag requires an advisor reference")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Flag title cannot be empty")
	}
	if !severity.IsValid() {
		return nil, shared.NewDomainError("INVALID_SEVERITY", "Unknown flag severity")
	}

	return &SaleFlag{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            saleID,
		AdvisorID:         advisorID,
		Title:             title,
		Description:       description,
		Severity:          severity,
		Status:            FlagStatusOpen,
	}, nil
}

// Review marks an open flag as reviewed by the given actor
func (f *SaleFlag) Review(reviewerID uuid.UUID) error {
	if f.Status != FlagStatusOpen {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot review flag in %s status", f.Status))
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Reviewer is required")
	}

	now := time.Now()
	f.Status = FlagStatusReviewed
	f.ReviewedBy = &reviewerID
	f.ReviewedAt = &now
	f.UpdatedAt = now
	return nil
}

// Resolve closes a reviewed flag
func (f *SaleFlag) Resolve() error {
	if f.Status != FlagStatusReviewed {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot resolve flag in %s status", f.Status))
	}
	f.Status = FlagStatusResolved
	f.UpdatedAt = time.Now()
	return nil
}
