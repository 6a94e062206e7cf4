package compliance

import (
	"time"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/compliance"
)

// ScanRequest represents a request to run the anomaly scan for one advisor
type ScanRequest struct {
	AdvisorID uuid.UUID `json:"advisor_id" binding:"required"`
}

// ScanResult summarizes one scan run
type ScanResult struct {
	AdvisorID     uuid.UUID `json:"advisor_id"`
	WindowStart   time.Time `json:"window_start"`
	SalesExamined int       `json:"sales_examined"`
	FlagsCreated  int       `json:"flags_created"`
}

// FlagListFilter represents filter options for flag listings
type FlagListFilter struct {
	Status    string     `form:"status" binding:"omitempty,oneof=OPEN REVIEWED RESOLVED"`
	Severity  string     `form:"severity" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AdvisorID *uuid.UUID `form:"advisor_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// FlagResponse represents a flag in API responses
type FlagResponse struct {
	ID          uuid.UUID  `json:"id"`
	SaleID      uuid.UUID  `json:"sale_id"`
	AdvisorID   uuid.UUID  `json:"advisor_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToFlagResponse converts a flag to its response DTO
func ToFlagResponse(flag *compliance.SaleFlag) FlagResponse {
	return FlagResponse{
		ID:          flag.ID,
		SaleID:      flag.SaleID,
		AdvisorID:   flag.AdvisorID,
		Title:       flag.Title,
		Description: flag.Description,
		Severity:    string(flag.Severity),
		Status:      string(flag.Status),
		ReviewedBy:  flag.ReviewedBy,
		ReviewedAt:  flag.ReviewedAt,
		CreatedAt:   flag.CreatedAt,
	}
}

// ToFlagResponses converts a slice of flags
func ToFlagResponses(flags []*compliance.SaleFlag) []FlagResponse {
	responses := make([]FlagResponse, len(flags))
	for i, flag := range flags {
		responses[i] = ToFlagResponse(flag)
	}
	return responses
}
