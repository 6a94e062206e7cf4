package reporting

import (
	"time"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/reporting"
)

// CreateReportRequest represents a request to file an activity report
type CreateReportRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Body        string    `json:"body" binding:"required,min=1"`
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
}

// UpdateReportRequest represents a request to revise a report
type UpdateReportRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body" binding:"required,min=1"`
}

// ReportListFilter represents filter options for report listings
type ReportListFilter struct {
	Search   string `form:"search"`
	AuthorID string `form:"author_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorID    uuid.UUID `json:"author_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToReportResponse converts a report to its response DTO
func ToReportResponse(report *reporting.Report) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		Title:       report.Title,
		Body:        report.Body,
		AuthorID:    report.AuthorID,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

// ToReportResponses converts a slice of reports
func ToReportResponses(reports []*reporting.Report) []ReportResponse {
	responses := make([]ReportResponse, len(reports))
	for i := range reports {
		responses[i] = ToReportResponse(reports[i])
	}
	return responses
}
