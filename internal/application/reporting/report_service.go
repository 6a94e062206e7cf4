package reporting

import (
	"context"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/reporting"
	"github.com/telops/backend/internal/domain/shared"
)

// ReportService handles activity report operations
type ReportService struct {
	reportRepo reporting.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo reporting.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Create files a new activity report authored by the given user
func (s *ReportService) Create(ctx context.Context, authorID uuid.UUID, req CreateReportRequest) (*ReportResponse, error) {
	report, err := reporting.NewReport(req.Title, req.Body, authorID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	response := ToReportResponse(report)
	return &response, nil
}

// GetByID retrieves a report by ID
func (s *ReportService) GetByID(ctx context.Context, reportID uuid.UUID) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	response := ToReportResponse(report)
	return &response, nil
}

// List retrieves reports with filtering and pagination
func (s *ReportService) List(ctx context.Context, filter ReportListFilter) ([]ReportResponse, int64, error) {
	domainFilter := reporting.ReportFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.AuthorID != "" {
		authorID, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			return nil, 0, shared.NewDomainError(shared.CodeInvalidInput, "Invalid author id")
		}
		domainFilter.AuthorID = &authorID
	}

	reports, err := s.reportRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reportRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReportResponses(reports), total, nil
}

// Update revises a report. Only the author may edit their own report.
func (s *ReportService) Update(ctx context.Context, reportID, actorID uuid.UUID, req UpdateReportRequest) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if report.AuthorID != actorID {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Only the author may edit a report")
	}

	if err := report.Update(req.Title, req.Body); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	response := ToReportResponse(report)
	return &response, nil
}

// Delete removes a report. Only the author may delete their own report.
func (s *ReportService) Delete(ctx context.Context, reportID, actorID uuid.UUID) error {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return err
	}

	if report.AuthorID != actorID {
		return shared.NewDomainError(shared.CodeForbidden, "Only the author may delete a report")
	}

	return s.reportRepo.Delete(ctx, reportID)
}
