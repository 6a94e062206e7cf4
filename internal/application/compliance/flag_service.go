package compliance

import (
	"context"

	"github.com/google/uuid"

	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/shared"
)

// FlagService handles flag review workflow and listings
type FlagService struct {
	flagRepo compliance.FlagRepository
}

// NewFlagService creates a new FlagService
func NewFlagService(flagRepo compliance.FlagRepository) *FlagService {
	return &FlagService{
		flagRepo: flagRepo,
	}
}

// GetByID retrieves a flag by ID
func (s *FlagService) GetByID(ctx context.Context, flagID uuid.UUID) (*FlagResponse, error) {
	flag, err := s.flagRepo.FindByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	response := ToFlagResponse(flag)
	return &response, nil
}

// ListBySale retrieves all flags raised against one sale
func (s *FlagService) ListBySale(ctx context.Context, saleID uuid.UUID) ([]FlagResponse, error) {
	flags, err := s.flagRepo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return ToFlagResponses(flags), nil
}

// List retrieves flags with filtering and pagination
func (s *FlagService) List(ctx context.Context, filter FlagListFilter) ([]FlagResponse, int64, error) {
	domainFilter := compliance.FlagFilter{
		Filter:    shared.DefaultFilter(),
		Status:    compliance.FlagStatus(filter.Status),
		Severity:  compliance.FlagSeverity(filter.Severity),
		AdvisorID: filter.AdvisorID,
	}
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

	flags, err := s.flagRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.flagRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFlagResponses(flags), total, nil
}

// Review marks an open flag as reviewed by the given actor
func (s *FlagService) Review(ctx context.Context, flagID, reviewerID uuid.UUID) (*FlagResponse, error) {
	flag, err := s.flagRepo.FindByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	if err := flag.Review(reviewerID); err != nil {
		return nil, err
	}

	if err := s.flagRepo.Save(ctx, flag); err != nil {
		return nil, err
	}

	response := ToFlagResponse(flag)
	return &response, nil
}

// Resolve closes a reviewed flag
func (s *FlagService) Resolve(ctx context.Context, flagID uuid.UUID) (*FlagResponse, error) {
	flag, err := s.flagRepo.FindByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	if err := flag.Resolve(); err != nil {
		return nil, err
	}

	if err := s.flagRepo.Save(ctx, flag); err != nil {
		return nil, err
	}

	response := ToFlagResponse(flag)
	return &response, nil
}
