package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
)

// Flag titles double as the deduplication key, so each rule keeps a fixed title.
const (
	titleOffHours  = "Sale created outside business hours"
	titleSpike     = "Unusually high sale amount"
	titleRapidEdit = "Sale edited shortly after creation"
)

// ScanConfig tunes the anomaly rules
type ScanConfig struct {
	// WindowDays bounds how far back the scan looks
	WindowDays int
	// SpikeFloor is the minimum total before the spike and rapid-edit rules apply
	SpikeFloor decimal.Decimal
	// SpikeMultiplier scales the advisor's window average for the spike rule
	SpikeMultiplier decimal.Decimal
	// BusinessHourStart and BusinessHourEnd bound the normal working day (local)
	BusinessHourStart int
	BusinessHourEnd   int
	// RapidEditWindow is how soon after creation an edit is suspicious
	RapidEditWindow time.Duration
}

// DefaultScanConfig returns the standard rule tuning
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		WindowDays:        30,
		SpikeFloor:        decimal.NewFromInt(50000),
		SpikeMultiplier:   decimal.NewFromInt(3),
		BusinessHourStart: 8,
		BusinessHourEnd:   18,
		RapidEditWindow:   2 * time.Minute,
	}
}

// ScanService runs the anomaly heuristics over an advisor's recent sales and
// records advisory flags. The (advisor, sale, title) unique index makes the
// whole scan idempotent: re-running over an unchanged window creates nothing.
type ScanService struct {
	saleRepo sales.SaleRepository
	flagRepo compliance.FlagRepository
	config   ScanConfig
	logger   *zap.Logger
}

// NewScanService creates a new ScanService
func NewScanService(saleRepo sales.SaleRepository, flagRepo compliance.FlagRepository, config ScanConfig, logger *zap.Logger) *ScanService {
	return &ScanService{
		saleRepo: saleRepo,
		flagRepo: flagRepo,
		config:   config,
		logger:   logger,
	}
}

// Scan examines the advisor's sales inside the window and inserts a flag for
// every rule hit. Duplicate flags are silently skipped.
func (s *ScanService) Scan(ctx context.Context, advisorID uuid.UUID) (*ScanResult, error) {
	if advisorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADVISOR", "Advisor is required")
	}

	windowStart := time.Now().AddDate(0, 0, -s.config.WindowDays)
	windowSales, err := s.saleRepo.FindByAdvisorSince(ctx, advisorID, windowStart)
	if err != nil {
		return nil, err
	}

	average := windowAverage(windowSales)

	result := &ScanResult{
		AdvisorID:     advisorID,
		WindowStart:   windowStart,
		SalesExamined: len(windowSales),
	}

	for i := range windowSales {
		sale := &windowSales[i]
		for _, candidate := range s.evaluate(sale, advisorID, average) {
			created, err := s.flagRepo.Insert(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if created {
				result.FlagsCreated++
			}
		}
	}

	s.logger.Info("anomaly scan finished",
		zap.String("advisor_id", advisorID.String()),
		zap.Int("sales_examined", result.SalesExamined),
		zap.Int("flags_created", result.FlagsCreated),
	)

	return result, nil
}

// evaluate applies the three rules to one sale
func (s *ScanService) evaluate(sale *sales.Sale, advisorID uuid.UUID, average decimal.Decimal) []*compliance.SaleFlag {
	var flags []*compliance.SaleFlag

	if flag := s.checkOffHours(sale, advisorID); flag != nil {
		flags = append(flags, flag)
	}
	if flag := s.checkSpike(sale, advisorID, average); flag != nil {
		flags = append(flags, flag)
	}
	if flag := s.checkRapidEdit(sale, advisorID); flag != nil {
		flags = append(flags, flag)
	}

	return flags
}

func (s *ScanService) checkOffHours(sale *sales.Sale, advisorID uuid.UUID) *compliance.SaleFlag {
	hour := sale.CreatedAt.Local().Hour()
	if hour >= s.config.BusinessHourStart && hour < s.config.BusinessHourEnd {
		return nil
	}

	description := fmt.Sprintf("Sale %s was created at %s, outside %02d:00-%02d:00",
		sale.Reference, sale.CreatedAt.Local().Format("15:04"),
		s.config.BusinessHourStart, s.config.BusinessHourEnd)

	flag, err := compliance.NewSaleFlag(sale.ID, advisorID, titleOffHours, description, compliance.SeverityMedium)
	if err != nil {
		return nil
	}
	return flag
}

func (s *ScanService) checkSpike(sale *sales.Sale, advisorID uuid.UUID, average decimal.Decimal) *compliance.SaleFlag {
	if !sale.TotalAmount.GreaterThan(s.config.SpikeFloor) {
		return nil
	}
	threshold := average.Mul(s.config.SpikeMultiplier)
	if !sale.TotalAmount.GreaterThan(threshold) {
		return nil
	}

	description := fmt.Sprintf("Sale %s totals %s against a window average of %s",
		sale.Reference, sale.TotalAmount, average)

	flag, err := compliance.NewSaleFlag(sale.ID, advisorID, titleSpike, description, compliance.SeverityHigh)
	if err != nil {
		return nil
	}
	return flag
}

func (s *ScanService) checkRapidEdit(sale *sales.Sale, advisorID uuid.UUID) *compliance.SaleFlag {
	if !sale.TotalAmount.GreaterThan(s.config.SpikeFloor) {
		return nil
	}
	editDelay := sale.UpdatedAt.Sub(sale.CreatedAt)
	if editDelay <= 0 || editDelay > s.config.RapidEditWindow {
		return nil
	}

	description := fmt.Sprintf("Sale %s was modified %s after creation",
		sale.Reference, editDelay.Round(time.Second))

	flag, err := compliance.NewSaleFlag(sale.ID, advisorID, titleRapidEdit, description, compliance.SeverityLow)
	if err != nil {
		return nil
	}
	return flag
}

// windowAverage is the mean total over the advisor's window sales
func windowAverage(windowSales []sales.Sale) decimal.Decimal {
	if len(windowSales) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for i := range windowSales {
		sum = sum.Add(windowSales[i].TotalAmount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(windowSales))))
}
