package compliance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/sales"
	"github.com/telops/backend/internal/domain/shared"
)

// MockSaleReader mocks the sale repository for scan tests
type MockSaleReader struct {
	mock.Mock
}

func (m *MockSaleReader) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleReader) FindByReference(ctx context.Context, reference string) (*sales.Sale, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleReader) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleReader) FindByAdvisorSince(ctx context.Context, advisorID uuid.UUID, since time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, advisorID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleReader) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleReader) CountByStatus(ctx context.Context, status sales.SaleStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleReader) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleReader) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleReader) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleReader) NextReference(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

// memoryFlagRepo is an in-memory FlagRepository with real dedup semantics,
// mirroring the (advisor, sale, title) unique index.
type memoryFlagRepo struct {
	flags map[string]*compliance.SaleFlag
}

func newMemoryFlagRepo() *memoryFlagRepo {
	return &memoryFlagRepo{flags: make(map[string]*compliance.SaleFlag)}
}

func dedupKey(flag *compliance.SaleFlag) string {
	return fmt.Sprintf("%s|%s|%s", flag.AdvisorID, flag.SaleID, flag.Title)
}

func (r *memoryFlagRepo) Insert(ctx context.Context, flag *compliance.SaleFlag) (bool, error) {
	key := dedupKey(flag)
	if _, exists := r.flags[key]; exists {
		return false, nil
	}
	r.flags[key] = flag
	return true, nil
}

func (r *memoryFlagRepo) FindByID(ctx context.Context, id uuid.UUID) (*compliance.SaleFlag, error) {
	for _, flag := range r.flags {
		if flag.ID == id {
			return flag, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryFlagRepo) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*compliance.SaleFlag, error) {
	var out []*compliance.SaleFlag
	for _, flag := range r.flags {
		if flag.SaleID == saleID {
			out = append(out, flag)
		}
	}
	return out, nil
}

func (r *memoryFlagRepo) FindAll(ctx context.Context, filter compliance.FlagFilter) ([]*compliance.SaleFlag, error) {
	var out []*compliance.SaleFlag
	for _, flag := range r.flags {
		out = append(out, flag)
	}
	return out, nil
}

func (r *memoryFlagRepo) Count(ctx context.Context, filter compliance.FlagFilter) (int64, error) {
	return int64(len(r.flags)), nil
}

func (r *memoryFlagRepo) Save(ctx context.Context, flag *compliance.SaleFlag) error {
	r.flags[dedupKey(flag)] = flag
	return nil
}

func (r *memoryFlagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for key, flag := range r.flags {
		if flag.ID == id {
			delete(r.flags, key)
			return nil
		}
	}
	return shared.ErrNotFound
}

func newScanSale(t *testing.T, reference string, advisorID uuid.UUID, total int64, createdAt time.Time) sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(reference, nil, "Client", advisorID)
	require.NoError(t, err)
	sale.TotalAmount = decimal.NewFromInt(total)
	sale.CreatedAt = createdAt
	sale.UpdatedAt = createdAt
	sale.ClearDomainEvents()
	return *sale
}

func businessHour(t *testing.T) time.Time {
	t.Helper()
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.Local).AddDate(0, 0, -1)
}

func TestScanService_OffHoursRule(t *testing.T) {
	advisorID := uuid.New()
	saleRepo := new(MockSaleReader)
	flagRepo := newMemoryFlagRepo()
	service := NewScanService(saleRepo, flagRepo, DefaultScanConfig(), zap.NewNop())

	lateNight := businessHour(t).Add(12 * time.Hour) // 22:00 local
	windowSales := []sales.Sale{
		newScanSale(t, "SAL-2025-00001", advisorID, 1000, lateNight),
	}
	saleRepo.On("FindByAdvisorSince", mock.Anything, advisorID, mock.Anything).Return(windowSales, nil)

	result, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SalesExamined)
	assert.Equal(t, 1, result.FlagsCreated)

	flags, err := flagRepo.FindBySaleID(context.Background(), windowSales[0].ID)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "Sale created outside business hours", flags[0].Title)
	assert.Equal(t, compliance.SeverityMedium, flags[0].Severity)
}

func TestScanService_SpikeRule(t *testing.T) {
	advisorID := uuid.New()
	saleRepo := new(MockSaleReader)
	flagRepo := newMemoryFlagRepo()
	service := NewScanService(saleRepo, flagRepo, DefaultScanConfig(), zap.NewNop())

	created := businessHour(t)
	windowSales := []sales.Sale{
		newScanSale(t, "SAL-2025-00001", advisorID, 1000, created),
		newScanSale(t, "SAL-2025-00002", advisorID, 1000, created),
		newScanSale(t, "SAL-2025-00003", advisorID, 1000, created),
		// 300000 > 3x the window average (75750) and above the 50000 floor
		newScanSale(t, "SAL-2025-00004", advisorID, 300000, created),
	}
	saleRepo.On("FindByAdvisorSince", mock.Anything, advisorID, mock.Anything).Return(windowSales, nil)

	result, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)

	assert.Equal(t, 4, result.SalesExamined)
	assert.Equal(t, 1, result.FlagsCreated)

	flags, err := flagRepo.FindBySaleID(context.Background(), windowSales[3].ID)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "Unusually high sale amount", flags[0].Title)
	assert.Equal(t, compliance.SeverityHigh, flags[0].Severity)
}

func TestScanService_SpikeRule_FloorGuardsSmallBooks(t *testing.T) {
	advisorID := uuid.New()
	saleRepo := new(MockSaleReader)
	flagRepo := newMemoryFlagRepo()
	service := NewScanService(saleRepo, flagRepo, DefaultScanConfig(), zap.NewNop())

	created := businessHour(t)
	// 40000 is far above the average but below the absolute floor
	windowSales := []sales.Sale{
		newScanSale(t, "SAL-2025-00001", advisorID, 100, created),
		newScanSale(t, "SAL-2025-00002", advisorID, 100, created),
		newScanSale(t, "SAL-2025-00003", advisorID, 100, created),
		newScanSale(t, "SAL-2025-00004", advisorID, 40000, created),
	}
	saleRepo.On("FindByAdvisorSince", mock.Anything, advisorID, mock.Anything).Return(windowSales, nil)

	result, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)
	assert.Zero(t, result.FlagsCreated)
}

func TestScanService_RapidEditRule(t *testing.T) {
	advisorID := uuid.New()
	saleRepo := new(MockSaleReader)
	flagRepo := newMemoryFlagRepo()
	service := NewScanService(saleRepo, flagRepo, DefaultScanConfig(), zap.NewNop())

	created := businessHour(t)
	edited := newScanSale(t, "SAL-2025-00001", advisorID, 60000, created)
	edited.UpdatedAt = created.Add(90 * time.Second)

	untouched := newScanSale(t, "SAL-2025-00002", advisorID, 60000, created)

	slowEdit := newScanSale(t, "SAL-2025-00003", advisorID, 60000, created)
	slowEdit.UpdatedAt = created.Add(time.Hour)

	saleRepo.On("FindByAdvisorSince", mock.Anything, advisorID, mock.Anything).
		Return([]sales.Sale{edited, untouched, slowEdit}, nil)

	result, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FlagsCreated)

	flags, err := flagRepo.FindBySaleID(context.Background(), edited.ID)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "Sale edited shortly after creation", flags[0].Title)
	assert.Equal(t, compliance.SeverityLow, flags[0].Severity)
}

func TestScanService_RescanIsIdempotent(t *testing.T) {
	advisorID := uuid.New()
	saleRepo := new(MockSaleReader)
	flagRepo := newMemoryFlagRepo()
	service := NewScanService(saleRepo, flagRepo, DefaultScanConfig(), zap.NewNop())

	lateNight := businessHour(t).Add(12 * time.Hour)
	windowSales := []sales.Sale{
		newScanSale(t, "SAL-2025-00001", advisorID, 1000, lateNight),
		newScanSale(t, "SAL-2025-00002", advisorID, 2000, lateNight),
	}
	saleRepo.On("FindByAdvisorSince", mock.Anything, advisorID, mock.Anything).Return(windowSales, nil)

	first, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)
	assert.Equal(t, 2, first.FlagsCreated)

	second, err := service.Scan(context.Background(), advisorID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SalesExamined)
	assert.Zero(t, second.FlagsCreated)
}

func TestFlagService_ReviewWorkflow(t *testing.T) {
	flagRepo := newMemoryFlagRepo()
	service := NewFlagService(flagRepo)

	flag, err := compliance.NewSaleFlag(uuid.New(), uuid.New(), "Unusually high sale amount", "", compliance.SeverityHigh)
	require.NoError(t, err)
	_, err = flagRepo.Insert(context.Background(), flag)
	require.NoError(t, err)

	reviewer := uuid.New()
	reviewed, err := service.Review(context.Background(), flag.ID, reviewer)
	require.NoError(t, err)
	assert.Equal(t, "REVIEWED", reviewed.Status)

	resolved, err := service.Resolve(context.Background(), flag.ID)
	require.NoError(t, err)
	assert.Equal(t, "RESOLVED", resolved.Status)

	// Resolving twice is illegal
	_, err = service.Resolve(context.Background(), flag.ID)
	require.Error(t, err)
}
