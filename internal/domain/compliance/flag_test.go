package compliance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telops/backend/internal/domain/shared"
)

func TestNewSaleFlag(t *testing.T) {
	saleID := uuid.New()
	advisorID := uuid.New()

	t.Run("valid flag", func(t *testing.T) {
		flag, err := NewSaleFlag(saleID, advisorID, "Amount above threshold", "Sale total is 120000.00", SeverityMedium)
		require.NoError(t, err)
		assert.Equal(t, FlagStatusOpen, flag.Status)
		assert.Equal(t, SeverityMedium, flag.Severity)
		assert.Equal(t, saleID, flag.SaleID)
		assert.Equal(t, advisorID, flag.AdvisorID)
		assert.Nil(t, flag.ReviewedBy)
	})

	t.Run("missing sale", func(t *testing.T) {
		_, err := NewSaleFlag(uuid.Nil, advisorID, "Amount above threshold", "", SeverityLow)
		assert.Error(t, err)
	})

	t.Run("missing advisor", func(t *testing.T) {
		_, err := NewSaleFlag(saleID, uuid.Nil, "Amount above threshold", "", SeverityLow)
		assert.Error(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewSaleFlag(saleID, advisorID, "   ", "", SeverityLow)
		assert.Error(t, err)
	})

	t.Run("unknown severity", func(t *testing.T) {
		_, err := NewSaleFlag(saleID, advisorID, "Amount above threshold", "", FlagSeverity("URGENT"))
		assert.Error(t, err)
	})
}

func TestSaleFlag_ReviewAndResolve(t *testing.T) {
	newFlag := func(t *testing.T) *SaleFlag {
		flag, err := NewSaleFlag(uuid.New(), uuid.New(), "Repeated client activity", "", SeverityHigh)
		require.NoError(t, err)
		return flag
	}

	t.Run("review open flag", func(t *testing.T) {
		flag := newFlag(t)
		reviewer := uuid.New()

		err := flag.Review(reviewer)
		require.NoError(t, err)
		assert.Equal(t, FlagStatusReviewed, flag.Status)
		require.NotNil(t, flag.ReviewedBy)
		assert.Equal(t, reviewer, *flag.ReviewedBy)
		assert.NotNil(t, flag.ReviewedAt)
	})

	t.Run("review requires actor", func(t *testing.T) {
		flag := newFlag(t)
		err := flag.Review(uuid.Nil)
		assert.Error(t, err)
		assert.Equal(t, FlagStatusOpen, flag.Status)
	})

	t.Run("double review rejected", func(t *testing.T) {
		flag := newFlag(t)
		require.NoError(t, flag.Review(uuid.New()))

		err := flag.Review(uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainErr.Code)
	})

	t.Run("resolve reviewed flag", func(t *testing.T) {
		flag := newFlag(t)
		require.NoError(t, flag.Review(uuid.New()))
		require.NoError(t, flag.Resolve())
		assert.Equal(t, FlagStatusResolved, flag.Status)
	})

	t.Run("resolve open flag rejected", func(t *testing.T) {
		flag := newFlag(t)
		err := flag.Resolve()
		assert.Error(t, err)
		assert.Equal(t, FlagStatusOpen, flag.Status)
	})
}
