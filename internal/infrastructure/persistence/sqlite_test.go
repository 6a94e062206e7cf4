package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/telops/backend/internal/domain/billing"
	"github.com/telops/backend/internal/domain/catalog"
	"github.com/telops/backend/internal/domain/compliance"
	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/domain/partner"
	"github.com/telops/backend/internal/domain/reporting"
	"github.com/telops/backend/internal/domain/sales"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError matches the production setup so unique violations surface
// as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Article{},
		&partner.Client{},
		&sales.Sale{},
		&sales.SaleItem{},
		&billing.Invoice{},
		&compliance.SaleFlag{},
		&identity.User{},
		&reporting.Report{},
	)
	require.NoError(t, err)

	return db
}
