package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/telops/backend/internal/domain/shared"
)

// newMockArticleRepository creates a GormArticleRepository over a mocked
// postgres connection. The sqlite helpers cannot cover postgres-only SQL
// like FOR UPDATE and ILIKE, so those paths are asserted here.
func newMockArticleRepository(t *testing.T) (*GormArticleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormArticleRepository(gormDB), mock, mockDB
}

func articleRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"code", "name", "category", "unit_price", "stock", "active",
	}).AddRow(
		id, time.Now(), time.Now(), 1,
		"MOD-4G-01", "4G Modem", "HARDWARE", decimal.NewFromInt(25000), 40, true,
	)
}

func TestGormArticleRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	repo, mock, mockDB := newMockArticleRepository(t)
	defer mockDB.Close()

	articleID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "articles" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(articleID, 1).
		WillReturnRows(articleRows(articleID))

	article, err := repo.FindByIDForUpdate(context.Background(), articleID)

	require.NoError(t, err)
	assert.Equal(t, articleID, article.ID)
	assert.Equal(t, "MOD-4G-01", article.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormArticleRepository_FindByIDForUpdate_NotFound(t *testing.T) {
	repo, mock, mockDB := newMockArticleRepository(t)
	defer mockDB.Close()

	articleID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "articles" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(articleID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDForUpdate(context.Background(), articleID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormArticleRepository_FindAll_SearchUsesILIKE(t *testing.T) {
	repo, mock, mockDB := newMockArticleRepository(t)
	defer mockDB.Close()

	filter := shared.DefaultFilter()
	filter.Search = "modem"

	mock.ExpectQuery(`SELECT \* FROM "articles" WHERE code ILIKE \$1 OR name ILIKE \$2`).
		WithArgs("%modem%", "%modem%", filter.PageSize).
		WillReturnRows(articleRows(uuid.New()))

	articles, err := repo.FindAll(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "4G Modem", articles[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
