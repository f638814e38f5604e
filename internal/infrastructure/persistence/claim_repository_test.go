package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/commerce/backoffice/internal/domain/claim"
	"github.com/commerce/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClaimRepository creates a GormClaimRepository with a mocked SQL connection
func newMockClaimRepository(t *testing.T) (*GormClaimRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormClaimRepository(gormDB), mock, mockDB
}

func claimRows(id uuid.UUID, claimNumber string, status claim.ClaimStatus) *sqlmock.Rows {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"claim_number", "order_id", "seller_id", "claim_type", "status",
		"reason", "quantity", "refund_amount", "requested_at",
		"return_status",
	}).AddRow(
		id, now, now, 1,
		claimNumber, uuid.New(), uuid.New(), claim.TypeReturn, status,
		"damaged", 1, decimal.NewFromInt(10000), now,
		claim.ReturnNotScheduled,
	)
}

func TestGormClaimRepository_FindByID(t *testing.T) {
	t.Run("finds existing claim and rebuilds the return flow", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		claimID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(claimID, 1).
			WillReturnRows(claimRows(claimID, "CLM-2026-00001", claim.StatusRequested))

		c, err := repo.FindByID(context.Background(), claimID)

		require.NoError(t, err)
		assert.Equal(t, claimID, c.ID)
		assert.Equal(t, "CLM-2026-00001", c.ClaimNumber)
		require.NotNil(t, c.ReturnFlow())
		assert.Equal(t, claim.ReturnNotScheduled, c.ReturnFlow().Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing claim", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		claimID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(claimID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByID(context.Background(), claimID)

		assert.Nil(t, c)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClaimRepository_FindByClaimNumber(t *testing.T) {
	repo, mock, mockDB := newMockClaimRepository(t)
	defer mockDB.Close()

	claimID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "claims" WHERE claim_number = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("CLM-2026-00042", 1).
		WillReturnRows(claimRows(claimID, "CLM-2026-00042", claim.StatusApproved))

	c, err := repo.FindByClaimNumber(context.Background(), "CLM-2026-00042")

	require.NoError(t, err)
	assert.Equal(t, claim.StatusApproved, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormClaimRepository_ExistsActiveByOrder(t *testing.T) {
	t.Run("whole-order check counts any active claim", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE order_id = \$1 AND status IN \(\$2,\$3,\$4\)`).
			WithArgs(orderID, claim.StatusRequested, claim.StatusApproved, claim.StatusInProgress).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsActiveByOrder(context.Background(), orderID, nil)

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("item check also matches whole-order claims", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		itemID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE \(order_id = \$1 AND status IN \(\$2,\$3,\$4\)\) AND \(order_item_id IS NULL OR order_item_id = \$5\)`).
			WithArgs(orderID, claim.StatusRequested, claim.StatusApproved, claim.StatusInProgress, itemID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsActiveByOrder(context.Background(), orderID, &itemID)

		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormClaimRepository_Search(t *testing.T) {
	t.Run("over-fetches by one with keyset predicate", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()
		lastID := uuid.New()
		lastCreatedAt := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE seller_id = \$1 AND \(created_at < \$2 OR \(created_at = \$3 AND id < \$4\)\) ORDER BY created_at DESC, id DESC LIMIT \$5`).
			WithArgs(sellerID, lastCreatedAt, lastCreatedAt, lastID, 21).
			WillReturnRows(claimRows(uuid.New(), "CLM-2026-00002", claim.StatusRequested))

		claims, err := repo.Search(context.Background(), claim.SearchCondition{
			SellerID:      &sellerID,
			LastCreatedAt: &lastCreatedAt,
			LastClaimID:   &lastID,
			Size:          20,
		})

		require.NoError(t, err)
		assert.Len(t, claims, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status filter without cursor", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		status := claim.StatusRequested
		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE status = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2`).
			WithArgs(status, 21).
			WillReturnRows(claimRows(uuid.New(), "CLM-2026-00003", status))

		claims, err := repo.Search(context.Background(), claim.SearchCondition{Status: &status})

		require.NoError(t, err)
		assert.Len(t, claims, 1)
	})

	t.Run("type set and keyword filter", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE claim_type IN \(\$1,\$2\) AND \(claim_number ILIKE \$3 OR reason ILIKE \$4\) ORDER BY created_at DESC, id DESC LIMIT \$5`).
			WithArgs(claim.TypeReturn, claim.TypeExchange, "%CLM-2026%", "%CLM-2026%", 21).
			WillReturnRows(claimRows(uuid.New(), "CLM-2026-00004", claim.StatusApproved))

		claims, err := repo.Search(context.Background(), claim.SearchCondition{
			Types:   []claim.ClaimType{claim.TypeReturn, claim.TypeExchange},
			Keyword: "CLM-2026",
		})

		require.NoError(t, err)
		assert.Len(t, claims, 1)
	})
}

func TestGormClaimRepository_FindByStatus(t *testing.T) {
	repo, mock, mockDB := newMockClaimRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "claims" WHERE status = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(claim.StatusRequested).
		WillReturnRows(claimRows(uuid.New(), "CLM-2026-00005", claim.StatusRequested))

	claims, err := repo.FindByStatus(context.Background(), claim.StatusRequested)

	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, claim.StatusRequested, claims[0].Status)
}

func TestGormClaimRepository_SaveWithLock(t *testing.T) {
	makeClaim := func(t *testing.T) *claim.Claim {
		t.Helper()
		now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
		c, err := claim.NewClaim("CLM-2026-00001", uuid.New(), nil, nil, uuid.New(),
			claim.TypeReturn, "damaged", 1, decimal.NewFromInt(10000), false, now)
		require.NoError(t, err)
		return c
	}

	t.Run("updates when versions match", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		c := makeClaim(t)
		require.NoError(t, c.Approve(uuid.New(), time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC)))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "claims" WHERE id = \$1 LIMIT \$2`).
			WithArgs(c.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "claims" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), c)

		require.NoError(t, err)
		assert.Equal(t, 2, c.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict on version mismatch", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		c := makeClaim(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "claims" WHERE id = \$1 LIMIT \$2`).
			WithArgs(c.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(7))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), c)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		// the in-memory version is untouched on conflict
		assert.Equal(t, 1, c.Version)
	})

	t.Run("reports not found when the row is gone", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		c := makeClaim(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "claims" WHERE id = \$1 LIMIT \$2`).
			WithArgs(c.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), c)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("reports a conflict when the row changed mid-update", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		c := makeClaim(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "claims" WHERE id = \$1 LIMIT \$2`).
			WithArgs(c.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "claims" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), c)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormClaimRepository_GenerateClaimNumber(t *testing.T) {
	t.Run("starts from one when the year has no claims", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE claim_number LIKE \$1 ORDER BY claim_number DESC,.* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE claim_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateClaimNumber(context.Background())

		require.NoError(t, err)
		assert.Regexp(t, `^CLM-\d{4}-00001$`, number)
	})

	t.Run("increments past the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockClaimRepository(t)
		defer mockDB.Close()

		year := time.Now().Year()
		last := claimRows(uuid.New(), formatClaimNumber(year, 41), claim.StatusCompleted)
		mock.ExpectQuery(`SELECT \* FROM "claims" WHERE claim_number LIKE \$1 ORDER BY claim_number DESC,.* LIMIT .*`).
			WillReturnRows(last)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE claim_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateClaimNumber(context.Background())

		require.NoError(t, err)
		assert.Equal(t, formatClaimNumber(year, 42), number)
	})
}

func formatClaimNumber(year, n int) string {
	return fmt.Sprintf("CLM-%d-%05d", year, n)
}
