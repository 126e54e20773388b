package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	infrarepo "github.com/amirasaad/greenpoints/infra/repository"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestGetHydratesAggregate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	gdb, mock := newMockDB(t)
	repo := infrarepo.NewUserRepository(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "password", "tier", "balance",
			"total_earned", "total_redeemed", "badges", "version",
		}).AddRow(
			id.String(), "Test Recycler", "row@example.com", "hash",
			"Occasional", 120, 140, 20, `["welcome"]`, int64(3),
		))
	mock.ExpectQuery(`SELECT \* FROM "transactions"`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "seq", "points", "kind", "source", "metadata",
		}).
			AddRow(uuid.NewString(), id.String(), 0, 140, "credit", "Sold Laptop", `{"itemType":"Laptop","quantity":1}`).
			AddRow(uuid.NewString(), id.String(), 1, -20, "debit", "Redeemed for Sticker", ""))

	u, err := repo.Get(context.Background(), id)
	require.NoError(err)
	assert.Equal("row@example.com", u.Email)
	assert.Equal(wallet.TierOccasional, u.Account.Tier)
	assert.Equal(120, u.Account.Wallet.Balance)
	assert.Equal(int64(3), u.Version)
	assert.Equal([]wallet.BadgeID{wallet.BadgeWelcome}, u.Account.Badges)

	require.Len(u.Account.Wallet.History, 2)
	require.NotNil(u.Account.Wallet.History[0].Metadata)
	assert.Equal("Laptop", u.Account.Wallet.History[0].Metadata.ItemType)
	assert.Nil(u.Account.Wallet.History[1].Metadata, "debits carry no metadata")

	assert.NoError(mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	require := require.New(t)
	gdb, mock := newMockDB(t)
	repo := infrarepo.NewUserRepository(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	require.ErrorIs(err, repository.ErrNotFound)
	require.NoError(mock.ExpectationsWereMet())
}

func TestSaveBumpsVersion(t *testing.T) {
	require := require.New(t)
	gdb, mock := newMockDB(t)
	repo := infrarepo.NewUserRepository(gdb)

	u, err := user.New("Test Recycler", "save@example.com", "secret1")
	require.NoError(err)
	u.Version = 2

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(repo.Save(context.Background(), u))
	require.Equal(int64(3), u.Version)
	require.NoError(mock.ExpectationsWereMet())
}

func TestSaveConflictOnStaleVersion(t *testing.T) {
	require := require.New(t)
	gdb, mock := newMockDB(t)
	repo := infrarepo.NewUserRepository(gdb)

	u, err := user.New("Test Recycler", "stale@example.com", "secret1")
	require.NoError(err)
	u.Version = 1

	// The CAS update misses, but the row exists: a concurrent writer won.
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs(u.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err = repo.Save(context.Background(), u)
	require.ErrorIs(err, repository.ErrConflict)
	require.Equal(int64(1), u.Version, "a failed save never bumps the version")
	require.NoError(mock.ExpectationsWereMet())
}

func TestSaveMissingRow(t *testing.T) {
	require := require.New(t)
	gdb, mock := newMockDB(t)
	repo := infrarepo.NewUserRepository(gdb)

	u, err := user.New("Test Recycler", "gone@example.com", "secret1")
	require.NoError(err)

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs(u.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err = repo.Save(context.Background(), u)
	require.ErrorIs(err, repository.ErrNotFound)
	require.NoError(mock.ExpectationsWereMet())
}
