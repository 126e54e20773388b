package filestore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/greenpoints/infra/filestore"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()
	return filestore.New(filepath.Join(t.TempDir(), "users.json"))
}

func newUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.New("Test Recycler", "store@example.com", "secret1")
	require.NoError(t, err)
	return u
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	u := newUser(t)

	require.NoError(store.Create(ctx, u))

	got, err := store.Get(ctx, u.ID)
	require.NoError(err)
	assert.Equal(u.ID, got.ID)
	assert.Equal(u.Email, got.Email)
	assert.Equal(u.Password, got.Password, "the hash survives the round trip")
	assert.Equal(wallet.TierFirstTime, got.Account.Tier)

	byEmail, err := store.GetByEmail(ctx, "store@example.com")
	require.NoError(err)
	assert.Equal(u.ID, byEmail.ID)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveRoundTripsHistory(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	u := newUser(t)
	require.NoError(store.Create(ctx, u))

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	_, _, err := u.Account.Credit(95, "Sold Smartphone", &wallet.Metadata{
		ItemType: "Smartphone", Condition: "Working", Quantity: 1, Tier: wallet.TierFirstTime,
	}, now)
	require.NoError(err)
	require.NoError(store.Save(ctx, u))
	assert.Equal(int64(1), u.Version, "Save bumps the in-memory version too")

	got, err := store.Get(ctx, u.ID)
	require.NoError(err)
	assert.Equal(95, got.Account.Wallet.Balance)
	require.Len(got.Account.Wallet.History, 1)
	tx := got.Account.Wallet.History[0]
	assert.Equal(95, tx.Points)
	assert.Equal(wallet.KindCredit, tx.Kind)
	assert.True(tx.Timestamp.Equal(now))
	require.NotNil(tx.Metadata)
	assert.Equal("Smartphone", tx.Metadata.ItemType)
}

func TestSaveConflictOnStaleVersion(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	u := newUser(t)
	require.NoError(store.Create(ctx, u))

	// Two snapshots of the same aggregate.
	first, err := store.Get(ctx, u.ID)
	require.NoError(err)
	second, err := store.Get(ctx, u.ID)
	require.NoError(err)

	_, _, err = first.Account.Credit(10, "Sold Cable", nil, time.Now())
	require.NoError(err)
	require.NoError(store.Save(ctx, first))

	_, _, err = second.Account.Credit(20, "Sold Cable", nil, time.Now())
	require.NoError(err)
	err = store.Save(ctx, second)
	assert.ErrorIs(err, repository.ErrConflict)

	// The first write won; the conflicting one left no trace.
	got, err := store.Get(ctx, u.ID)
	require.NoError(err)
	assert.Equal(10, got.Account.Wallet.Balance)
	require.Len(got.Account.Wallet.History, 1)
}

func TestSaveUnknownUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	u := newUser(t)

	err := store.Save(ctx, u)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDoSerializesAndSharesRepository(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	u := newUser(t)

	err := store.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, u); err != nil {
			return err
		}
		_, err = repo.Get(ctx, u.ID)
		return err
	})
	require.NoError(err)
}
