package user_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/greenpoints/infra/eventbus"
	"github.com/amirasaad/greenpoints/infra/filestore"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/dto"
	pointssvc "github.com/amirasaad/greenpoints/pkg/service/points"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*usersvc.Service, *pointssvc.Service, *time.Time) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := filestore.New(filepath.Join(t.TempDir(), "users.json"))
	bus := infraeventbus.NewWithMemory(logger)

	clock := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	return usersvc.NewWithClock(store, logger, now),
		pointssvc.NewWithClock(store, bus, logger, now),
		&clock
}

func register(t *testing.T, svc *usersvc.Service, email string) *dto.UserRead {
	t.Helper()
	u, err := svc.Register(context.Background(), dto.UserCreate{
		Name:     "Test Recycler",
		Email:    email,
		Password: "secret1",
		City:     "Portland",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	svc, _, _ := newUserFixture(t)

	u := register(t, svc, "Test@Example.com")
	assert.Equal("test@example.com", u.Email, "email is normalized")
	assert.Equal(wallet.TierFirstTime, u.Tier)
	assert.Zero(u.Balance)
	assert.Equal("Portland", u.City)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newUserFixture(t)

	register(t, svc, "dup@example.com")
	_, err := svc.Register(context.Background(), dto.UserCreate{
		Name:     "Second",
		Email:    "dup@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	svc, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), dto.UserCreate{Name: "", Email: "a@b.co", Password: "secret1"})
	assert.Error(err)
	_, err = svc.Register(context.Background(), dto.UserCreate{Name: "A", Email: "not-an-email", Password: "secret1"})
	assert.Error(err)
	_, err = svc.Register(context.Background(), dto.UserCreate{Name: "A", Email: "a@b.co", Password: "short"})
	assert.Error(err)
}

func TestUpdatePartialProfile(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	svc, _, _ := newUserFixture(t)

	u := register(t, svc, "update@example.com")

	phone := "555-0100"
	updated, err := svc.Update(context.Background(), u.ID, dto.UserUpdate{Phone: &phone})
	require.NoError(err)
	assert.Equal("555-0100", updated.Phone)
	assert.Equal("Test Recycler", updated.Name, "absent fields are untouched")
	assert.Equal("Portland", updated.City)
}

func TestUpdateUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newUserFixture(t)

	name := "Nobody"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UserUpdate{Name: &name})
	assert.Error(t, err)
}

func TestReferralCodeStableAcrossCalls(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	svc, _, _ := newUserFixture(t)

	u := register(t, svc, "ref@example.com")

	first, err := svc.ReferralCode(context.Background(), u.ID)
	require.NoError(err)
	assert.True(strings.HasPrefix(first, "GREEN-"))
	assert.Len(first, len("GREEN-")+8)

	second, err := svc.ReferralCode(context.Background(), u.ID)
	require.NoError(err)
	assert.Equal(first, second)
}

func TestDashboard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	svc, pointsSvc, clock := newUserFixture(t)

	u := register(t, svc, "dash@example.com")
	ctx := context.Background()

	// One credit last month, two credits and one debit this month.
	*clock = time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)
	_, err := pointsSvc.Submit(ctx, u.ID, dto.SubmitEWaste{ItemType: "Cable", Condition: "Dead", Quantity: 1})
	require.NoError(err)

	*clock = time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC)
	_, err = pointsSvc.Submit(ctx, u.ID, dto.SubmitEWaste{ItemType: "Smartphone", Condition: "Working", Quantity: 1})
	require.NoError(err)
	*clock = time.Date(2026, 8, 6, 9, 0, 0, 0, time.UTC)
	_, err = pointsSvc.Submit(ctx, u.ID, dto.SubmitEWaste{ItemType: "Cable", Condition: "Dead", Quantity: 2})
	require.NoError(err)
	*clock = time.Date(2026, 8, 7, 9, 0, 0, 0, time.UTC)
	_, err = pointsSvc.Redeem(ctx, u.ID, dto.Redeem{Points: 20, RedeemFor: "Sticker"})
	require.NoError(err)

	*clock = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	d, err := svc.Dashboard(ctx, u.ID)
	require.NoError(err)

	// Cable Dead x1 = 10, Smartphone Working = 95, Cable Dead x2 = 15.
	assert.Equal(120, d.TotalEarned)
	assert.Equal(20, d.TotalRedeemed)
	assert.Equal(100, d.Balance)
	assert.Equal(110, d.ThisMonthEarned)
	assert.Equal(20, d.ThisMonthRedeemed)
	assert.Equal(4, d.TotalTransactions)
	assert.Equal(4, d.TotalItemsSubmitted)
	assert.Equal(map[string]int{"Cable": 3, "Smartphone": 1}, d.ItemsByType)
	assert.Equal(40, d.AveragePerCredit, "120 earned over 3 credits")
	require.NotEmpty(d.RecentTransactions)
	assert.Equal(wallet.KindDebit, d.RecentTransactions[0].Kind, "newest first")
}

func TestStatsSixMonths(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	svc, pointsSvc, clock := newUserFixture(t)

	u := register(t, svc, "stats@example.com")
	ctx := context.Background()

	*clock = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := pointsSvc.Submit(ctx, u.ID, dto.SubmitEWaste{ItemType: "Cable", Condition: "Dead", Quantity: 1})
	require.NoError(err)
	*clock = time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	_, err = pointsSvc.Submit(ctx, u.ID, dto.SubmitEWaste{ItemType: "Cable", Condition: "Dead", Quantity: 1})
	require.NoError(err)

	*clock = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	stats, err := svc.Stats(ctx, u.ID)
	require.NoError(err)

	require.Len(stats.MonthlyStats, 6)
	assert.Equal("2026-03", stats.MonthlyStats[0].Month)
	assert.Equal("2026-08", stats.MonthlyStats[5].Month)

	byMonth := map[string]int{}
	for _, m := range stats.MonthlyStats {
		byMonth[m.Month] = m.Earned
	}
	assert.Equal(10, byMonth["2026-06"])
	assert.Equal(10, byMonth["2026-08"])
	assert.Zero(byMonth["2026-07"])

	assert.Equal(20, stats.Totals.TotalEarned)
}
