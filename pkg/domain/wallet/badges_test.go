package wallet_test

import (
	"testing"
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeBadgeOnFirstCredit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	_, earned, err := a.Credit(10, "Sold Cable", nil, time.Now())
	require.NoError(err)
	assert.Contains(earned, wallet.BadgeWelcome)
	assert.True(a.HasBadge(wallet.BadgeWelcome))
}

func TestEcoHeroAndGreenChampionThresholds(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	now := time.Now()

	_, earned, err := a.Credit(499, "Sold Laptop", nil, now)
	require.NoError(err)
	assert.NotContains(earned, wallet.BadgeEcoHero)

	_, earned, err = a.Credit(1, "Sold Cable", nil, now.Add(time.Minute))
	require.NoError(err)
	assert.Contains(earned, wallet.BadgeEcoHero, "500 earned crosses the Eco Hero threshold")
	assert.NotContains(earned, wallet.BadgeGreenChampion)

	_, earned, err = a.Credit(500, "Sold Laptop", nil, now.Add(2*time.Minute))
	require.NoError(err)
	assert.Contains(earned, wallet.BadgeGreenChampion)
}

func TestBadgesAwardedOnce(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	now := time.Now()
	_, earned, err := a.Credit(600, "Sold Laptop", nil, now)
	require.NoError(err)
	assert.Contains(earned, wallet.BadgeEcoHero)

	_, earned, err = a.Credit(10, "Sold Cable", nil, now.Add(time.Minute))
	require.NoError(err)
	assert.NotContains(earned, wallet.BadgeEcoHero, "already held badges are not re-awarded")

	count := 0
	for _, id := range a.Badges {
		if id == wallet.BadgeEcoHero {
			count++
		}
	}
	assert.Equal(1, count)
}

func TestBadgesSurviveRedemption(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	_, _, err := a.Credit(600, "Sold Laptop", nil, time.Now())
	require.NoError(err)
	require.True(a.HasBadge(wallet.BadgeEcoHero))

	// Spend everything; TotalEarned is untouched, so the badge stays.
	_, err = a.Debit(600, "Redeemed for Gift Card", time.Now())
	require.NoError(err)
	assert.True(a.HasBadge(wallet.BadgeEcoHero))
	assert.True(a.HasBadge(wallet.BadgeWelcome))
}

func TestBulkRecyclerAndHeavyLifter(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	_, earned, err := a.Credit(50, "Sold Battery", &wallet.Metadata{Quantity: 10, Weight: 50}, time.Now())
	require.NoError(err)
	assert.Contains(earned, wallet.BadgeBulkRecycler)
	assert.Contains(earned, wallet.BadgeHeavyLifter)
}

func TestRegularRecyclerFollowsTier(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	a := wallet.NewAccount()
	now := time.Now()
	for i := 0; i < 10; i++ {
		_, _, err := a.Credit(10, "Sold Cable", nil, now.Add(time.Duration(i)*time.Minute))
		require.NoError(err)
	}
	assert.Equal(wallet.TierRegular, a.Tier)
	assert.True(a.HasBadge(wallet.BadgeRegularRecycler))
}

func TestBadgeCatalogMetadata(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for _, b := range wallet.Catalog {
		assert.NotEmpty(b.Name, "badge %s has a name", b.ID)
		assert.NotEmpty(b.Icon, "badge %s has an icon", b.ID)
		assert.NotEmpty(b.Description, "badge %s has a description", b.ID)
	}

	b, ok := wallet.BadgeByID(wallet.BadgeEcoHero)
	assert.True(ok)
	assert.Equal("Eco Hero", b.Name)

	_, ok = wallet.BadgeByID("no-such-badge")
	assert.False(ok)
}
