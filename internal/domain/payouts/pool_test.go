package payouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementUnits(t *testing.T) {
	e := BookEngagement{Minutes: 40, Completions: 2}
	assert.Equal(t, 40+2*CompletionBonusUnits, e.Units())

	assert.Equal(t, 0, BookEngagement{}.Units())
}

func TestPoolCents(t *testing.T) {
	// 30% of 100.00
	assert.Equal(t, int64(3000), PoolCents(10000, 30))
	assert.Equal(t, int64(0), PoolCents(0, 30))
	assert.Equal(t, int64(0), PoolCents(-500, 30))
	assert.Equal(t, int64(0), PoolCents(10000, 0))
}

func TestDistributePoolProportional(t *testing.T) {
	engagement := []BookEngagement{
		{BookID: 1, AuthorID: 10, Minutes: 75},
		{BookID: 2, AuthorID: 20, Minutes: 25},
	}

	shares := DistributePool(10000, engagement)
	require.Len(t, shares, 2)

	assert.Equal(t, int64(7500), shares[0].AmountCents)
	assert.Equal(t, uint(10), shares[0].AuthorID)
	assert.InDelta(t, 75.0, shares[0].PoolSharePercent, 0.001)

	assert.Equal(t, int64(2500), shares[1].AmountCents)
	assert.Equal(t, uint(20), shares[1].AuthorID)
}

func TestDistributePoolSingleBookTakesAll(t *testing.T) {
	shares := DistributePool(5000, []BookEngagement{
		{BookID: 1, AuthorID: 10, Minutes: 3},
	})

	require.Len(t, shares, 1)
	assert.Equal(t, int64(5000), shares[0].AmountCents)
	assert.InDelta(t, 100.0, shares[0].PoolSharePercent, 0.001)
}

func TestDistributePoolNeverExceedsPool(t *testing.T) {
	// Units that do not divide the pool evenly must floor, not round up.
	engagement := []BookEngagement{
		{BookID: 1, AuthorID: 10, Minutes: 1},
		{BookID: 2, AuthorID: 20, Minutes: 1},
		{BookID: 3, AuthorID: 30, Minutes: 1},
	}

	shares := DistributePool(100, engagement)

	var total int64
	for _, s := range shares {
		total += s.AmountCents
	}
	assert.LessOrEqual(t, total, int64(100))
	assert.Equal(t, int64(33), shares[0].AmountCents)
}

func TestDistributePoolDropsZeroShares(t *testing.T) {
	engagement := []BookEngagement{
		{BookID: 1, AuthorID: 10, Minutes: 10000},
		{BookID: 2, AuthorID: 20, Minutes: 1}, // floors to zero cents
	}

	shares := DistributePool(100, engagement)

	require.Len(t, shares, 1)
	assert.Equal(t, uint(1), shares[0].BookID)
}

func TestDistributePoolEmptyCases(t *testing.T) {
	assert.Nil(t, DistributePool(0, []BookEngagement{{BookID: 1, Minutes: 5}}))
	assert.Nil(t, DistributePool(1000, nil))
	assert.Nil(t, DistributePool(1000, []BookEngagement{{BookID: 1}}))
}

func TestCompletionBonusShiftsSplit(t *testing.T) {
	// Same minutes, but one book was finished twice.
	engagement := []BookEngagement{
		{BookID: 1, AuthorID: 10, Minutes: 45, Completions: 2},
		{BookID: 2, AuthorID: 20, Minutes: 45},
	}

	shares := DistributePool(10000, engagement)
	require.Len(t, shares, 2)
	assert.Greater(t, shares[0].AmountCents, shares[1].AmountCents)
}
