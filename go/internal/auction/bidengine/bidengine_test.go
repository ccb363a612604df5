package bidengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestIncrementTiers(t *testing.T) {
	l := DefaultLadder()

	assert.Equal(t, int64(10), l.Increment(0))
	assert.Equal(t, int64(10), l.Increment(50))
	assert.Equal(t, int64(10), l.Increment(99))
	assert.Equal(t, int64(25), l.Increment(100))
	assert.Equal(t, int64(25), l.Increment(1499))
	assert.Equal(t, int64(50), l.Increment(1500))
	assert.Equal(t, int64(50), l.Increment(9000))
}

func TestNextAutoBid(t *testing.T) {
	l := DefaultLadder()

	// No bid yet: opening bid is the base price.
	assert.Equal(t, int64(50), l.NextAutoBid(nil, 50))

	// Bid at 50 with base 50: 50 < 100 so increment is 10.
	assert.Equal(t, int64(60), l.NextAutoBid(int64Ptr(50), 50))

	// Tier boundaries use the pre-increment price.
	assert.Equal(t, int64(100), l.NextAutoBid(int64Ptr(90), 50))
	assert.Equal(t, int64(125), l.NextAutoBid(int64Ptr(100), 50))
	assert.Equal(t, int64(1550), l.NextAutoBid(int64Ptr(1500), 50))

	// Host decremented below the base: snap back to base.
	assert.Equal(t, int64(200), l.NextAutoBid(int64Ptr(120), 200))
}

func TestNextAutoBidMonotone(t *testing.T) {
	l := DefaultLadder()
	for price := int64(1); price < 3000; price += 7 {
		next := l.NextAutoBid(&price, 1)
		require.Greater(t, next, price, "next bid must exceed current price %d", price)
	}
}

func TestDecreaseBid(t *testing.T) {
	l := DefaultLadder()

	assert.Equal(t, int64(50), l.DecreaseBid(nil, 50))
	assert.Equal(t, int64(50), l.DecreaseBid(int64Ptr(50), 50))
	assert.Equal(t, int64(50), l.DecreaseBid(int64Ptr(60), 50))
	assert.Equal(t, int64(175), l.DecreaseBid(int64Ptr(200), 50))

	// Never drops below the floor even when the step overshoots.
	assert.Equal(t, int64(95), l.DecreaseBid(int64Ptr(100), 95))
}

func TestApplyJumpBid(t *testing.T) {
	got, err := ApplyJumpBid(500, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	// Whole purse is allowed.
	got, err = ApplyJumpBid(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got)

	_, err = ApplyJumpBid(1001, 1000)
	assert.ErrorIs(t, err, ErrJumpBidRejected)

	_, err = ApplyJumpBid(0, 1000)
	assert.ErrorIs(t, err, ErrJumpBidRejected)

	_, err = ApplyJumpBid(-5, 1000)
	assert.ErrorIs(t, err, ErrJumpBidRejected)
}

func TestLadderValidate(t *testing.T) {
	require.NoError(t, DefaultLadder().Validate())

	bad := Ladder{Tiers: []Tier{{Below: 100, Step: 0}}, FinalStep: 50}
	assert.Error(t, bad.Validate())

	bad = Ladder{Tiers: []Tier{{Below: 100, Step: 10}, {Below: 100, Step: 25}}, FinalStep: 50}
	assert.Error(t, bad.Validate())

	bad = Ladder{FinalStep: 0}
	assert.Error(t, bad.Validate())
}
