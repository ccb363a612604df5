package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

func newTeam(purse int64) *models.Team {
	return &models.Team{Name: "Strikers", Theme: "#F7E03C", Purse: purse}
}

func TestDebitAndRefundRoundTrip(t *testing.T) {
	team := newTeam(12000)
	playerID := uuid.New()

	rec := models.PurchaseRecord{PlayerID: playerID, PlayerName: "R Sharma", Price: 60, Country: "India"}
	require.NoError(t, Debit(team, rec))

	assert.Equal(t, int64(11940), team.Purse)
	require.Len(t, team.History, 1)
	assert.Equal(t, int64(60), team.History[0].Price)
	require.NoError(t, CheckInvariants(team, 12000))

	got, err := Refund(team, playerID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, int64(12000), team.Purse)
	assert.Empty(t, team.History)
	require.NoError(t, CheckInvariants(team, 12000))
}

func TestDebitRejectsOverdraft(t *testing.T) {
	team := newTeam(100)
	err := Debit(team, models.PurchaseRecord{PlayerID: uuid.New(), Price: 150})
	assert.ErrorIs(t, err, ErrInsufficientPurse)

	// No partial effect.
	assert.Equal(t, int64(100), team.Purse)
	assert.Empty(t, team.History)
}

func TestRefundUnknownPlayer(t *testing.T) {
	team := newTeam(1000)
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: uuid.New(), Price: 100}))

	_, err := Refund(team, uuid.New())
	assert.ErrorIs(t, err, ErrNoPurchase)
	assert.Equal(t, int64(900), team.Purse)
	assert.Len(t, team.History, 1)
}

func TestRefundRemovesOnlyMatchingEntry(t *testing.T) {
	team := newTeam(1000)
	first, second := uuid.New(), uuid.New()
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: first, PlayerName: "A", Price: 100}))
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: second, PlayerName: "B", Price: 200}))

	_, err := Refund(team, first)
	require.NoError(t, err)
	require.Len(t, team.History, 1)
	assert.Equal(t, second, team.History[0].PlayerID)
	assert.Equal(t, int64(800), team.Purse)
}

func TestOverseasCount(t *testing.T) {
	team := newTeam(1000)
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: uuid.New(), Country: "India", Price: 10}))
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: uuid.New(), Country: "Australia", Price: 10}))
	require.NoError(t, Debit(team, models.PurchaseRecord{PlayerID: uuid.New(), Country: "England", Price: 10}))

	assert.Equal(t, 2, OverseasCount(team))
}

func TestCheckInvariantsDetectsDrift(t *testing.T) {
	team := newTeam(1000)
	require.NoError(t, CheckInvariants(team, 1000))

	team.Purse = -1
	assert.Error(t, CheckInvariants(team, 1000))

	team.Purse = 500 // spent nothing, yet purse shrank
	assert.Error(t, CheckInvariants(team, 1000))
}
