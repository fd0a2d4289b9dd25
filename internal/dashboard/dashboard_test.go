package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

func testInput() Input {
	opened := model.NewDate(2025, time.January, 1)
	openedLater := model.NewDate(2025, time.February, 1)

	return Input{
		Players: []model.PlayerSettings{
			{PlayerID: 1, PlayerName: "Alex"},
			{PlayerID: 2, PlayerName: "Sam"},
		},
		Banks: []model.Bank{{ID: 1, Name: "Chase"}, {ID: 2, Name: "Citi"}},
		Bonuses: []model.Bonus{
			{ID: 10, BankID: 1, Title: "Chase Checking", BonusAmount: 300, DirectDepositRequired: true, HoldingPeriod: 90},
			{ID: 20, BankID: 2, Title: "Citi Savings", BonusAmount: 500, HoldingPeriod: 60},
		},
		Tracked: []model.TrackedBonus{
			{ID: 1, PlayerID: 1, BonusID: 10, Status: model.StatusAccountOpened, AccountOpenDate: &opened, IsActive: true},
			{ID: 2, PlayerID: 1, BonusID: 20, Status: model.StatusCompleted, ActualEarnings: 520, IsActive: true},
			{ID: 3, PlayerID: 2, BonusID: 20, Status: model.StatusBonusReceived, AccountOpenDate: &openedLater, IsActive: true},
			{ID: 4, PlayerID: 2, BonusID: 10, Status: model.StatusRequirementsMet, IsActive: true},
			{ID: 5, PlayerID: 2, BonusID: 10, Status: model.StatusPlanned, IsActive: false},
			{ID: 6, PlayerID: 2, BonusID: 10, Status: model.StatusFailed, IsActive: true},
			{ID: 7, PlayerID: 3, BonusID: 10, Status: model.StatusCompleted, IsActive: true},
		},
	}
}

func TestBuild_Stats(t *testing.T) {
	d := Build(testInput(), model.NewDate(2025, time.January, 10))

	require.Len(t, d.Players, 2)

	alex := d.Player(1)
	assert.Equal(t, "Alex", alex.PlayerName)
	assert.Equal(t, 1, alex.CompletedBonuses)
	assert.Equal(t, 520.0, alex.TotalEarned)
	assert.Equal(t, 1, alex.PendingBonuses)
	assert.Equal(t, 300.0, alex.PendingBonusAmount)

	sam := d.Player(2)
	assert.Equal(t, 1, sam.CompletedBonuses)
	assert.Equal(t, 500.0, sam.TotalEarned)
	assert.Equal(t, 1, sam.PendingBonuses)
	assert.Equal(t, 300.0, sam.PendingBonusAmount)

	assert.Equal(t, model.HouseholdStats{
		TotalEarned:        1020,
		CompletedBonuses:   2,
		PendingBonusAmount: 600,
		PendingBonuses:     2,
	}, d.Household)

	assert.Equal(t, int64(9), d.Player(9).PlayerID)
}

func TestBuild_UpcomingDates(t *testing.T) {
	d := Build(testInput(), model.NewDate(2025, time.January, 10))

	require.Len(t, d.UpcomingDates, 3)

	first := d.UpcomingDates[0]
	assert.Equal(t, int64(1), first.TrackedBonusID)
	assert.Equal(t, TitleDirectDepositDue, first.Title)
	assert.Equal(t, model.UpcomingDirectDeposit, first.Kind)
	assert.Equal(t, "2025-01-31", first.Date.String())
	assert.Equal(t, "Chase", first.BankName)
	assert.Equal(t, "Chase Checking", first.BonusTitle)

	second := d.UpcomingDates[1]
	assert.Equal(t, int64(4), second.TrackedBonusID)
	assert.Equal(t, TitleBonusExpected, second.Title)
	assert.Equal(t, "2025-03-11", second.Date.String())

	third := d.UpcomingDates[2]
	assert.Equal(t, int64(3), third.TrackedBonusID)
	assert.Equal(t, TitleHoldingEnds, third.Title)
	assert.Equal(t, "2025-04-02", third.Date.String())
}

func TestBuild_DirectDepositDoneHasNoEvent(t *testing.T) {
	in := testInput()
	in.Tracked[0].DirectDepositComplete = true

	d := Build(in, model.NewDate(2025, time.January, 10))
	for _, ev := range d.UpcomingDates {
		assert.NotEqual(t, int64(1), ev.TrackedBonusID)
	}
}

func TestBuild_Empty(t *testing.T) {
	d := Build(Input{}, model.NewDate(2025, time.January, 10))
	assert.Empty(t, d.Players)
	assert.NotNil(t, d.UpcomingDates)
	assert.Equal(t, model.HouseholdStats{}, d.Household)
}

func TestForPlayer(t *testing.T) {
	d := Build(testInput(), model.NewDate(2025, time.January, 10))

	assert.Len(t, ForPlayer(d.UpcomingDates, 2, 0), 2)
	assert.Len(t, ForPlayer(d.UpcomingDates, 2, 1), 1)
	assert.Len(t, ForPlayer(d.UpcomingDates, 1, 5), 1)
	assert.Empty(t, ForPlayer(d.UpcomingDates, 3, 5))
}
