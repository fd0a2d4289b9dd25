package earnings

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

func TestSimpleInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		days      float64
		want      float64
	}{
		{"zero days", 1000, 5, 0, 0},
		{"zero principal", 0, 5, 100, 0},
		{"zero rate", 1000, 0, 100, 0},
		{"rate used as is", 1000, 5, 90, 1000 * (5.0 / 365) * 90},
		{"one year", 365, 0.05, 365, 18.25},
		{"nan rate", 1000, math.NaN(), 90, 0},
		{"infinite principal", math.Inf(1), 5, 90, 0},
		{"negative infinite days", 1000, 5, math.Inf(-1), 0},
		{"overflowing result", 1e308, 1e308, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SimpleInterest(tt.principal, tt.rate, tt.days), 1e-9)
		})
	}
}

func TestTotalEarnings(t *testing.T) {
	assert.InDelta(t, 1532.8767, TotalEarnings(300, 1232.8767), 1e-9)
	assert.Equal(t, 0.0, TotalEarnings(0, 0))
	assert.Equal(t, 0.0, TotalEarnings(math.NaN(), 100))
	assert.Equal(t, 0.0, TotalEarnings(300, math.Inf(1)))
	assert.Equal(t, 0.0, TotalEarnings(1.7e308, 1.7e308))
}

func TestAnnualizedROI(t *testing.T) {
	for _, x := range []float64{0, 1, 500} {
		for _, d := range []float64{0, 30, 365} {
			assert.Equal(t, 0.0, AnnualizedROI(x, 0, d))
		}
	}
	assert.Equal(t, 0.0, AnnualizedROI(100, 1000, 0))
	assert.Equal(t, 0.0, AnnualizedROI(0, 1000, 30))
	assert.InDelta(t, 10.0, AnnualizedROI(100, 1000, 365), 1e-9)

	assert.Equal(t, 0.0, AnnualizedROI(math.Inf(1), 1000, 90))
	assert.Equal(t, 0.0, AnnualizedROI(100, math.NaN(), 90))
	assert.Equal(t, 0.0, AnnualizedROI(1e308, 1e-308, 1))
}

func TestEstimate_NonFiniteInput(t *testing.T) {
	bonus := model.Bonus{BonusAmount: 300, InterestRate: math.NaN(), HoldingPeriod: 90}

	est := Estimate(bonus, 1000, 0)
	assert.Equal(t, 0.0, est.InterestEarned)
	assert.Equal(t, 300.0, est.TotalEarnings)
	assert.InDelta(t, 121.67, est.AnnualizedROI, 0.01)

	est = Estimate(model.Bonus{InterestRate: 1e308}, 1e308, 1000)
	assert.Equal(t, 0.0, est.InterestEarned)
	assert.Equal(t, 0.0, est.TotalEarnings)
	assert.Equal(t, 0.0, est.AnnualizedROI)
}

func TestEarningsScenario(t *testing.T) {
	interest := SimpleInterest(1000, 5, 90)
	assert.InDelta(t, 1232.9, interest, 0.05)

	total := TotalEarnings(300, interest)
	assert.InDelta(t, 1532.9, total, 0.05)

	roi := AnnualizedROI(total, 1000, 90)
	assert.InDelta(t, 621.6, roi, 0.1)
}

func TestEstimate(t *testing.T) {
	bonus := model.Bonus{BonusAmount: 300, InterestRate: 5, HoldingPeriod: 90}

	est := Estimate(bonus, 1000, 0)
	assert.Equal(t, 90, est.HoldingDays)
	assert.InDelta(t, 1232.9, est.InterestEarned, 0.05)
	assert.InDelta(t, 1532.9, est.TotalEarnings, 0.05)
	assert.InDelta(t, 621.6, est.AnnualizedROI, 0.1)

	est = Estimate(bonus, 0, 60)
	assert.Equal(t, 60, est.HoldingDays)
	assert.Equal(t, 0.0, est.InterestEarned)
	assert.Equal(t, 300.0, est.TotalEarnings)
	assert.Equal(t, 0.0, est.AnnualizedROI)
}

func TestHoldingDays(t *testing.T) {
	assert.Equal(t, DefaultHoldingDays, HoldingDays(0))
	assert.Equal(t, 30, HoldingDays(1))
	assert.Equal(t, 90, HoldingDays(90))
	assert.Equal(t, 120, HoldingDays(91))
}

func TestNetEarnings(t *testing.T) {
	bonus := &model.Bonus{BonusAmount: 250}

	assert.Equal(t, 0.0, NetEarnings(nil, &model.TrackedBonus{ActualEarnings: 10}))
	assert.Equal(t, 250.0, NetEarnings(bonus, nil))
	assert.Equal(t, 250.0, NetEarnings(bonus, &model.TrackedBonus{}))
	assert.Equal(t, 275.5, NetEarnings(bonus, &model.TrackedBonus{ActualEarnings: 275.5}))
}

func TestDaysRemaining(t *testing.T) {
	today := model.NewDate(2025, time.January, 1)

	assert.Equal(t, 30, DaysRemaining(model.NewDate(2025, time.January, 31), today))
	assert.Equal(t, 0, DaysRemaining(today, today))
	assert.Equal(t, -1, DaysRemaining(model.NewDate(2024, time.December, 31), today))
}
