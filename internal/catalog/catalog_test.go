package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

func ptr(v float64) *float64 {
	return &v
}

func testBonuses() []model.Bonus {
	return []model.Bonus{
		{ID: 1, BankID: 1, Title: "Chase Total Checking", BonusAmount: 300, InterestRate: 0.01, HoldingPeriod: 90, DirectDepositRequired: true},
		{ID: 2, BankID: 2, Title: "Citi Savings", BonusAmount: 500, InterestRate: 4.5, HoldingPeriod: 60, MinDeposit: 15000,
			ExpirationDate: model.NewDate(2025, time.March, 1).Ptr()},
		{ID: 3, BankID: 1, Title: "Chase Savings", BonusAmount: 200, InterestRate: 0.01, HoldingPeriod: 90, MinDeposit: 10000,
			ExpirationDate: model.NewDate(2025, time.January, 15).Ptr()},
		{ID: 4, BankID: 3, Title: "SoFi Checking", BonusAmount: 300, InterestRate: 4.6, HoldingPeriod: 30, DirectDepositRequired: true},
	}
}

func ids(list []model.Bonus) []int64 {
	res := make([]int64, 0, len(list))
	for _, b := range list {
		res = append(res, b.ID)
	}
	return res
}

func TestFilterBonuses(t *testing.T) {
	tests := []struct {
		name   string
		filter BonusFilter
		want   []int64
	}{
		{"empty filter", BonusFilter{}, []int64{1, 2, 3, 4}},
		{"search is case insensitive", BonusFilter{Search: "chase"}, []int64{1, 3}},
		{"bank", BonusFilter{BankID: 1}, []int64{1, 3}},
		{"min amount", BonusFilter{MinAmount: ptr(300)}, []int64{1, 2, 4}},
		{"max amount", BonusFilter{MaxAmount: ptr(300)}, []int64{1, 3, 4}},
		{"direct deposit required", BonusFilter{DirectDeposit: DirectDepositRequired}, []int64{1, 4}},
		{"direct deposit not required", BonusFilter{DirectDeposit: DirectDepositNotRequired}, []int64{2, 3}},
		{"combined", BonusFilter{Search: "checking", MinAmount: ptr(250), DirectDeposit: DirectDepositRequired, BankID: 3}, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterBonuses(testBonuses(), tt.filter)))
		})
	}
}

func TestSortBonuses(t *testing.T) {
	tests := []struct {
		field string
		desc  bool
		want  []int64
	}{
		{SortByAmount, true, []int64{2, 1, 4, 3}},
		{SortByAmount, false, []int64{3, 1, 4, 2}},
		{SortByRate, true, []int64{4, 2, 1, 3}},
		{SortByHolding, false, []int64{4, 2, 1, 3}},
		{SortByMinDeposit, false, []int64{1, 4, 3, 2}},
		{SortByExpiration, false, []int64{3, 2, 1, 4}},
		{SortByTitle, false, []int64{3, 1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			list := testBonuses()
			SortBonuses(list, tt.field, tt.desc)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestIsSortField(t *testing.T) {
	assert.True(t, IsSortField("bonus_amount"))
	assert.False(t, IsSortField("bank_id"))
}

func view(id int64, status model.BonusStatus, active bool, title string) model.TrackedBonusView {
	return model.TrackedBonusView{
		TrackedBonus: model.TrackedBonus{ID: id, Status: status, IsActive: active},
		Bonus:        &model.Bonus{Title: title},
	}
}

func viewIDs(list []model.TrackedBonusView) []int64 {
	res := make([]int64, 0, len(list))
	for _, v := range list {
		res = append(res, v.ID)
	}
	return res
}

func TestFilterTracked(t *testing.T) {
	views := []model.TrackedBonusView{
		view(1, model.StatusApplied, true, "Chase Total Checking"),
		view(2, model.StatusCompleted, false, "Citi Savings"),
		view(3, model.StatusApplied, true, "SoFi Checking"),
		{TrackedBonus: model.TrackedBonus{ID: 4, Status: model.StatusPlanned, IsActive: true}},
	}

	assert.Equal(t, []int64{1, 3, 4}, viewIDs(FilterTracked(views, TrackedFilter{})))
	assert.Equal(t, []int64{1, 2, 3, 4}, viewIDs(FilterTracked(views, TrackedFilter{Status: StatusAll, ShowArchived: true})))
	assert.Equal(t, []int64{1, 3}, viewIDs(FilterTracked(views, TrackedFilter{Status: "applied"})))
	assert.Equal(t, []int64{3}, viewIDs(FilterTracked(views, TrackedFilter{Search: "SOFI"})))
	assert.Empty(t, FilterTracked(views, TrackedFilter{Status: "completed"}))
}

func TestSortTracked(t *testing.T) {
	views := []model.TrackedBonusView{
		view(1, model.StatusCompleted, false, ""),
		view(2, model.StatusFailed, true, ""),
		view(3, model.StatusRequirementsMet, true, ""),
		view(4, "mystery", true, ""),
		view(5, model.StatusPlanned, true, ""),
		view(6, model.StatusPlanned, false, ""),
	}

	SortTracked(views)
	assert.Equal(t, []int64{5, 3, 2, 4, 6, 1}, viewIDs(views))
}
