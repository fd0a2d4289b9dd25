// Package catalog фильтрует и сортирует списки бонусов для представлений.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// Значения фильтра прямого депозита.
const (
	DirectDepositAll         = "all"
	DirectDepositRequired    = "required"
	DirectDepositNotRequired = "not_required"
)

// Поля сортировки каталога.
const (
	SortByAmount     = "bonus_amount"
	SortByRate       = "interest_rate"
	SortByHolding    = "holding_period"
	SortByMinDeposit = "min_deposit"
	SortByExpiration = "expiration_date"
	SortByTitle      = "title"
)

// BonusFilter задаёт условия отбора бонусов каталога. Нулевые значения не ограничивают выборку.
type BonusFilter struct {
	Search        string
	BankID        int64
	MinAmount     *float64
	MaxAmount     *float64
	DirectDeposit string
}

// Match проверяет бонус на соответствие фильтру.
func (f BonusFilter) Match(b model.Bonus) bool {
	if f.Search != "" && !containsFold(b.Title, f.Search) {
		return false
	}
	if f.BankID != 0 && b.BankID != f.BankID {
		return false
	}
	if f.MinAmount != nil && b.BonusAmount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && b.BonusAmount > *f.MaxAmount {
		return false
	}
	switch f.DirectDeposit {
	case DirectDepositRequired:
		return b.DirectDepositRequired
	case DirectDepositNotRequired:
		return !b.DirectDepositRequired
	}
	return true
}

// FilterBonuses возвращает бонусы, прошедшие фильтр, сохраняя порядок.
func FilterBonuses(bonuses []model.Bonus, f BonusFilter) []model.Bonus {
	res := make([]model.Bonus, 0, len(bonuses))
	for _, b := range bonuses {
		if f.Match(b) {
			res = append(res, b)
		}
	}
	return res
}

// IsSortField сообщает, поддерживается ли поле сортировки.
func IsSortField(field string) bool {
	switch field {
	case SortByAmount, SortByRate, SortByHolding, SortByMinDeposit, SortByExpiration, SortByTitle:
		return true
	}
	return false
}

func compareBonuses(field string, a, b model.Bonus) int {
	switch field {
	case SortByRate:
		return cmp.Compare(a.InterestRate, b.InterestRate)
	case SortByHolding:
		return cmp.Compare(a.HoldingPeriod, b.HoldingPeriod)
	case SortByMinDeposit:
		return cmp.Compare(a.MinDeposit, b.MinDeposit)
	case SortByExpiration:
		// без даты окончания в конце при сортировке по возрастанию
		switch {
		case a.ExpirationDate == nil && b.ExpirationDate == nil:
			return 0
		case a.ExpirationDate == nil:
			return 1
		case b.ExpirationDate == nil:
			return -1
		}
		return a.ExpirationDate.Compare(b.ExpirationDate.Time)
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return cmp.Compare(a.BonusAmount, b.BonusAmount)
	}
}

// SortBonuses сортирует бонусы по полю; desc задаёт убывающий порядок. Сортировка устойчивая.
func SortBonuses(bonuses []model.Bonus, field string, desc bool) {
	slices.SortStableFunc(bonuses, func(a, b model.Bonus) int {
		c := compareBonuses(field, a, b)
		if desc {
			return -c
		}
		return c
	})
}

// StatusAll отключает фильтр по статусу.
const StatusAll = "all"

// TrackedFilter задаёт условия отбора отслеживаемых бонусов.
type TrackedFilter struct {
	Status       string
	ShowArchived bool
	Search       string
}

// Match проверяет отслеживаемый бонус на соответствие фильтру.
func (f TrackedFilter) Match(v model.TrackedBonusView) bool {
	if f.Status != "" && f.Status != StatusAll && string(v.Status) != f.Status {
		return false
	}
	if !f.ShowArchived && !v.IsActive {
		return false
	}
	if f.Search != "" && !containsFold(v.Title(), f.Search) {
		return false
	}
	return true
}

// FilterTracked возвращает отслеживаемые бонусы, прошедшие фильтр.
func FilterTracked(views []model.TrackedBonusView, f TrackedFilter) []model.TrackedBonusView {
	res := make([]model.TrackedBonusView, 0, len(views))
	for _, v := range views {
		if f.Match(v) {
			res = append(res, v)
		}
	}
	return res
}

const unknownStatusOrder = 99

func statusOrder(s model.BonusStatus) int {
	if r, ok := lifecycle.Rank(s); ok {
		return r
	}
	if s == model.StatusFailed {
		return len(model.Statuses) - 1
	}
	return unknownStatusOrder
}

// SortTracked ставит активные бонусы первыми, затем упорядочивает по этапу.
func SortTracked(views []model.TrackedBonusView) {
	slices.SortStableFunc(views, func(a, b model.TrackedBonusView) int {
		if a.IsActive != b.IsActive {
			if a.IsActive {
				return -1
			}
			return 1
		}
		return cmp.Compare(statusOrder(a.Status), statusOrder(b.Status))
	})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
