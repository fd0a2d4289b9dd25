// Package earnings содержит расчёт процентов и доходности бонусов.
package earnings

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

const (
	daysInYear = 365
	monthDays  = 30

	// DefaultHoldingDays используется калькулятором, если у бонуса не задан срок удержания.
	DefaultHoldingDays = 90
)

var (
	yearDays = decimal.NewFromInt(daysInYear)
	hundred  = decimal.NewFromInt(100)
)

// SimpleInterest считает простые проценты за days дней.
// Ставка применяется как есть, без деления на 100.
func SimpleInterest(principal, rate, days float64) float64 {
	if principal == 0 || rate == 0 || days == 0 || !finite(principal, rate, days) {
		return 0
	}

	dailyRate := decimal.NewFromFloat(rate).Div(yearDays)

	return orZero(decimal.NewFromFloat(principal).
		Mul(dailyRate).
		Mul(decimal.NewFromFloat(days)).
		InexactFloat64())
}

// TotalEarnings складывает бонус и проценты без округления.
func TotalEarnings(bonusAmount, interest float64) float64 {
	if !finite(bonusAmount, interest) {
		return 0
	}
	return orZero(decimal.NewFromFloat(bonusAmount).Add(decimal.NewFromFloat(interest)).InexactFloat64())
}

// AnnualizedROI приводит доходность к годовой в процентах.
func AnnualizedROI(total, deposit, days float64) float64 {
	if total == 0 || deposit == 0 || days == 0 || !finite(total, deposit, days) {
		return 0
	}

	roi := decimal.NewFromFloat(total).Div(decimal.NewFromFloat(deposit)).Mul(hundred)

	return orZero(roi.Mul(yearDays).Div(decimal.NewFromFloat(days)).InexactFloat64())
}

// finite сообщает, что среди значений нет NaN и бесконечностей.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func orZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}

// HoldingDays округляет срок удержания вверх до целых 30-дневных месяцев.
func HoldingDays(holdingPeriod int) int {
	if holdingPeriod <= 0 {
		return DefaultHoldingDays
	}
	months := int(math.Ceil(float64(holdingPeriod) / monthDays))
	return months * monthDays
}

// Estimate рассчитывает доходность бонуса при заданном депозите и сроке.
// При days <= 0 используется срок удержания бонуса.
func Estimate(b model.Bonus, deposit float64, days int) model.Estimate {
	if days <= 0 {
		days = HoldingDays(b.HoldingPeriod)
	}

	interest := SimpleInterest(deposit, b.InterestRate, float64(days))
	total := TotalEarnings(b.BonusAmount, interest)

	return model.Estimate{
		Deposit:        deposit,
		HoldingDays:    days,
		BonusAmount:    b.BonusAmount,
		InterestEarned: interest,
		TotalEarnings:  total,
		AnnualizedROI:  AnnualizedROI(total, deposit, float64(days)),
	}
}

// NetEarnings возвращает фактический доход, если он записан, иначе сумму бонуса.
func NetEarnings(b *model.Bonus, tb *model.TrackedBonus) float64 {
	if b == nil {
		return 0
	}
	if tb != nil && tb.ActualEarnings > 0 {
		return tb.ActualEarnings
	}
	return b.BonusAmount
}

// DaysRemaining возвращает количество дней до target, для просроченных дат отрицательное.
func DaysRemaining(target, today model.Date) int {
	return int(math.Round(target.Sub(today.Time).Hours() / 24))
}
