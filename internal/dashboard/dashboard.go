// Package dashboard агрегирует отслеживаемые бонусы в сводку домохозяйства.
package dashboard

import (
	"cmp"
	"slices"

	"github.com/mmeshcher/bonus-tracker/internal/earnings"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// Заголовки ближайших событий.
const (
	TitleDirectDepositDue = "Direct Deposit Due"
	TitleBonusExpected    = "Bonus Expected"
	TitleHoldingEnds      = "Holding Period Ends"
)

// Input содержит данные, из которых строится сводка.
type Input struct {
	Players []model.PlayerSettings
	Tracked []model.TrackedBonus
	Bonuses []model.Bonus
	Banks   []model.Bank
}

func isEarned(status model.BonusStatus) bool {
	return status == model.StatusBonusReceived || status == model.StatusCompleted
}

func isPending(tb model.TrackedBonus) bool {
	return lifecycle.IsPending(tb) && tb.Status != model.StatusBonusReceived
}

// Build строит сводку по участникам и домохозяйству на дату today.
// Бонусы участников, отсутствующих в in.Players, не учитываются.
func Build(in Input, today model.Date) model.Dashboard {
	bonuses := make(map[int64]*model.Bonus, len(in.Bonuses))
	for i := range in.Bonuses {
		bonuses[in.Bonuses[i].ID] = &in.Bonuses[i]
	}
	banks := make(map[int64]*model.Bank, len(in.Banks))
	for i := range in.Banks {
		banks[in.Banks[i].ID] = &in.Banks[i]
	}

	d := model.EmptyDashboard()
	index := make(map[int64]int, len(in.Players))
	for _, p := range in.Players {
		index[p.PlayerID] = len(d.Players)
		d.Players = append(d.Players, model.PlayerStats{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
		})
	}

	for i := range in.Tracked {
		tb := &in.Tracked[i]
		pos, ok := index[tb.PlayerID]
		if !ok {
			continue
		}
		stats := &d.Players[pos]
		bonus := bonuses[tb.BonusID]

		switch {
		case isEarned(tb.Status):
			stats.CompletedBonuses++
			stats.TotalEarned += earnings.NetEarnings(bonus, tb)
		case isPending(*tb):
			stats.PendingBonuses++
			if bonus != nil {
				stats.PendingBonusAmount += bonus.BonusAmount
			}
		}

		if ev, ok := upcoming(*tb, bonus, banks, today); ok {
			d.UpcomingDates = append(d.UpcomingDates, ev)
		}
	}

	for _, p := range d.Players {
		d.Household.TotalEarned += p.TotalEarned
		d.Household.CompletedBonuses += p.CompletedBonuses
		d.Household.PendingBonusAmount += p.PendingBonusAmount
		d.Household.PendingBonuses += p.PendingBonuses
	}

	slices.SortStableFunc(d.UpcomingDates, func(a, b model.UpcomingDate) int {
		if c := a.Date.Compare(b.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.TrackedBonusID, b.TrackedBonusID)
	})

	return d
}

func upcoming(tb model.TrackedBonus, bonus *model.Bonus, banks map[int64]*model.Bank, today model.Date) (model.UpcomingDate, bool) {
	if !tb.IsActive || tb.Status == model.StatusFailed || tb.Status == model.StatusCompleted {
		return model.UpcomingDate{}, false
	}

	ev := model.UpcomingDate{
		PlayerID:       tb.PlayerID,
		TrackedBonusID: tb.ID,
		Status:         tb.Status,
	}
	if bonus != nil {
		ev.BonusTitle = bonus.Title
		if bank, ok := banks[bonus.BankID]; ok {
			ev.BankName = bank.Name
		}
	}

	switch tb.Status {
	case model.StatusAccountOpened:
		if tb.DirectDepositComplete {
			return model.UpcomingDate{}, false
		}
		due := lifecycle.DueDate(tb, bonus, today)
		if due == nil {
			return model.UpcomingDate{}, false
		}
		ev.Kind, ev.Title, ev.Date = model.UpcomingDirectDeposit, TitleDirectDepositDue, *due
	case model.StatusRequirementsMet:
		due := lifecycle.DueDate(tb, bonus, today)
		if due == nil {
			return model.UpcomingDate{}, false
		}
		ev.Kind, ev.Title, ev.Date = model.UpcomingBonusExpected, TitleBonusExpected, *due
	case model.StatusBonusReceived:
		if bonus == nil || tb.AccountOpenDate == nil || bonus.HoldingPeriod <= 0 {
			return model.UpcomingDate{}, false
		}
		ev.Kind, ev.Title = model.UpcomingHoldingEnds, TitleHoldingEnds
		ev.Date = tb.AccountOpenDate.AddDays(bonus.HoldingPeriod)
	default:
		return model.UpcomingDate{}, false
	}

	return ev, true
}

// ForPlayer возвращает не более limit ближайших событий участника; limit <= 0 снимает ограничение.
func ForPlayer(dates []model.UpcomingDate, playerID int64, limit int) []model.UpcomingDate {
	res := make([]model.UpcomingDate, 0)
	for _, d := range dates {
		if d.PlayerID != playerID {
			continue
		}
		res = append(res, d)
		if limit > 0 && len(res) == limit {
			break
		}
	}
	return res
}
