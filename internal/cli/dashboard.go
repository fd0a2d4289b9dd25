package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/bonus-tracker/internal/dashboard"
	"github.com/mmeshcher/bonus-tracker/internal/earnings"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

type DashboardCmd struct {
	Player int64 `help:"Show only this player's upcoming dates (1 or 2)." default:"0"`
	Limit  int   `help:"Maximum upcoming dates to show per player." default:"5"`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	d, err := ctx.Client.GetDashboard(ctx.context())
	if err != nil {
		ctx.Logger.Warn("dashboard unavailable, showing empty summary", zap.Error(err))
		d = model.EmptyDashboard()
	}

	out := ctx.Out
	today := ctx.today()

	fmt.Fprintln(out, headerStyle.Render("Household"))
	fmt.Fprintf(out, "  Earned:  %s from %d bonuses\n", money(d.Household.TotalEarned), d.Household.CompletedBonuses)
	fmt.Fprintf(out, "  Pending: %s across %d bonuses\n", money(d.Household.PendingBonusAmount), d.Household.PendingBonuses)

	for _, p := range d.Players {
		if c.Player != 0 && p.PlayerID != c.Player {
			continue
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render(p.PlayerName))
		fmt.Fprintf(out, "  Earned:  %s from %d bonuses\n", money(p.TotalEarned), p.CompletedBonuses)
		fmt.Fprintf(out, "  Pending: %s across %d bonuses\n", money(p.PendingBonusAmount), p.PendingBonuses)

		upcoming := dashboard.ForPlayer(d.UpcomingDates, p.PlayerID, c.Limit)
		if len(upcoming) == 0 {
			fmt.Fprintln(out, mutedStyle.Render("  No upcoming dates"))
			continue
		}
		for _, ev := range upcoming {
			fmt.Fprintf(out, "  %s  %-20s %s - %s %s\n",
				ev.Date, ev.Title, ev.BankName, ev.BonusTitle, relativeDays(ev.Date, today))
		}
	}

	return nil
}

func relativeDays(target, today model.Date) string {
	days := earnings.DaysRemaining(target, today)
	switch {
	case days < 0:
		return overdueStyle.Render(fmt.Sprintf("(%d days overdue)", -days))
	case days == 0:
		return "(today)"
	case days == 1:
		return "(tomorrow)"
	default:
		return mutedStyle.Render(fmt.Sprintf("(in %d days)", days))
	}
}
