package cli

import (
	"fmt"
	"strings"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

type TrackedCmd struct {
	Player   int64  `arg:"" help:"Player number (1 or 2)."`
	Status   string `help:"Only show this status." default:"all"`
	Archived bool   `help:"Include inactive bonuses."`
	Search   string `short:"q" help:"Filter by bonus title."`
	Detail   bool   `short:"d" help:"Show the milestone checklist for each bonus."`
}

func (c *TrackedCmd) Run(ctx *Context) error {
	views, err := ctx.Client.ListPlayerTrackedBonuses(ctx.context(), c.Player, catalog.TrackedFilter{
		Status:       c.Status,
		ShowArchived: c.Archived,
		Search:       c.Search,
	})
	if err != nil {
		return err
	}

	out := ctx.Out
	fmt.Fprintln(out, headerStyle.Render(ctx.playerName(c.Player)+" - tracked bonuses"))

	if len(views) == 0 {
		fmt.Fprintln(out, "  No tracked bonuses found")
		return nil
	}

	today := ctx.today()
	for _, v := range views {
		printView(ctx, v, today, c.Detail)
	}
	return nil
}

func printView(ctx *Context, v model.TrackedBonusView, today model.Date, detail bool) {
	out := ctx.Out

	bank := ""
	if v.Bank != nil {
		bank = v.Bank.Name + " - "
	}
	title := v.Title()
	if title == "" {
		title = fmt.Sprintf("bonus #%d", v.BonusID)
	}

	fmt.Fprintf(out, "\n  #%d %s %s%s\n", v.ID, badge(v.Status), bank, title)
	if !v.IsActive {
		fmt.Fprintln(out, mutedStyle.Render("     archived"))
	}
	fmt.Fprintf(out, "     %s\n", progressBar(v.Progress))
	fmt.Fprintf(out, "     Next: %s\n", v.NextStep)
	if v.DueDate != nil {
		fmt.Fprintf(out, "     Due:  %s %s\n", v.DueDate, relativeDays(*v.DueDate, today))
	}

	if !detail {
		return
	}
	for _, m := range v.Checklist {
		line := fmt.Sprintf("     %s %s", checkmark(m.Complete), m.Label)
		if m.Date != nil {
			line += mutedStyle.Render(" " + m.Date.String())
		}
		fmt.Fprintln(out, line)
	}
	if v.Notes != "" {
		fmt.Fprintln(out, "     Notes:")
		for _, l := range strings.Split(v.Notes, "\n") {
			fmt.Fprintln(out, "       "+l)
		}
	}
}

type TrackCmd struct {
	Player  int64  `arg:"" help:"Player number (1 or 2)."`
	BonusID int64  `arg:"" help:"Catalog bonus id."`
	Applied bool   `help:"Mark as applied today instead of planned."`
	Note    string `help:"Initial note."`
}

func (c *TrackCmd) Run(ctx *Context) error {
	bonus, err := ctx.Client.GetBonus(ctx.context(), c.BonusID)
	if err != nil {
		return fmt.Errorf("bonus %d: %w", c.BonusID, err)
	}

	tb := model.TrackedBonus{
		PlayerID: c.Player,
		BonusID:  c.BonusID,
		Status:   model.StatusPlanned,
		IsActive: true,
		Notes:    c.Note,
	}
	if c.Applied {
		tb.Status = model.StatusApplied
		tb.ApplicationDate = ctx.today().Ptr()
	}

	v, err := ctx.Client.CreateTrackedBonus(ctx.context(), tb)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Tracking %q for %s as #%d (%s)\n", bonus.Title, ctx.playerName(c.Player), v.ID, lifecycle.Label(v.Status))
	return nil
}

type StatusCmd struct {
	ID     int64  `arg:"" help:"Tracked bonus id."`
	Status string `arg:"" enum:"planned,applied,account_opened,requirements_met,bonus_received,completed,failed" help:"New status."`
	Date   string `help:"Milestone date (YYYY-MM-DD), defaults to today."`
	Note   string `help:"Note appended to the history."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	status, ok := lifecycle.ParseStatus(c.Status)
	if !ok {
		return fmt.Errorf("unknown status %q", c.Status)
	}

	upd := lifecycle.StatusUpdate{Status: status, Date: ctx.today(), Note: c.Note}
	if c.Date != "" {
		d, err := model.ParseDate(c.Date)
		if err != nil {
			return fmt.Errorf("invalid date, use YYYY-MM-DD: %w", err)
		}
		upd.Date = d
	}

	v, err := ctx.Client.UpdateTrackedStatus(ctx.context(), c.ID, upd)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "#%d is now %s\n", v.ID, badge(v.Status))
	fmt.Fprintf(ctx.Out, "Next: %s\n", v.NextStep)
	return nil
}
