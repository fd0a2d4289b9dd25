package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

type SettingsCmd struct {
	Player        int64    `arg:"" help:"Player number (1 or 2)."`
	Name          string   `help:"Set the display name."`
	Deposit       *float64 `help:"Set the default deposit amount."`
	Notifications string   `help:"Email notifications: on or off." enum:"on,off,keep" default:"keep"`
}

func (c *SettingsCmd) notificationsChanged() bool {
	return c.Notifications == "on" || c.Notifications == "off"
}

func (c *SettingsCmd) changed() bool {
	return c.Name != "" || c.Deposit != nil || c.notificationsChanged()
}

func (c *SettingsCmd) Run(ctx *Context) error {
	current, err := ctx.Client.GetPlayerSettings(ctx.context(), c.Player)
	if err != nil {
		if c.changed() {
			return err
		}
		ctx.Logger.Warn("player settings unavailable, using defaults", zap.Int64("player_id", c.Player), zap.Error(err))
		def := model.DefaultPlayerSettings(c.Player)
		current = &def
	}

	ps := *current
	if c.changed() {
		if c.Name != "" {
			ps.PlayerName = c.Name
		}
		if c.Deposit != nil {
			ps.DefaultDepositAmount = *c.Deposit
		}
		if c.notificationsChanged() {
			ps.EmailNotifications = c.Notifications == "on"
		}

		saved, err := ctx.Client.UpdatePlayerSettings(ctx.context(), ps)
		if err != nil {
			return err
		}
		ps = *saved
		fmt.Fprintln(ctx.Out, "Settings saved")
	}

	fmt.Fprintln(ctx.Out, headerStyle.Render(fmt.Sprintf("Player %d", ps.PlayerID)))
	fmt.Fprintf(ctx.Out, "  Name:                %s\n", ps.PlayerName)
	fmt.Fprintf(ctx.Out, "  Default deposit:     %s\n", money(ps.DefaultDepositAmount))
	fmt.Fprintf(ctx.Out, "  Email notifications: %t\n", ps.EmailNotifications)
	return nil
}
