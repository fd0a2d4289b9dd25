// Package cli содержит команды терминального клиента bonusctl.
package cli

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// API описывает вызовы сервера, которые использует клиент.
type API interface {
	ListBanks(ctx context.Context) ([]model.Bank, error)
	ListBonuses(ctx context.Context, f catalog.BonusFilter, sortBy string, desc bool) ([]model.Bonus, error)
	GetBonus(ctx context.Context, id int64) (*model.Bonus, error)
	EstimateBonus(ctx context.Context, bonusID int64, deposit float64, days int) (*model.Estimate, error)
	Calculate(ctx context.Context, deposit, rate float64, days int, bonus float64) (*model.Estimate, error)

	ListPlayerTrackedBonuses(ctx context.Context, playerID int64, f catalog.TrackedFilter) ([]model.TrackedBonusView, error)
	CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error)
	UpdateTrackedStatus(ctx context.Context, id int64, upd lifecycle.StatusUpdate) (*model.TrackedBonusView, error)

	GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error)
	UpdatePlayerSettings(ctx context.Context, ps model.PlayerSettings) (*model.PlayerSettings, error)
	GetDashboard(ctx context.Context) (model.Dashboard, error)
}

// Context передаётся в Run каждой команды.
type Context struct {
	Ctx    context.Context
	Client API
	Out    io.Writer
	Logger *zap.Logger
	Now    func() time.Time
}

func (c *Context) today() model.Date {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return model.DateOf(now())
}

func (c *Context) context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

// playerName возвращает имя участника, а при ошибке сервера имя по умолчанию.
func (c *Context) playerName(playerID int64) string {
	ps, err := c.Client.GetPlayerSettings(c.context(), playerID)
	if err != nil {
		c.Logger.Warn("player settings unavailable, using defaults", zap.Int64("player_id", playerID), zap.Error(err))
		return model.DefaultPlayerSettings(playerID).PlayerName
	}
	return ps.PlayerName
}
