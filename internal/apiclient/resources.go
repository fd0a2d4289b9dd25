package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// Ключи кэша клиента.
const (
	keyBanks     = "banks"
	keyBonuses   = "bonuses"
	keyDashboard = "dashboard"
)

func keyBank(id int64) string           { return fmt.Sprintf("bank:%d", id) }
func keyBonus(id int64) string          { return fmt.Sprintf("bonus:%d", id) }
func keyBankBonuses(id int64) string    { return fmt.Sprintf("bank-bonuses:%d", id) }
func keyPlayerTracked(id int64) string  { return fmt.Sprintf("player-tracked-bonuses:%d", id) }
func keyPlayerSettings(id int64) string { return fmt.Sprintf("player-settings:%d", id) }

// Шаблоны, покрывающие варианты ключа с параметрами запроса.
const (
	allBonuses       = keyBonuses + "*"
	allPlayerTracked = "player-tracked-bonuses:*"
)

func playerTrackedPattern(id int64) string { return keyPlayerTracked(id) + "*" }

// ListBanks возвращает все банки.
func (c *Client) ListBanks(ctx context.Context) ([]model.Bank, error) {
	return cachedGet[[]model.Bank](ctx, c, keyBanks, "/banks", nil)
}

// GetBank возвращает банк.
func (c *Client) GetBank(ctx context.Context, id int64) (*model.Bank, error) {
	return cachedGet[*model.Bank](ctx, c, keyBank(id), fmt.Sprintf("/banks/%d", id), nil)
}

// CreateBank создаёт банк.
func (c *Client) CreateBank(ctx context.Context, b model.Bank) (*model.Bank, error) {
	var out model.Bank
	if err := c.do(ctx, http.MethodPost, "/banks", nil, b, &out); err != nil {
		return nil, err
	}
	c.invalidate(keyBanks)
	return &out, nil
}

// UpdateBank обновляет банк.
func (c *Client) UpdateBank(ctx context.Context, b model.Bank) (*model.Bank, error) {
	var out model.Bank
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/banks/%d", b.ID), nil, b, &out); err != nil {
		return nil, err
	}
	c.invalidate(keyBanks, keyBank(b.ID))
	return &out, nil
}

// DeleteBank удаляет банк.
func (c *Client) DeleteBank(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/banks/%d", id), nil, nil, nil); err != nil {
		return err
	}
	c.invalidate(keyBanks, keyBank(id))
	return nil
}

func bonusQuery(f catalog.BonusFilter, sortBy string, desc bool) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.BankID != 0 {
		q.Set("bank_id", strconv.FormatInt(f.BankID, 10))
	}
	if f.MinAmount != nil {
		q.Set("min_amount", strconv.FormatFloat(*f.MinAmount, 'f', -1, 64))
	}
	if f.MaxAmount != nil {
		q.Set("max_amount", strconv.FormatFloat(*f.MaxAmount, 'f', -1, 64))
	}
	if f.DirectDeposit != "" && f.DirectDeposit != catalog.DirectDepositAll {
		q.Set("direct_deposit", f.DirectDeposit)
	}
	if sortBy != "" {
		q.Set("sort", sortBy)
		if desc {
			q.Set("order", "desc")
		}
	}
	return q
}

// ListBonuses возвращает каталог бонусов с фильтрами и сортировкой на стороне сервера.
func (c *Client) ListBonuses(ctx context.Context, f catalog.BonusFilter, sortBy string, desc bool) ([]model.Bonus, error) {
	q := bonusQuery(f, sortBy, desc)
	return cachedGet[[]model.Bonus](ctx, c, queryKey(keyBonuses, q), "/bonuses", q)
}

// GetBonus возвращает бонус.
func (c *Client) GetBonus(ctx context.Context, id int64) (*model.Bonus, error) {
	return cachedGet[*model.Bonus](ctx, c, keyBonus(id), fmt.Sprintf("/bonuses/%d", id), nil)
}

// ListBankBonuses возвращает бонусы банка.
func (c *Client) ListBankBonuses(ctx context.Context, bankID int64) ([]model.Bonus, error) {
	return cachedGet[[]model.Bonus](ctx, c, keyBankBonuses(bankID), fmt.Sprintf("/banks/%d/bonuses", bankID), nil)
}

// CreateBonus создаёт бонус.
func (c *Client) CreateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error) {
	var out model.Bonus
	if err := c.do(ctx, http.MethodPost, "/bonuses", nil, b, &out); err != nil {
		return nil, err
	}
	c.invalidate(allBonuses, keyBankBonuses(b.BankID))
	return &out, nil
}

// UpdateBonus обновляет бонус.
func (c *Client) UpdateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error) {
	var out model.Bonus
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bonuses/%d", b.ID), nil, b, &out); err != nil {
		return nil, err
	}
	c.invalidate(allBonuses, keyBonus(b.ID), keyBankBonuses(b.BankID))
	return &out, nil
}

// DeleteBonus удаляет бонус.
func (c *Client) DeleteBonus(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/bonuses/%d", id), nil, nil, nil); err != nil {
		return err
	}
	c.invalidate(allBonuses, keyBonus(id))
	return nil
}

// EstimateBonus рассчитывает доходность бонуса. При days = 0 сервер берёт срок удержания бонуса.
func (c *Client) EstimateBonus(ctx context.Context, bonusID int64, deposit float64, days int) (*model.Estimate, error) {
	q := url.Values{}
	q.Set("deposit", strconv.FormatFloat(deposit, 'f', -1, 64))
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return get[*model.Estimate](ctx, c, fmt.Sprintf("/bonuses/%d/estimate", bonusID), q)
}

// Calculate рассчитывает доходность по произвольным параметрам.
func (c *Client) Calculate(ctx context.Context, deposit, rate float64, days int, bonus float64) (*model.Estimate, error) {
	q := url.Values{}
	q.Set("deposit", strconv.FormatFloat(deposit, 'f', -1, 64))
	q.Set("rate", strconv.FormatFloat(rate, 'f', -1, 64))
	q.Set("bonus", strconv.FormatFloat(bonus, 'f', -1, 64))
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return get[*model.Estimate](ctx, c, "/calculator", q)
}

// ListTrackedBonuses возвращает отслеживаемые бонусы обоих участников без кэширования.
func (c *Client) ListTrackedBonuses(ctx context.Context) ([]model.TrackedBonus, error) {
	return get[[]model.TrackedBonus](ctx, c, "/tracked-bonuses", nil)
}

// GetTrackedBonus возвращает отслеживаемый бонус без кэширования.
func (c *Client) GetTrackedBonus(ctx context.Context, id int64) (*model.TrackedBonusView, error) {
	return get[*model.TrackedBonusView](ctx, c, fmt.Sprintf("/tracked-bonuses/%d", id), nil)
}

func trackedQuery(f catalog.TrackedFilter) url.Values {
	q := url.Values{}
	if f.Status != "" && f.Status != catalog.StatusAll {
		q.Set("status", f.Status)
	}
	if f.ShowArchived {
		q.Set("archived", "true")
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	return q
}

// ListPlayerTrackedBonuses возвращает бонусы участника с вычисляемыми полями.
func (c *Client) ListPlayerTrackedBonuses(ctx context.Context, playerID int64, f catalog.TrackedFilter) ([]model.TrackedBonusView, error) {
	q := trackedQuery(f)
	return cachedGet[[]model.TrackedBonusView](ctx, c,
		queryKey(keyPlayerTracked(playerID), q),
		fmt.Sprintf("/players/%d/tracked-bonuses", playerID), q)
}

// CreateTrackedBonus начинает отслеживание бонуса.
func (c *Client) CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error) {
	var out model.TrackedBonusView
	if err := c.do(ctx, http.MethodPost, "/tracked-bonuses", nil, tb, &out); err != nil {
		return nil, err
	}
	c.invalidate(playerTrackedPattern(tb.PlayerID), keyDashboard)
	return &out, nil
}

// UpdateTrackedBonus заменяет поля отслеживаемого бонуса.
func (c *Client) UpdateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error) {
	var out model.TrackedBonusView
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tracked-bonuses/%d", tb.ID), nil, tb, &out); err != nil {
		return nil, err
	}
	c.invalidate(playerTrackedPattern(tb.PlayerID), keyDashboard)
	return &out, nil
}

// UpdateTrackedStatus меняет статус отслеживаемого бонуса.
func (c *Client) UpdateTrackedStatus(ctx context.Context, id int64, upd lifecycle.StatusUpdate) (*model.TrackedBonusView, error) {
	var out model.TrackedBonusView
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tracked-bonuses/%d/status", id), nil, upd, &out); err != nil {
		return nil, err
	}
	c.invalidate(playerTrackedPattern(out.PlayerID), keyDashboard)
	return &out, nil
}

// DeleteTrackedBonus прекращает отслеживание. Владелец записи неизвестен,
// поэтому сбрасываются списки обоих участников.
func (c *Client) DeleteTrackedBonus(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tracked-bonuses/%d", id), nil, nil, nil); err != nil {
		return err
	}
	c.invalidate(allPlayerTracked, keyDashboard)
	return nil
}

// GetPlayerSettings возвращает настройки участника.
func (c *Client) GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error) {
	return cachedGet[*model.PlayerSettings](ctx, c, keyPlayerSettings(playerID), fmt.Sprintf("/player-settings/%d", playerID), nil)
}

// UpdatePlayerSettings сохраняет настройки участника.
func (c *Client) UpdatePlayerSettings(ctx context.Context, ps model.PlayerSettings) (*model.PlayerSettings, error) {
	var out model.PlayerSettings
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/player-settings/%d", ps.PlayerID), nil, ps, &out); err != nil {
		return nil, err
	}
	c.invalidate(keyPlayerSettings(ps.PlayerID))
	return &out, nil
}

// GetDashboard возвращает сводку по домохозяйству.
func (c *Client) GetDashboard(ctx context.Context) (model.Dashboard, error) {
	return cachedGet[model.Dashboard](ctx, c, keyDashboard, "/dashboard", nil)
}

// Preload параллельно прогревает кэш банков, каталога и сводки.
func (c *Client) Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := c.ListBanks(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.ListBonuses(ctx, catalog.BonusFilter{}, "", false)
		return err
	})
	g.Go(func() error {
		_, err := c.GetDashboard(ctx)
		return err
	})

	return g.Wait()
}
