package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/dashboard"
	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
	"github.com/mmeshcher/bonus-tracker/internal/repository"
	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

// view дополняет отслеживаемый бонус данными каталога и вычисляемыми полями.
func (s *Service) view(ctx context.Context, tb model.TrackedBonus) (model.TrackedBonusView, error) {
	bonus, err := s.lookupBonus(ctx, tb.BonusID)
	if err != nil {
		return model.TrackedBonusView{}, err
	}

	var bank *model.Bank
	if bonus != nil {
		if bank, err = s.lookupBank(ctx, bonus.BankID); err != nil {
			return model.TrackedBonusView{}, err
		}
	}

	return lifecycle.View(tb, bonus, bank, s.today()), nil
}

func (s *Service) viewByID(ctx context.Context, id int64) (*model.TrackedBonusView, error) {
	tb, err := s.repo.GetTrackedBonus(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := s.view(ctx, *tb)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListTrackedBonuses возвращает все отслеживаемые бонусы обоих участников.
func (s *Service) ListTrackedBonuses(ctx context.Context) ([]model.TrackedBonus, error) {
	return s.repo.ListTrackedBonuses(ctx)
}

// GetTrackedBonus возвращает отслеживаемый бонус с вычисляемыми полями.
func (s *Service) GetTrackedBonus(ctx context.Context, id int64) (*model.TrackedBonusView, error) {
	return s.viewByID(ctx, id)
}

// ListPlayerTrackedBonuses возвращает бонусы участника, отобранные фильтром:
// сначала активные, затем по этапу жизненного цикла.
func (s *Service) ListPlayerTrackedBonuses(ctx context.Context, playerID int64, f catalog.TrackedFilter) ([]model.TrackedBonusView, error) {
	if !validation.IsValidPlayerID(playerID) {
		return nil, validation.ErrInvalid
	}

	list, err := s.repo.ListTrackedBonusesByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]model.TrackedBonusView, 0, len(list))
	for _, tb := range list {
		v, err := s.view(ctx, tb)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	views = catalog.FilterTracked(views, f)
	catalog.SortTracked(views)
	return views, nil
}

// CreateTrackedBonus начинает отслеживание бонуса. Пустой статус считается planned.
func (s *Service) CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error) {
	if tb.Status == "" {
		tb.Status = model.StatusPlanned
	}
	if err := validation.ValidateTrackedBonus(tb); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateTrackedBonus(ctx, tb)
	if err != nil {
		return nil, err
	}
	s.invalidate(keyDashboards)

	return s.viewByID(ctx, id)
}

// UpdateTrackedBonus полностью заменяет поля отслеживаемого бонуса.
func (s *Service) UpdateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (*model.TrackedBonusView, error) {
	if err := validation.ValidateTrackedBonus(tb); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTrackedBonus(ctx, tb); err != nil {
		return nil, err
	}
	s.invalidate(keyDashboards)

	return s.viewByID(ctx, tb.ID)
}

// UpdateTrackedStatus применяет ручную смену статуса: выставляет дату вехи
// и дописывает заметку. Пустая дата заменяется сегодняшней.
func (s *Service) UpdateTrackedStatus(ctx context.Context, id int64, upd lifecycle.StatusUpdate) (*model.TrackedBonusView, error) {
	if !lifecycle.IsKnown(upd.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", validation.ErrInvalid, upd.Status)
	}
	if upd.Date.IsZero() {
		upd.Date = s.today()
	}

	tb, err := s.repo.GetTrackedBonus(ctx, id)
	if err != nil {
		return nil, err
	}

	bonus, err := s.lookupBonus(ctx, tb.BonusID)
	if err != nil {
		return nil, err
	}

	lifecycle.ApplyStatus(tb, bonus, upd)

	if err := s.repo.UpdateTrackedBonus(ctx, *tb); err != nil {
		return nil, err
	}
	s.invalidate(keyDashboards)

	return s.viewByID(ctx, id)
}

// DeleteTrackedBonus прекращает отслеживание бонуса.
func (s *Service) DeleteTrackedBonus(ctx context.Context, id int64) error {
	if _, err := s.repo.DeleteTrackedBonus(ctx, id); err != nil {
		return err
	}
	s.invalidate(keyDashboards)
	return nil
}

// GetPlayerSettings возвращает настройки участника или значения по умолчанию.
func (s *Service) GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error) {
	if !validation.IsValidPlayerID(playerID) {
		return nil, validation.ErrInvalid
	}

	return cached(ctx, s, keyPlayerSettings(playerID), func(ctx context.Context) (*model.PlayerSettings, error) {
		ps, err := s.repo.GetPlayerSettings(ctx, playerID)
		if errors.Is(err, repository.ErrNotFound) {
			def := model.DefaultPlayerSettings(playerID)
			return &def, nil
		}
		return ps, err
	})
}

// UpdatePlayerSettings сохраняет настройки участника.
func (s *Service) UpdatePlayerSettings(ctx context.Context, ps model.PlayerSettings) (*model.PlayerSettings, error) {
	if err := validation.ValidatePlayerSettings(ps); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertPlayerSettings(ctx, ps); err != nil {
		return nil, err
	}
	s.invalidate(keyPlayerSettings(ps.PlayerID), keyDashboards)

	return &ps, nil
}

// GetDashboard возвращает сводку по участникам и домохозяйству.
func (s *Service) GetDashboard(ctx context.Context) (model.Dashboard, error) {
	today := s.today()
	return cached(ctx, s, keyDashboard(today), func(ctx context.Context) (model.Dashboard, error) {
		return s.buildDashboard(ctx, today)
	})
}

func (s *Service) buildDashboard(ctx context.Context, today model.Date) (model.Dashboard, error) {
	stored, err := s.repo.ListPlayerSettings(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	byID := make(map[int64]model.PlayerSettings, len(stored))
	for _, ps := range stored {
		byID[ps.PlayerID] = ps
	}
	players := make([]model.PlayerSettings, 0, validation.MaxPlayers)
	for id := int64(1); id <= validation.MaxPlayers; id++ {
		ps, ok := byID[id]
		if !ok {
			ps = model.DefaultPlayerSettings(id)
		}
		players = append(players, ps)
	}

	tracked, err := s.repo.ListTrackedBonuses(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}
	bonuses, err := cached(ctx, s, keyBonuses, s.repo.ListBonuses)
	if err != nil {
		return model.Dashboard{}, err
	}
	banks, err := s.ListBanks(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	return dashboard.Build(dashboard.Input{
		Players: players,
		Tracked: tracked,
		Bonuses: bonuses,
		Banks:   banks,
	}, today), nil
}
