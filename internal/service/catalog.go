package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/earnings"
	"github.com/mmeshcher/bonus-tracker/internal/model"
	"github.com/mmeshcher/bonus-tracker/internal/repository"
	"github.com/mmeshcher/bonus-tracker/internal/seed"
	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

// CreateBank создаёт банк.
func (s *Service) CreateBank(ctx context.Context, b model.Bank) (*model.Bank, error) {
	if err := validation.ValidateBank(b); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateBank(ctx, b)
	if err != nil {
		return nil, err
	}
	s.invalidate(keyBanks)

	return s.repo.GetBank(ctx, id)
}

// UpdateBank обновляет банк.
func (s *Service) UpdateBank(ctx context.Context, b model.Bank) (*model.Bank, error) {
	if err := validation.ValidateBank(b); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBank(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(keyBanks, keyBank(b.ID), keyDashboards)

	return s.repo.GetBank(ctx, b.ID)
}

// DeleteBank удаляет банк.
func (s *Service) DeleteBank(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBank(ctx, id); err != nil {
		return err
	}
	s.invalidate(keyBanks, keyBank(id), keyBankBonuses(id))
	return nil
}

// ListBonuses возвращает бонусы каталога, отфильтрованные и отсортированные.
// Пустое поле сортировки сохраняет порядок хранилища.
func (s *Service) ListBonuses(ctx context.Context, f catalog.BonusFilter, sortBy string, desc bool) ([]model.Bonus, error) {
	all, err := cached(ctx, s, keyBonuses, s.repo.ListBonuses)
	if err != nil {
		return nil, err
	}

	res := catalog.FilterBonuses(all, f)
	if sortBy != "" {
		catalog.SortBonuses(res, sortBy, desc)
	}
	return res, nil
}

// GetBonus возвращает бонус по идентификатору.
func (s *Service) GetBonus(ctx context.Context, id int64) (*model.Bonus, error) {
	return cached(ctx, s, keyBonus(id), func(ctx context.Context) (*model.Bonus, error) {
		return s.repo.GetBonus(ctx, id)
	})
}

func (s *Service) lookupBonus(ctx context.Context, id int64) (*model.Bonus, error) {
	b, err := s.GetBonus(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// ListBankBonuses возвращает бонусы банка.
func (s *Service) ListBankBonuses(ctx context.Context, bankID int64) ([]model.Bonus, error) {
	if _, err := s.GetBank(ctx, bankID); err != nil {
		return nil, err
	}
	return cached(ctx, s, keyBankBonuses(bankID), func(ctx context.Context) ([]model.Bonus, error) {
		return s.repo.ListBonusesByBank(ctx, bankID)
	})
}

// CreateBonus создаёт бонус.
func (s *Service) CreateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error) {
	if err := validation.ValidateBonus(b); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateBonus(ctx, b)
	if err != nil {
		return nil, err
	}
	s.invalidate(keyBonuses, keyBankBonuses(b.BankID))

	return s.repo.GetBonus(ctx, id)
}

// UpdateBonus обновляет бонус.
func (s *Service) UpdateBonus(ctx context.Context, b model.Bonus) (*model.Bonus, error) {
	if err := validation.ValidateBonus(b); err != nil {
		return nil, err
	}

	prev, err := s.repo.GetBonus(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBonus(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(keyBonuses, keyBonus(b.ID), keyBankBonuses(prev.BankID), keyBankBonuses(b.BankID), keyDashboards)

	return s.repo.GetBonus(ctx, b.ID)
}

// DeleteBonus удаляет бонус.
func (s *Service) DeleteBonus(ctx context.Context, id int64) error {
	prev, err := s.repo.GetBonus(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBonus(ctx, id); err != nil {
		return err
	}
	s.invalidate(keyBonuses, keyBonus(id), keyBankBonuses(prev.BankID))
	return nil
}

// EstimateEarnings рассчитывает доходность бонуса. При days <= 0 берётся срок удержания бонуса.
func (s *Service) EstimateEarnings(ctx context.Context, bonusID int64, deposit float64, days int) (*model.Estimate, error) {
	b, err := s.GetBonus(ctx, bonusID)
	if err != nil {
		return nil, err
	}

	est := earnings.Estimate(*b, deposit, days)
	return &est, nil
}

// Seed заполняет пустой каталог и возвращает число добавленных бонусов.
// Если банки уже есть, каталог не меняется.
func (s *Service) Seed(ctx context.Context, c *seed.Catalog) (int, error) {
	banks, err := s.repo.ListBanks(ctx)
	if err != nil {
		return 0, err
	}
	if len(banks) > 0 {
		return 0, nil
	}

	added := 0
	for _, entry := range c.Banks {
		bankID, err := s.repo.CreateBank(ctx, entry.Bank())
		if err != nil {
			return added, err
		}
		for _, be := range entry.Bonuses {
			b, err := be.Bonus(bankID)
			if err != nil {
				return added, err
			}
			if _, err := s.repo.CreateBonus(ctx, b); err != nil {
				return added, err
			}
			added++
		}
	}

	s.cache.Clear()
	return added, nil
}
