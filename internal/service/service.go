// Package service реализует бизнес-логику трекера банковских бонусов.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmeshcher/bonus-tracker/internal/cache"
	"github.com/mmeshcher/bonus-tracker/internal/model"
	"github.com/mmeshcher/bonus-tracker/internal/repository"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	ListBanks(ctx context.Context) ([]model.Bank, error)
	GetBank(ctx context.Context, id int64) (*model.Bank, error)
	CreateBank(ctx context.Context, b model.Bank) (int64, error)
	UpdateBank(ctx context.Context, b model.Bank) error
	DeleteBank(ctx context.Context, id int64) error

	ListBonuses(ctx context.Context) ([]model.Bonus, error)
	ListBonusesByBank(ctx context.Context, bankID int64) ([]model.Bonus, error)
	GetBonus(ctx context.Context, id int64) (*model.Bonus, error)
	CreateBonus(ctx context.Context, b model.Bonus) (int64, error)
	UpdateBonus(ctx context.Context, b model.Bonus) error
	DeleteBonus(ctx context.Context, id int64) error

	ListTrackedBonuses(ctx context.Context) ([]model.TrackedBonus, error)
	ListTrackedBonusesByPlayer(ctx context.Context, playerID int64) ([]model.TrackedBonus, error)
	GetTrackedBonus(ctx context.Context, id int64) (*model.TrackedBonus, error)
	CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (int64, error)
	UpdateTrackedBonus(ctx context.Context, tb model.TrackedBonus) error
	DeleteTrackedBonus(ctx context.Context, id int64) (int64, error)

	ListPlayerSettings(ctx context.Context) ([]model.PlayerSettings, error)
	GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error)
	UpsertPlayerSettings(ctx context.Context, s model.PlayerSettings) error
}

// Ключи кэша.
const (
	keyBanks      = "banks"
	keyBonuses    = "bonuses"
	keyDashboards = "dashboard:*"
)

// keyDashboard привязан к дате: сроки в сводке отсчитываются от сегодняшнего дня.
func keyDashboard(day model.Date) string { return "dashboard:" + day.String() }

func keyBank(id int64) string           { return fmt.Sprintf("bank:%d", id) }
func keyBonus(id int64) string          { return fmt.Sprintf("bonus:%d", id) }
func keyBankBonuses(id int64) string    { return fmt.Sprintf("bank-bonuses:%d", id) }
func keyPlayerSettings(id int64) string { return fmt.Sprintf("player-settings:%d", id) }

// Service содержит бизнес-логику трекера.
type Service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService создаёт сервис с указанным репозиторием и кэшем чтения.
func NewService(repo Repository, c *cache.Cache, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

func (s *Service) today() model.Date {
	return model.DateOf(s.now())
}

func (s *Service) invalidate(patterns ...string) {
	for _, p := range patterns {
		s.cache.Invalidate(p)
	}
}

func cached[T any](ctx context.Context, s *Service, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	return cache.GetOrFetch(ctx, s.cache, key, s.cacheTTL, fetch)
}

// ListBanks возвращает все банки.
func (s *Service) ListBanks(ctx context.Context) ([]model.Bank, error) {
	return cached(ctx, s, keyBanks, s.repo.ListBanks)
}

// GetBank возвращает банк по идентификатору.
func (s *Service) GetBank(ctx context.Context, id int64) (*model.Bank, error) {
	return cached(ctx, s, keyBank(id), func(ctx context.Context) (*model.Bank, error) {
		return s.repo.GetBank(ctx, id)
	})
}

// lookupBank возвращает nil, если банк удалён.
func (s *Service) lookupBank(ctx context.Context, id int64) (*model.Bank, error) {
	b, err := s.GetBank(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return b, err
}
