package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

const trackedColumns = `id, player_id, bonus_id, status, application_date, account_open_date,
	direct_deposit_date, bonus_received_date, completion_date, direct_deposit_complete,
	actual_earnings, is_active, notes, created_at, updated_at`

func scanTracked(row pgx.Row) (model.TrackedBonus, error) {
	var (
		tb        model.TrackedBonus
		status    string
		applied   *time.Time
		opened    *time.Time
		deposited *time.Time
		received  *time.Time
		done      *time.Time
		actual    int64
	)

	err := row.Scan(&tb.ID, &tb.PlayerID, &tb.BonusID, &status, &applied, &opened,
		&deposited, &received, &done, &tb.DirectDepositComplete,
		&actual, &tb.IsActive, &tb.Notes, &tb.CreatedAt, &tb.UpdatedAt)
	if err != nil {
		return model.TrackedBonus{}, err
	}

	tb.Status = model.BonusStatus(status)
	tb.ApplicationDate = model.DateFromTime(applied)
	tb.AccountOpenDate = model.DateFromTime(opened)
	tb.DirectDepositDate = model.DateFromTime(deposited)
	tb.BonusReceivedDate = model.DateFromTime(received)
	tb.CompletionDate = model.DateFromTime(done)
	tb.ActualEarnings = fromCents(actual)

	return tb, nil
}

func (r *PostgresRepository) queryTracked(ctx context.Context, query string, args ...any) ([]model.TrackedBonus, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tracked bonuses: %w", err)
	}
	defer rows.Close()

	res := make([]model.TrackedBonus, 0)
	for rows.Next() {
		tb, err := scanTracked(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tracked bonus: %w", err)
		}
		res = append(res, tb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListTrackedBonuses возвращает все отслеживаемые бонусы.
func (r *PostgresRepository) ListTrackedBonuses(ctx context.Context) ([]model.TrackedBonus, error) {
	return r.queryTracked(ctx,
		`SELECT `+trackedColumns+` FROM tracked_bonuses ORDER BY created_at DESC, id DESC`,
	)
}

// ListTrackedBonusesByPlayer возвращает отслеживаемые бонусы участника.
func (r *PostgresRepository) ListTrackedBonusesByPlayer(ctx context.Context, playerID int64) ([]model.TrackedBonus, error) {
	return r.queryTracked(ctx,
		`SELECT `+trackedColumns+` FROM tracked_bonuses WHERE player_id = $1 ORDER BY created_at DESC, id DESC`,
		playerID,
	)
}

// GetTrackedBonus возвращает отслеживаемый бонус по идентификатору.
func (r *PostgresRepository) GetTrackedBonus(ctx context.Context, id int64) (*model.TrackedBonus, error) {
	tb, err := scanTracked(r.pool.QueryRow(ctx,
		`SELECT `+trackedColumns+` FROM tracked_bonuses WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tracked bonus: %w", err)
	}
	return &tb, nil
}

// CreateTrackedBonus создаёт отслеживаемый бонус и возвращает его идентификатор.
func (r *PostgresRepository) CreateTrackedBonus(ctx context.Context, tb model.TrackedBonus) (int64, error) {
	var id int64
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO tracked_bonuses (player_id, bonus_id, status, application_date, account_open_date,
				direct_deposit_date, bonus_received_date, completion_date, direct_deposit_complete,
				actual_earnings, is_active, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id`,
			tb.PlayerID, tb.BonusID, string(tb.Status), tb.ApplicationDate.TimePtr(), tb.AccountOpenDate.TimePtr(),
			tb.DirectDepositDate.TimePtr(), tb.BonusReceivedDate.TimePtr(), tb.CompletionDate.TimePtr(),
			tb.DirectDepositComplete, toCents(tb.ActualEarnings), tb.IsActive, tb.Notes,
		).Scan(&id)
	})
	if err != nil {
		return 0, mapWriteErr(err, "create tracked bonus")
	}
	return id, nil
}

// UpdateTrackedBonus сохраняет все поля отслеживаемого бонуса.
func (r *PostgresRepository) UpdateTrackedBonus(ctx context.Context, tb model.TrackedBonus) error {
	return r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE tracked_bonuses SET player_id = $2, bonus_id = $3, status = $4,
				application_date = $5, account_open_date = $6, direct_deposit_date = $7,
				bonus_received_date = $8, completion_date = $9, direct_deposit_complete = $10,
				actual_earnings = $11, is_active = $12, notes = $13, updated_at = now()
			 WHERE id = $1`,
			tb.ID, tb.PlayerID, tb.BonusID, string(tb.Status),
			tb.ApplicationDate.TimePtr(), tb.AccountOpenDate.TimePtr(), tb.DirectDepositDate.TimePtr(),
			tb.BonusReceivedDate.TimePtr(), tb.CompletionDate.TimePtr(), tb.DirectDepositComplete,
			toCents(tb.ActualEarnings), tb.IsActive, tb.Notes,
		)
		if err != nil {
			return mapWriteErr(err, "update tracked bonus")
		}
		return rowsAffected(tag, "update tracked bonus")
	})
}

// DeleteTrackedBonus удаляет отслеживаемый бонус и возвращает идентификатор его участника.
func (r *PostgresRepository) DeleteTrackedBonus(ctx context.Context, id int64) (int64, error) {
	var playerID int64
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`DELETE FROM tracked_bonuses WHERE id = $1 RETURNING player_id`,
			id,
		).Scan(&playerID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, mapWriteErr(err, "delete tracked bonus")
	}
	return playerID, nil
}
