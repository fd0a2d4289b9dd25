package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// ListPlayerSettings возвращает настройки всех участников.
func (r *PostgresRepository) ListPlayerSettings(ctx context.Context) ([]model.PlayerSettings, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, player_name, email_notifications, default_deposit_amount
		 FROM player_settings
		 ORDER BY player_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select player settings: %w", err)
	}
	defer rows.Close()

	res := make([]model.PlayerSettings, 0, 2)
	for rows.Next() {
		var (
			s       model.PlayerSettings
			deposit int64
		)
		if err := rows.Scan(&s.PlayerID, &s.PlayerName, &s.EmailNotifications, &deposit); err != nil {
			return nil, fmt.Errorf("scan player settings: %w", err)
		}
		s.DefaultDepositAmount = fromCents(deposit)
		res = append(res, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// GetPlayerSettings возвращает настройки участника.
func (r *PostgresRepository) GetPlayerSettings(ctx context.Context, playerID int64) (*model.PlayerSettings, error) {
	var (
		s       model.PlayerSettings
		deposit int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT player_id, player_name, email_notifications, default_deposit_amount
		 FROM player_settings
		 WHERE player_id = $1`,
		playerID,
	).Scan(&s.PlayerID, &s.PlayerName, &s.EmailNotifications, &deposit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get player settings: %w", err)
	}
	s.DefaultDepositAmount = fromCents(deposit)
	return &s, nil
}

// UpsertPlayerSettings создаёт или обновляет настройки участника.
func (r *PostgresRepository) UpsertPlayerSettings(ctx context.Context, s model.PlayerSettings) error {
	return r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO player_settings (player_id, player_name, email_notifications, default_deposit_amount)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (player_id) DO UPDATE SET
				player_name = EXCLUDED.player_name,
				email_notifications = EXCLUDED.email_notifications,
				default_deposit_amount = EXCLUDED.default_deposit_amount`,
			s.PlayerID, s.PlayerName, s.EmailNotifications, toCents(s.DefaultDepositAmount),
		)
		if err != nil {
			return mapWriteErr(err, "upsert player settings")
		}
		return nil
	})
}
