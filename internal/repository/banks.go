package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// ListBanks возвращает все банки по алфавиту.
func (r *PostgresRepository) ListBanks(ctx context.Context) ([]model.Bank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, website, notes, created_at FROM banks ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("select banks: %w", err)
	}
	defer rows.Close()

	banks := make([]model.Bank, 0)
	for rows.Next() {
		var b model.Bank
		if err := rows.Scan(&b.ID, &b.Name, &b.Website, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		banks = append(banks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return banks, nil
}

// GetBank возвращает банк по идентификатору.
func (r *PostgresRepository) GetBank(ctx context.Context, id int64) (*model.Bank, error) {
	var b model.Bank
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, website, notes, created_at FROM banks WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.Website, &b.Notes, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return &b, nil
}

// CreateBank создаёт банк и возвращает его идентификатор.
func (r *PostgresRepository) CreateBank(ctx context.Context, b model.Bank) (int64, error) {
	var id int64
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO banks (name, website, notes) VALUES ($1, $2, $3) RETURNING id`,
			b.Name, b.Website, b.Notes,
		).Scan(&id)
	})
	if err != nil {
		return 0, mapWriteErr(err, "create bank")
	}
	return id, nil
}

// UpdateBank обновляет банк.
func (r *PostgresRepository) UpdateBank(ctx context.Context, b model.Bank) error {
	return r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE banks SET name = $2, website = $3, notes = $4 WHERE id = $1`,
			b.ID, b.Name, b.Website, b.Notes,
		)
		if err != nil {
			return mapWriteErr(err, "update bank")
		}
		return rowsAffected(tag, "update bank")
	})
}

// DeleteBank удаляет банк без бонусов.
func (r *PostgresRepository) DeleteBank(ctx context.Context, id int64) error {
	return r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM banks WHERE id = $1`, id)
		if err != nil {
			return mapWriteErr(err, "delete bank")
		}
		return rowsAffected(tag, "delete bank")
	})
}
