package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

const bonusColumns = `id, bank_id, title, bonus_amount, interest_rate, holding_period,
	direct_deposit_required, direct_deposit_amount, direct_deposit_frequency, min_deposit,
	expiration_date, additional_requirements, terms_conditions, created_at`

func scanBonus(row pgx.Row) (model.Bonus, error) {
	var (
		b          model.Bonus
		amount     int64
		ddAmount   int64
		minDeposit int64
		expiration *time.Time
	)

	err := row.Scan(&b.ID, &b.BankID, &b.Title, &amount, &b.InterestRate, &b.HoldingPeriod,
		&b.DirectDepositRequired, &ddAmount, &b.DirectDepositFrequency, &minDeposit,
		&expiration, &b.AdditionalRequirements, &b.TermsConditions, &b.CreatedAt)
	if err != nil {
		return model.Bonus{}, err
	}

	b.BonusAmount = fromCents(amount)
	b.DirectDepositAmount = fromCents(ddAmount)
	b.MinDeposit = fromCents(minDeposit)
	b.ExpirationDate = model.DateFromTime(expiration)

	return b, nil
}

func (r *PostgresRepository) queryBonuses(ctx context.Context, query string, args ...any) ([]model.Bonus, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select bonuses: %w", err)
	}
	defer rows.Close()

	bonuses := make([]model.Bonus, 0)
	for rows.Next() {
		b, err := scanBonus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return bonuses, nil
}

// ListBonuses возвращает все бонусы, самые крупные первыми.
func (r *PostgresRepository) ListBonuses(ctx context.Context) ([]model.Bonus, error) {
	return r.queryBonuses(ctx,
		`SELECT `+bonusColumns+` FROM bonuses ORDER BY bonus_amount DESC, id`,
	)
}

// ListBonusesByBank возвращает бонусы указанного банка.
func (r *PostgresRepository) ListBonusesByBank(ctx context.Context, bankID int64) ([]model.Bonus, error) {
	return r.queryBonuses(ctx,
		`SELECT `+bonusColumns+` FROM bonuses WHERE bank_id = $1 ORDER BY bonus_amount DESC, id`,
		bankID,
	)
}

// GetBonus возвращает бонус по идентификатору.
func (r *PostgresRepository) GetBonus(ctx context.Context, id int64) (*model.Bonus, error) {
	b, err := scanBonus(r.pool.QueryRow(ctx,
		`SELECT `+bonusColumns+` FROM bonuses WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bonus: %w", err)
	}
	return &b, nil
}

// CreateBonus создаёт бонус и возвращает его идентификатор.
func (r *PostgresRepository) CreateBonus(ctx context.Context, b model.Bonus) (int64, error) {
	var id int64
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO bonuses (bank_id, title, bonus_amount, interest_rate, holding_period,
				direct_deposit_required, direct_deposit_amount, direct_deposit_frequency, min_deposit,
				expiration_date, additional_requirements, terms_conditions)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id`,
			b.BankID, b.Title, toCents(b.BonusAmount), b.InterestRate, b.HoldingPeriod,
			b.DirectDepositRequired, toCents(b.DirectDepositAmount), b.DirectDepositFrequency, toCents(b.MinDeposit),
			b.ExpirationDate.TimePtr(), b.AdditionalRequirements, b.TermsConditions,
		).Scan(&id)
	})
	if err != nil {
		return 0, mapWriteErr(err, "create bonus")
	}
	return id, nil
}

// UpdateBonus обновляет бонус.
func (r *PostgresRepository) UpdateBonus(ctx context.Context, b model.Bonus) error {
	return r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE bonuses SET bank_id = $2, title = $3, bonus_amount = $4, interest_rate = $5,
				holding_period = $6, direct_deposit_required = $7, direct_deposit_amount = $8,
				direct_deposit_frequency = $9, min_deposit = $10, expiration_date = $11,
				additional_requirements = $12, terms_conditions = $13
			 WHERE id = $1`,
			b.ID, b.BankID, b.Title, toCents(b.BonusAmount), b.InterestRate,
			b.HoldingPeriod, b.DirectDepositRequired, toCents(b.DirectDepositAmount),
			b.DirectDepositFrequency, toCents(b.MinDeposit), b.ExpirationDate.TimePtr(),
			b.AdditionalRequirements, b.TermsConditions,
		)
		if err != nil {
			return mapWriteErr(err, "update bonus")
		}
		return rowsAffected(tag, "update bonus")
	})
}

// DeleteBonus удаляет бонус, который никто не отслеживает.
func (r *PostgresRepository) DeleteBonus(ctx context.Context, id int64) error {
	return r.withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM bonuses WHERE id = $1`, id)
		if err != nil {
			return mapWriteErr(err, "delete bonus")
		}
		return rowsAffected(tag, "delete bonus")
	})
}
