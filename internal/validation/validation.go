// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmeshcher/bonus-tracker/internal/lifecycle"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

// MaxPlayers задаёт число участников в домохозяйстве.
const MaxPlayers = 2

// ErrInvalid оборачивает все ошибки валидации.
var ErrInvalid = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// IsValidPlayerID проверяет, что участник входит в домохозяйство.
func IsValidPlayerID(id int64) bool {
	return id >= 1 && id <= MaxPlayers
}

// ValidateBank проверяет поля банка.
func ValidateBank(b model.Bank) error {
	if strings.TrimSpace(b.Name) == "" {
		return invalid("bank name is required")
	}
	return nil
}

// ValidateBonus проверяет условия бонуса.
func ValidateBonus(b model.Bonus) error {
	if b.BankID <= 0 {
		return invalid("bank_id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return invalid("title is required")
	}
	if b.BonusAmount < 0 || b.DirectDepositAmount < 0 || b.MinDeposit < 0 {
		return invalid("amounts must not be negative")
	}
	if b.InterestRate < 0 {
		return invalid("interest_rate must not be negative")
	}
	if b.HoldingPeriod < 0 {
		return invalid("holding_period must not be negative")
	}
	return nil
}

// ValidateTrackedBonus проверяет отслеживаемый бонус.
func ValidateTrackedBonus(tb model.TrackedBonus) error {
	if !IsValidPlayerID(tb.PlayerID) {
		return invalid("player_id must be between 1 and %d", MaxPlayers)
	}
	if tb.BonusID <= 0 {
		return invalid("bonus_id is required")
	}
	if !lifecycle.IsKnown(tb.Status) {
		return invalid("unknown status %q", tb.Status)
	}
	if tb.ActualEarnings < 0 {
		return invalid("actual_earnings must not be negative")
	}
	return nil
}

// ValidatePlayerSettings проверяет настройки участника.
func ValidatePlayerSettings(s model.PlayerSettings) error {
	if !IsValidPlayerID(s.PlayerID) {
		return invalid("player_id must be between 1 and %d", MaxPlayers)
	}
	if strings.TrimSpace(s.PlayerName) == "" {
		return invalid("player_name is required")
	}
	if s.DefaultDepositAmount < 0 {
		return invalid("default_deposit_amount must not be negative")
	}
	return nil
}
