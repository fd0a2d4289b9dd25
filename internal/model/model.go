// Package model содержит доменные сущности трекера банковских бонусов.
package model

import (
	"fmt"
	"time"
)

// BonusStatus описывает этап, на котором находится отслеживаемый бонус.
type BonusStatus string

const (
	StatusPlanned         BonusStatus = "planned"
	StatusApplied         BonusStatus = "applied"
	StatusAccountOpened   BonusStatus = "account_opened"
	StatusRequirementsMet BonusStatus = "requirements_met"
	StatusBonusReceived   BonusStatus = "bonus_received"
	StatusCompleted       BonusStatus = "completed"
	StatusFailed          BonusStatus = "failed"
)

// Statuses перечисляет все известные статусы в каноническом порядке.
var Statuses = []BonusStatus{
	StatusPlanned,
	StatusApplied,
	StatusAccountOpened,
	StatusRequirementsMet,
	StatusBonusReceived,
	StatusCompleted,
	StatusFailed,
}

// Bank описывает банк, предлагающий бонусы.
type Bank struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Bonus описывает условия предложения банка.
type Bonus struct {
	ID                     int64     `json:"id"`
	BankID                 int64     `json:"bank_id"`
	Title                  string    `json:"title"`
	BonusAmount            float64   `json:"bonus_amount"`
	InterestRate           float64   `json:"interest_rate"`
	HoldingPeriod          int       `json:"holding_period"`
	DirectDepositRequired  bool      `json:"direct_deposit_required"`
	DirectDepositAmount    float64   `json:"direct_deposit_amount"`
	DirectDepositFrequency string    `json:"direct_deposit_frequency,omitempty"`
	MinDeposit             float64   `json:"min_deposit"`
	ExpirationDate         *Date     `json:"expiration_date"`
	AdditionalRequirements string    `json:"additional_requirements,omitempty"`
	TermsConditions        string    `json:"terms_conditions,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// TrackedBonus описывает попытку одного участника получить один бонус.
type TrackedBonus struct {
	ID                    int64       `json:"id"`
	PlayerID              int64       `json:"player_id"`
	BonusID               int64       `json:"bonus_id"`
	Status                BonusStatus `json:"status"`
	ApplicationDate       *Date       `json:"application_date"`
	AccountOpenDate       *Date       `json:"account_open_date"`
	DirectDepositDate     *Date       `json:"direct_deposit_date"`
	BonusReceivedDate     *Date       `json:"bonus_received_date"`
	CompletionDate        *Date       `json:"completion_date"`
	DirectDepositComplete bool        `json:"direct_deposit_complete"`
	ActualEarnings        float64     `json:"actual_earnings"`
	IsActive              bool        `json:"is_active"`
	Notes                 string      `json:"notes"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// PlayerSettings содержит настройки участника.
type PlayerSettings struct {
	PlayerID             int64   `json:"player_id"`
	PlayerName           string  `json:"player_name"`
	EmailNotifications   bool    `json:"email_notifications"`
	DefaultDepositAmount float64 `json:"default_deposit_amount"`
}

// DefaultPlayerSettings возвращает настройки, используемые, пока участник их не сохранил.
func DefaultPlayerSettings(playerID int64) PlayerSettings {
	return PlayerSettings{
		PlayerID:             playerID,
		PlayerName:           fmt.Sprintf("Player %d", playerID),
		EmailNotifications:   true,
		DefaultDepositAmount: 1000,
	}
}

// Milestone описывает пункт чек-листа прогресса.
type Milestone struct {
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
	Date     *Date  `json:"date,omitempty"`
}

// TrackedBonusView объединяет отслеживаемый бонус со связанными сущностями и производными значениями.
type TrackedBonusView struct {
	TrackedBonus
	Bonus       *Bonus      `json:"bonus,omitempty"`
	Bank        *Bank       `json:"bank,omitempty"`
	StatusLabel string      `json:"status_label"`
	Progress    int         `json:"progress"`
	NextStep    string      `json:"next_step"`
	Checklist   []Milestone `json:"checklist"`
	DueDate     *Date       `json:"due_date"`
}

// Title возвращает название бонуса или пустую строку, если бонус не загружен.
func (v TrackedBonusView) Title() string {
	if v.Bonus == nil {
		return ""
	}
	return v.Bonus.Title
}

// Estimate содержит результат расчёта доходности бонуса.
type Estimate struct {
	Deposit        float64 `json:"deposit"`
	HoldingDays    int     `json:"holding_days"`
	BonusAmount    float64 `json:"bonus_amount"`
	InterestEarned float64 `json:"interest_earned"`
	TotalEarnings  float64 `json:"total_earnings"`
	AnnualizedROI  float64 `json:"annualized_roi"`
}
