// Package seed загружает начальный каталог банков и бонусов из YAML.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmeshcher/bonus-tracker/internal/model"
	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

// Catalog описывает содержимое файла каталога.
type Catalog struct {
	Banks []BankEntry `yaml:"banks"`
}

// BankEntry описывает банк вместе с его бонусами.
type BankEntry struct {
	Name    string       `yaml:"name"`
	Website string       `yaml:"website"`
	Notes   string       `yaml:"notes"`
	Bonuses []BonusEntry `yaml:"bonuses"`
}

// BonusEntry описывает бонус в файле каталога.
type BonusEntry struct {
	Title                  string  `yaml:"title"`
	BonusAmount            float64 `yaml:"bonus_amount"`
	InterestRate           float64 `yaml:"interest_rate"`
	HoldingPeriod          int     `yaml:"holding_period"`
	DirectDepositRequired  bool    `yaml:"direct_deposit_required"`
	DirectDepositAmount    float64 `yaml:"direct_deposit_amount"`
	DirectDepositFrequency string  `yaml:"direct_deposit_frequency"`
	MinDeposit             float64 `yaml:"min_deposit"`
	ExpirationDate         string  `yaml:"expiration_date"`
	AdditionalRequirements string  `yaml:"additional_requirements"`
	TermsConditions        string  `yaml:"terms_conditions"`
}

// Bank возвращает доменную модель банка.
func (e BankEntry) Bank() model.Bank {
	return model.Bank{Name: e.Name, Website: e.Website, Notes: e.Notes}
}

// Bonus возвращает доменную модель бонуса для банка bankID.
func (e BonusEntry) Bonus(bankID int64) (model.Bonus, error) {
	b := model.Bonus{
		BankID:                 bankID,
		Title:                  e.Title,
		BonusAmount:            e.BonusAmount,
		InterestRate:           e.InterestRate,
		HoldingPeriod:          e.HoldingPeriod,
		DirectDepositRequired:  e.DirectDepositRequired,
		DirectDepositAmount:    e.DirectDepositAmount,
		DirectDepositFrequency: e.DirectDepositFrequency,
		MinDeposit:             e.MinDeposit,
		AdditionalRequirements: e.AdditionalRequirements,
		TermsConditions:        e.TermsConditions,
	}

	if e.ExpirationDate != "" {
		d, err := model.ParseDate(e.ExpirationDate)
		if err != nil {
			return model.Bonus{}, fmt.Errorf("bonus %q: %w", e.Title, err)
		}
		b.ExpirationDate = &d
	}

	return b, nil
}

// Load читает и проверяет файл каталога.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет каталог.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	for _, bank := range c.Banks {
		if err := validation.ValidateBank(bank.Bank()); err != nil {
			return nil, err
		}
		for _, entry := range bank.Bonuses {
			// bank_id ещё не известен, проверяем остальные поля с временным значением
			b, err := entry.Bonus(1)
			if err != nil {
				return nil, err
			}
			if err := validation.ValidateBonus(b); err != nil {
				return nil, fmt.Errorf("bank %q: %w", bank.Name, err)
			}
		}
	}

	return &c, nil
}
