package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/bonus-tracker/internal/validation"
)

const catalogYAML = `
banks:
  - name: Chase
    website: https://www.chase.com
    bonuses:
      - title: Total Checking $300
        bonus_amount: 300
        interest_rate: 0.01
        holding_period: 90
        direct_deposit_required: true
        direct_deposit_amount: 500
        direct_deposit_frequency: once
        expiration_date: "2025-07-15"
  - name: Citi
    bonuses:
      - title: Savings $500
        bonus_amount: 500
        interest_rate: 4.3
        holding_period: 60
        min_deposit: 15000
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Banks, 2)

	chase := c.Banks[0]
	assert.Equal(t, "Chase", chase.Bank().Name)
	assert.Equal(t, "https://www.chase.com", chase.Bank().Website)
	require.Len(t, chase.Bonuses, 1)

	b, err := chase.Bonuses[0].Bonus(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.BankID)
	assert.Equal(t, 300.0, b.BonusAmount)
	assert.True(t, b.DirectDepositRequired)
	require.NotNil(t, b.ExpirationDate)
	assert.Equal(t, "2025-07-15", b.ExpirationDate.String())

	citi, err := c.Banks[1].Bonuses[0].Bonus(8)
	require.NoError(t, err)
	assert.Nil(t, citi.ExpirationDate)
	assert.Equal(t, 15000.0, citi.MinDeposit)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("banks:\n  - name: ''\n"))
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = Parse([]byte("banks:\n  - name: Chase\n    bonuses:\n      - title: ''\n"))
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = Parse([]byte("banks:\n  - name: Chase\n    bonuses:\n      - title: X\n        expiration_date: soon\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("banks: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
