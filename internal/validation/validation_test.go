package validation

import (
	"errors"
	"testing"

	"github.com/mmeshcher/bonus-tracker/internal/model"
)

func TestIsValidPlayerID(t *testing.T) {
	tests := []struct {
		id    int64
		valid bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := IsValidPlayerID(tt.id); got != tt.valid {
			t.Fatalf("IsValidPlayerID(%d) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestValidateBonus(t *testing.T) {
	valid := model.Bonus{BankID: 1, Title: "Checking $300", BonusAmount: 300, InterestRate: 0.01, HoldingPeriod: 90}

	tests := []struct {
		name  string
		mut   func(b *model.Bonus)
		valid bool
	}{
		{name: "valid", mut: func(b *model.Bonus) {}, valid: true},
		{name: "missing bank", mut: func(b *model.Bonus) { b.BankID = 0 }},
		{name: "blank title", mut: func(b *model.Bonus) { b.Title = "  " }},
		{name: "negative amount", mut: func(b *model.Bonus) { b.BonusAmount = -1 }},
		{name: "negative min deposit", mut: func(b *model.Bonus) { b.MinDeposit = -5 }},
		{name: "negative rate", mut: func(b *model.Bonus) { b.InterestRate = -0.1 }},
		{name: "negative holding period", mut: func(b *model.Bonus) { b.HoldingPeriod = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mut(&b)
			err := ValidateBonus(b)
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateTrackedBonus(t *testing.T) {
	valid := model.TrackedBonus{PlayerID: 1, BonusID: 3, Status: model.StatusPlanned}
	if err := ValidateTrackedBonus(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Status = "expired"
	if err := ValidateTrackedBonus(bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown status, got %v", err)
	}

	bad = valid
	bad.PlayerID = 3
	if err := ValidateTrackedBonus(bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for player 3, got %v", err)
	}

	bad = valid
	bad.BonusID = 0
	if err := ValidateTrackedBonus(bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for missing bonus, got %v", err)
	}
}

func TestValidateBankAndSettings(t *testing.T) {
	if err := ValidateBank(model.Bank{Name: "Chase"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateBank(model.Bank{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	if err := ValidatePlayerSettings(model.DefaultPlayerSettings(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePlayerSettings(model.PlayerSettings{PlayerID: 1}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
}
