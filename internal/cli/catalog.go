package cli

import (
	"fmt"

	"github.com/mmeshcher/bonus-tracker/internal/catalog"
	"github.com/mmeshcher/bonus-tracker/internal/model"
)

type CatalogCmd struct {
	Search        string   `short:"q" help:"Filter by title."`
	Bank          int64    `help:"Only bonuses of this bank id."`
	MinAmount     *float64 `help:"Minimum bonus amount."`
	MaxAmount     *float64 `help:"Maximum bonus amount."`
	DirectDeposit string   `help:"Direct deposit filter." enum:"all,required,not_required" default:"all"`
	Sort          string   `help:"Sort field: bonus_amount, interest_rate, holding_period, min_deposit, expiration_date or title."`
	Desc          bool     `help:"Sort descending."`
}

func (c *CatalogCmd) Run(ctx *Context) error {
	if c.Sort != "" && !catalog.IsSortField(c.Sort) {
		return fmt.Errorf("unsupported sort field %q", c.Sort)
	}

	f := catalog.BonusFilter{
		Search:        c.Search,
		BankID:        c.Bank,
		MinAmount:     c.MinAmount,
		MaxAmount:     c.MaxAmount,
		DirectDeposit: c.DirectDeposit,
	}

	bonuses, err := ctx.Client.ListBonuses(ctx.context(), f, c.Sort, c.Desc)
	if err != nil {
		return err
	}

	banks, err := ctx.Client.ListBanks(ctx.context())
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(banks))
	for _, b := range banks {
		names[b.ID] = b.Name
	}

	out := ctx.Out
	if len(bonuses) == 0 {
		fmt.Fprintln(out, "No bonuses match the filter")
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d bonuses", len(bonuses))))
	for _, b := range bonuses {
		fmt.Fprintf(out, "  #%-4d %-10s %s - %s\n", b.ID, money(b.BonusAmount), names[b.BankID], b.Title)
		fmt.Fprintf(out, "        %s\n", mutedStyle.Render(bonusTerms(b)))
	}
	return nil
}

func bonusTerms(b model.Bonus) string {
	terms := fmt.Sprintf("rate %s, hold %d days", percent(b.InterestRate), b.HoldingPeriod)
	if b.MinDeposit > 0 {
		terms += ", min deposit " + money(b.MinDeposit)
	}
	if b.DirectDepositRequired {
		terms += ", direct deposit " + money(b.DirectDepositAmount)
		if b.DirectDepositFrequency != "" {
			terms += " " + b.DirectDepositFrequency
		}
	}
	if b.ExpirationDate != nil {
		terms += ", expires " + b.ExpirationDate.String()
	}
	return terms
}

type CalcCmd struct {
	Deposit float64 `arg:"" help:"Deposit amount."`
	Rate    float64 `help:"Interest rate as entered for the bonus."`
	Days    int     `help:"Holding days; 0 uses the bonus holding period or 90."`
	Bonus   float64 `help:"Bonus amount."`
	BonusID int64   `name:"bonus-id" help:"Estimate a catalog bonus instead of raw terms."`
}

func (c *CalcCmd) Run(ctx *Context) error {
	var (
		est *model.Estimate
		err error
	)
	if c.BonusID != 0 {
		est, err = ctx.Client.EstimateBonus(ctx.context(), c.BonusID, c.Deposit, c.Days)
	} else {
		est, err = ctx.Client.Calculate(ctx.context(), c.Deposit, c.Rate, c.Days, c.Bonus)
	}
	if err != nil {
		return err
	}

	out := ctx.Out
	fmt.Fprintln(out, headerStyle.Render("Earnings estimate"))
	fmt.Fprintf(out, "  Deposit:         %s for %d days\n", money(est.Deposit), est.HoldingDays)
	fmt.Fprintf(out, "  Bonus:           %s\n", money(est.BonusAmount))
	fmt.Fprintf(out, "  Interest:        %s\n", money(est.InterestEarned))
	fmt.Fprintf(out, "  Total earnings:  %s\n", money(est.TotalEarnings))
	fmt.Fprintf(out, "  Annualized ROI:  %s\n", percent(est.AnnualizedROI))
	return nil
}
