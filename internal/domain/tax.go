package domain

import "github.com/shopspring/decimal"

// TaxBracket taxes income above Threshold at MarginalRate (0.30 = 30%).
type TaxBracket struct {
	Threshold    decimal.Decimal `yaml:"threshold" json:"threshold"`
	MarginalRate decimal.Decimal `yaml:"marginal_rate" json:"marginal_rate"`
}

// TaxTable is the immutable bracket set for one financial year.
type TaxTable struct {
	FinancialYear string       `yaml:"financial_year" json:"financial_year"`
	Brackets      []TaxBracket `yaml:"brackets" json:"brackets"`
}

// NetIncome breaks gross income into tax and take-home pay.
type NetIncome struct {
	FinancialYear        string          `json:"financial_year"`
	GrossAnnual          decimal.Decimal `json:"gross_annual"`
	AnnualTax            decimal.Decimal `json:"annual_tax"`
	NetAnnual            decimal.Decimal `json:"net_annual"`
	NetMonthly           decimal.Decimal `json:"net_monthly"`
	MarginalRatePercent  decimal.Decimal `json:"marginal_rate_percent"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}
