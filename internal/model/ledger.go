package model

import "github.com/shopspring/decimal"

// AccountTypeDRE marks ledger rows that belong to the income statement.
const AccountTypeDRE = "3-DRE"

// LedgerLine is one row of a monthly ledger export.
//
// Debit and Credit arrive pre-signed from the source ledger: a reduction may
// already be negative.
type LedgerLine struct {
	Period         Period
	EntityID       string
	EntityName     string
	Region         string
	AccountType    string
	Classification string // dot-delimited, e.g. "3.01.02"
	AccountCode    string
	SubAccountCode string
	AccountName    string
	OpeningBalance decimal.Decimal
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	ClosingBalance decimal.Decimal
}
