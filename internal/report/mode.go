package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/model"
)

// ValueMode selects how a compared period's value is derived from a line.
type ValueMode string

const (
	// Cumulative uses the closing balance as of the period.
	Cumulative ValueMode = "cumulative"
	// PeriodMovement uses credit - debit for the month alone.
	PeriodMovement ValueMode = "period"
)

// ParseMode parses "cumulative" or "period".
func ParseMode(s string) (ValueMode, error) {
	m := ValueMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown value mode %q", s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m ValueMode) Valid() bool {
	return m == Cumulative || m == PeriodMovement
}

func (m ValueMode) value(line model.LedgerLine) decimal.Decimal {
	if m == Cumulative {
		return line.ClosingBalance
	}
	return line.Credit.Sub(line.Debit)
}
