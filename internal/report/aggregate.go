package report

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/model"
)

// admit applies the checks every aggregation shares. It returns the line's
// key, or ok=false when the line does not participate. skipped is set for
// lines that belong to the account type but cannot be placed in the tree.
func (e *Engine) admit(line model.LedgerLine, foldedFilter string) (k CompositeKey, ok, skipped bool) {
	if strings.TrimSpace(line.AccountType) != e.accountType {
		return CompositeKey{}, false, false
	}
	k = Key(line.Classification, line.AccountCode, line.SubAccountCode)
	if k.Classification == "" {
		e.logger.Warn("skipping unclassified ledger line",
			slog.String("classification", line.Classification),
			slog.String("account", line.AccountCode),
			slog.String("period", line.Period.String()))
		return CompositeKey{}, false, true
	}
	if line.Period.Month < 1 || line.Period.Month > 12 {
		e.logger.Warn("skipping ledger line with invalid month",
			slog.String("classification", line.Classification),
			slog.Int("month", line.Period.Month))
		return CompositeKey{}, false, true
	}
	if foldedFilter != "" && !containsFolded(line.AccountName, foldedFilter) {
		return CompositeKey{}, false, false
	}
	return k, true, false
}

// aggregateMonthly groups lines by key and month using the DRE flow rules.
func (e *Engine) aggregateMonthly(lines []model.LedgerLine, q StatementQuery) (map[CompositeKey]*Monthly, *keySet, int) {
	values := make(map[CompositeKey]*Monthly)
	keys := newKeySet()
	filter := fold(q.LineFilter)
	skipped := 0

	for _, line := range lines {
		if q.Year != 0 && line.Period.Year != q.Year {
			continue
		}
		k, ok, skip := e.admit(line, filter)
		if skip {
			skipped++
		}
		if !ok {
			continue
		}

		keys.add(k, line.Classification, line.AccountName)
		m, exists := values[k]
		if !exists {
			m = &Monthly{}
			values[k] = m
		}
		m.add(line.Period.Month, Flow(line, e.policy))
	}
	return values, keys, skipped
}

// Flow returns a line's signed monthly movement.
//
// Debit and credit are pre-signed, so the raw flow is credit + debit. When the
// closing balance is usable it is treated as ground truth for the sign.
// Otherwise the policy may negate a positive flow on deduction accounts.
func Flow(line model.LedgerLine, policy SignPolicy) decimal.Decimal {
	flow := line.Credit.Add(line.Debit)
	closing := line.ClosingBalance

	if !closing.IsZero() && !flow.IsZero() {
		if closing.Sign() != flow.Sign() {
			return flow.Neg()
		}
		return flow
	}
	if flow.IsPositive() && policy != nil && policy.IsDeduction(line.AccountName) {
		return flow.Neg()
	}
	return flow
}

// aggregatePeriods computes one value per key for each compared period.
func (e *Engine) aggregatePeriods(lines []model.LedgerLine, q CompareQuery) (v1, v2 map[CompositeKey]decimal.Decimal, keys *keySet, skipped int) {
	v1 = make(map[CompositeKey]decimal.Decimal)
	v2 = make(map[CompositeKey]decimal.Decimal)
	keys = newKeySet()
	filter := fold(q.LineFilter)

	// One pass in input order keeps key order independent of which period
	// is listed first.
	for _, line := range lines {
		in1, in2 := line.Period == q.Period1, line.Period == q.Period2
		if !in1 && !in2 {
			continue
		}
		k, ok, skip := e.admit(line, filter)
		if skip {
			skipped++
		}
		if !ok {
			continue
		}
		keys.add(k, line.Classification, line.AccountName)
		v := q.Mode.value(line)
		if in1 {
			v1[k] = v1[k].Add(v)
		}
		if in2 {
			v2[k] = v2[k].Add(v)
		}
	}
	return v1, v2, keys, skipped
}
