package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/classification"
	"github.com/resultado/dre/internal/model"
)

// Check identifies the rule an Issue violates.
type Check string

const (
	CheckMonth          Check = "month"
	CheckClassification Check = "classification"
	CheckCatalog        Check = "catalog"
	CheckDecimals       Check = "decimals"
	CheckEntityName     Check = "entity-name"
	CheckDuplicate      Check = "duplicate"
)

// Issue describes a single problem found in the ledger.
type Issue struct {
	Check       Check  `json:"check"`
	Period      string `json:"period"`
	EntityID    string `json:"entity_id"`
	Account     string `json:"account"`
	Description string `json:"description"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s [%s %s %s]: %s", i.Check, i.EntityID, i.Period, i.Account, i.Description)
}

// CatalogChecker tests whether a classification exists in the chart.
type CatalogChecker interface {
	Get(classification string) (model.CatalogEntry, bool)
}

// Validate reports problems in lines of the given account type. catalog
// may be nil, which disables the catalog check.
func Validate(lines []model.LedgerLine, accountType string, catalog CatalogChecker) []Issue {
	var issues []Issue
	names := make(map[string]string)
	type rowKey struct {
		period                      model.Period
		entity, class, account, sub string
	}
	seen := make(map[rowKey]bool)
	hundred := decimal.NewFromInt(100)

	for _, l := range lines {
		if strings.TrimSpace(l.AccountType) != accountType {
			continue
		}
		account := strings.TrimSpace(l.AccountCode)
		if sub := strings.TrimSpace(l.SubAccountCode); sub != "" {
			account += "/" + sub
		}
		add := func(c Check, format string, args ...any) {
			issues = append(issues, Issue{
				Check:       c,
				Period:      l.Period.String(),
				EntityID:    l.EntityID,
				Account:     account,
				Description: fmt.Sprintf(format, args...),
			})
		}

		if l.Period.Month < 1 || l.Period.Month > 12 {
			add(CheckMonth, "month %d outside 1..12", l.Period.Month)
		}

		class := classification.Normalize(l.Classification)
		if class == "" {
			add(CheckClassification, "missing classification %q; line is left out of reports", l.Classification)
		} else if catalog != nil {
			if _, ok := catalog.Get(class); !ok {
				add(CheckCatalog, "classification %s not in catalog", class)
			}
		}

		for _, amt := range []struct {
			name string
			v    decimal.Decimal
		}{
			{"opening_balance", l.OpeningBalance},
			{"debit", l.Debit},
			{"credit", l.Credit},
			{"closing_balance", l.ClosingBalance},
		} {
			if !amt.v.Mul(hundred).Equal(amt.v.Mul(hundred).Truncate(0)) {
				add(CheckDecimals, "%s %s has more than 2 decimal places", amt.name, amt.v)
			}
		}

		if prev, ok := names[l.EntityID]; ok && prev != l.EntityName {
			add(CheckEntityName, "entity name %q differs from %q", l.EntityName, prev)
		} else if !ok {
			names[l.EntityID] = l.EntityName
		}

		k := rowKey{l.Period, l.EntityID, class, strings.TrimSpace(l.AccountCode), strings.TrimSpace(l.SubAccountCode)}
		if class != "" && seen[k] {
			add(CheckDuplicate, "more than one row for %s; values are summed", class)
		}
		seen[k] = true
	}

	return issues
}
