package report

import "strings"

// SignPolicy decides whether an account name denotes a deduction, cost, or
// expense. It is only consulted when the closing balance cannot settle the
// sign of a flow, so it is a best-effort fallback.
type SignPolicy interface {
	IsDeduction(accountName string) bool
}

// DefaultDeductionMarkers are matched against folded account names.
var DefaultDeductionMarkers = []string{
	"(-)",
	"deduc",
	"custo",
	"despesa",
	"deduction",
	"cost",
	"expense",
}

// KeywordPolicy flags names containing any marker, ignoring case and accents.
type KeywordPolicy struct {
	markers []string
}

// NewKeywordPolicy creates a KeywordPolicy. Empty markers are ignored; with
// no markers at all the defaults apply.
func NewKeywordPolicy(markers ...string) *KeywordPolicy {
	var folded []string
	for _, m := range markers {
		if f := fold(m); f != "" {
			folded = append(folded, f)
		}
	}
	if len(folded) == 0 {
		for _, m := range DefaultDeductionMarkers {
			folded = append(folded, fold(m))
		}
	}
	return &KeywordPolicy{markers: folded}
}

// IsDeduction implements SignPolicy.
func (p *KeywordPolicy) IsDeduction(accountName string) bool {
	name := fold(accountName)
	if name == "" {
		return false
	}
	for _, m := range p.markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// NoopPolicy never flags a name.
type NoopPolicy struct{}

// IsDeduction implements SignPolicy.
func (NoopPolicy) IsDeduction(string) bool { return false }
