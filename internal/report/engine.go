// Package report builds hierarchical DRE statements and two-period
// comparisons from flat ledger lines.
//
// The engine performs no I/O: callers fetch ledger lines once and pass them
// in. Every call builds its own forest, so an Engine is safe for concurrent
// use.
package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/resultado/dre/internal/model"
)

// Catalog resolves display metadata for a normalized classification.
type Catalog interface {
	Lookup(classification string) (name string, depth int, ok bool)
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(classification string) (string, int, bool)

// Lookup implements Catalog.
func (f CatalogFunc) Lookup(classification string) (string, int, bool) {
	return f(classification)
}

// Options configures an Engine.
type Options struct {
	AccountType string     // defaults to model.AccountTypeDRE
	Policy      SignPolicy // defaults to NewKeywordPolicy()
	Logger      *slog.Logger
}

// Engine builds report forests.
type Engine struct {
	catalog     Catalog
	accountType string
	policy      SignPolicy
	logger      *slog.Logger
}

// New creates an Engine. catalog may be nil.
func New(catalog Catalog, opts Options) *Engine {
	e := &Engine{
		catalog:     catalog,
		accountType: strings.TrimSpace(opts.AccountType),
		policy:      opts.Policy,
		logger:      opts.Logger,
	}
	if e.accountType == "" {
		e.accountType = model.AccountTypeDRE
	}
	if e.policy == nil {
		e.policy = NewKeywordPolicy()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// StatementQuery selects what a statement covers.
type StatementQuery struct {
	Year       int    // 0 = every year present in the lines
	LineFilter string // drops lines whose account name does not contain it
}

// Statement aggregates lines into a monthly DRE forest.
func (e *Engine) Statement(scope model.Scope, lines []model.LedgerLine, q StatementQuery) *Statement {
	values, keys, skipped := e.aggregateMonthly(lines, q)
	shapes := e.synthesize(keys)
	roots := materialize(shapes, func(k CompositeKey) Monthly {
		if v, ok := values[k]; ok {
			return *v
		}
		return Monthly{}
	})
	rollup(roots, sumMonthly)
	if roots == nil {
		roots = []*Node[Monthly]{}
	}

	return &Statement{
		Scope:   scope,
		Year:    q.Year,
		Roots:   roots,
		Skipped: skipped,
	}
}

// CompareQuery selects the two periods to compare.
type CompareQuery struct {
	Period1    model.Period
	Period2    model.Period
	Mode       ValueMode
	LineFilter string
}

// Compare builds a two-period comparison forest.
func (e *Engine) Compare(scope model.Scope, lines []model.LedgerLine, q CompareQuery) (*Comparative, error) {
	if !q.Period1.Valid() {
		return nil, fmt.Errorf("invalid period1 %s", q.Period1)
	}
	if !q.Period2.Valid() {
		return nil, fmt.Errorf("invalid period2 %s", q.Period2)
	}
	if !q.Mode.Valid() {
		return nil, fmt.Errorf("invalid value mode %q", q.Mode)
	}

	v1, v2, keys, skipped := e.aggregatePeriods(lines, q)
	shapes := e.synthesize(keys)
	roots := materialize(shapes, func(k CompositeKey) Comparison {
		return NewComparison(v1[k], v2[k])
	})
	rollup(roots, sumComparison)
	if roots == nil {
		roots = []*Node[Comparison]{}
	}

	return &Comparative{
		Scope:   scope,
		Period1: q.Period1,
		Period2: q.Period2,
		Mode:    q.Mode,
		Roots:   roots,
		Skipped: skipped,
	}, nil
}
