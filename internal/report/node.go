package report

import (
	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/model"
)

// Node is one line of a report forest. V carries the node's figures.
type Node[V any] struct {
	Key            CompositeKey `json:"key"`
	Classification string       `json:"classification"` // as it appeared in the ledger
	Name           string       `json:"name"`
	Depth          int          `json:"depth"`
	Synthesized    bool         `json:"synthesized,omitempty"`
	Values         V            `json:"values"`
	Children       []*Node[V]   `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node[V]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk[V any](nodes []*Node[V], fn func(n *Node[V], parent *Node[V]) bool) {
	walk(nodes, nil, fn)
}

func walk[V any](nodes []*Node[V], parent *Node[V], fn func(n *Node[V], parent *Node[V]) bool) {
	for _, n := range nodes {
		if fn(n, parent) {
			walk(n.Children, n, fn)
		}
	}
}

// Monthly holds a twelve-month series plus its total.
type Monthly struct {
	Months [12]decimal.Decimal `json:"months"`
	Total  decimal.Decimal     `json:"total"`
}

// Month returns the value for month m (1..12).
func (m Monthly) Month(month int) decimal.Decimal {
	if month < 1 || month > 12 {
		return decimal.Zero
	}
	return m.Months[month-1]
}

func (m *Monthly) add(month int, v decimal.Decimal) {
	m.Months[month-1] = m.Months[month-1].Add(v)
	m.Total = m.Total.Add(v)
}

// Comparison holds a two-period comparison for one node.
type Comparison struct {
	Period1    decimal.Decimal `json:"value_period1"`
	Period2    decimal.Decimal `json:"value_period2"`
	Difference decimal.Decimal `json:"difference"`
	Percentage decimal.Decimal `json:"percentage"`
}

var hundred = decimal.NewFromInt(100)

// NewComparison computes the delta and percentage between two values.
//
// percentage = difference / |v1| * 100 when v1 != 0; 100 when only v2 is
// non-zero; 0 when both are zero. The percentage keeps full precision;
// renderers round it.
func NewComparison(v1, v2 decimal.Decimal) Comparison {
	diff := v2.Sub(v1)
	var pct decimal.Decimal
	switch {
	case !v1.IsZero():
		pct = diff.Div(v1.Abs()).Mul(hundred)
	case !v2.IsZero():
		pct = hundred
	default:
		pct = decimal.Zero
	}
	return Comparison{Period1: v1, Period2: v2, Difference: diff, Percentage: pct}
}

// Statement is a single-period DRE forest with a monthly series per node.
type Statement struct {
	Scope   model.Scope      `json:"scope"`
	Year    int              `json:"year"`
	Roots   []*Node[Monthly] `json:"roots"`
	Skipped int              `json:"skipped_lines"`
}

// Filter returns a copy of the statement keeping only branches whose names
// contain q.
func (s *Statement) Filter(q string) *Statement {
	out := *s
	out.Roots = Filter(s.Roots, q)
	return &out
}

// Comparative is a two-period comparison forest.
type Comparative struct {
	Scope   model.Scope         `json:"scope"`
	Period1 model.Period        `json:"period1"`
	Period2 model.Period        `json:"period2"`
	Mode    ValueMode           `json:"mode"`
	Roots   []*Node[Comparison] `json:"roots"`
	Skipped int                 `json:"skipped_lines"`
}

// Filter returns a copy of the comparison keeping only branches whose names
// contain q.
func (c *Comparative) Filter(q string) *Comparative {
	out := *c
	out.Roots = Filter(c.Roots, q)
	return &out
}
