package report

import "github.com/shopspring/decimal"

// rollup overwrites every non-leaf node's values with combine(children),
// children first. A node that had direct ledger data and children keeps only
// the children's sum.
func rollup[V any](nodes []*Node[V], combine func(children []*Node[V]) V) {
	for _, n := range nodes {
		if len(n.Children) == 0 {
			continue
		}
		rollup(n.Children, combine)
		n.Values = combine(n.Children)
	}
}

func sumMonthly(children []*Node[Monthly]) Monthly {
	var out Monthly
	for _, c := range children {
		for i := range out.Months {
			out.Months[i] = out.Months[i].Add(c.Values.Months[i])
		}
		out.Total = out.Total.Add(c.Values.Total)
	}
	return out
}

func sumComparison(children []*Node[Comparison]) Comparison {
	v1, v2 := decimal.Zero, decimal.Zero
	for _, c := range children {
		v1 = v1.Add(c.Values.Period1)
		v2 = v2.Add(c.Values.Period2)
	}
	return NewComparison(v1, v2)
}
