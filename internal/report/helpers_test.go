package report

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/resultado/dre/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(catalog Catalog) *Engine {
	return New(catalog, Options{Logger: discardLogger()})
}

// dreLine returns a DRE line whose flow equals credit.
func dreLine(class string, month int, credit string) model.LedgerLine {
	return model.LedgerLine{
		Period:         model.Period{Year: 2024, Month: month},
		AccountType:    model.AccountTypeDRE,
		Classification: class,
		AccountName:    "Conta " + class,
		Credit:         dec(credit),
	}
}

func named(l model.LedgerLine, name string) model.LedgerLine {
	l.AccountName = name
	return l
}

func withAccount(l model.LedgerLine, account, sub string) model.LedgerLine {
	l.AccountCode = account
	l.SubAccountCode = sub
	return l
}

func findNode[V any](roots []*Node[V], k CompositeKey) *Node[V] {
	var found *Node[V]
	Walk(roots, func(n *Node[V], _ *Node[V]) bool {
		if n.Key == k {
			found = n
		}
		return found == nil
	})
	return found
}

func childKeys[V any](n *Node[V]) []CompositeKey {
	var out []CompositeKey
	for _, c := range n.Children {
		out = append(out, c.Key)
	}
	return out
}

func assertMonthlySumInvariant(t *testing.T, roots []*Node[Monthly]) {
	t.Helper()
	Walk(roots, func(n *Node[Monthly], _ *Node[Monthly]) bool {
		if n.IsLeaf() {
			return true
		}
		var sum Monthly
		for _, c := range n.Children {
			for i := range sum.Months {
				sum.Months[i] = sum.Months[i].Add(c.Values.Months[i])
			}
			sum.Total = sum.Total.Add(c.Values.Total)
		}
		for i := range sum.Months {
			assert.True(t, sum.Months[i].Equal(n.Values.Months[i]),
				"node %s month %d: %s != sum %s", n.Key.Classification, i+1, n.Values.Months[i], sum.Months[i])
		}
		assert.True(t, sum.Total.Equal(n.Values.Total), "node %s total", n.Key.Classification)
		return true
	})
}

func assertUniqueSiblings[V any](t *testing.T, roots []*Node[V]) {
	t.Helper()
	check := func(nodes []*Node[V]) {
		seen := make(map[CompositeKey]bool)
		for _, n := range nodes {
			assert.False(t, seen[n.Key], "duplicate sibling %+v", n.Key)
			seen[n.Key] = true
		}
	}
	check(roots)
	Walk(roots, func(n *Node[V], _ *Node[V]) bool {
		check(n.Children)
		return true
	})
}
