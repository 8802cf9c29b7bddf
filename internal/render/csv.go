package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/resultado/dre/internal/report"
)

var statementHeader = []string{
	"classification", "account", "sub_account", "name", "depth", "level", "synthesized",
	"m01", "m02", "m03", "m04", "m05", "m06", "m07", "m08", "m09", "m10", "m11", "m12", "total",
}

var comparativeHeader = []string{
	"classification", "account", "sub_account", "name", "depth", "level", "synthesized",
	"value_period1", "value_period2", "difference", "percentage",
}

func keyColumns[V any](n *report.Node[V], level int) []string {
	return []string{
		n.Classification,
		n.Key.Account,
		n.Key.SubAccount,
		n.Name,
		strconv.Itoa(n.Depth),
		strconv.Itoa(level),
		strconv.FormatBool(n.Synthesized),
	}
}

// StatementCSV writes one row per node in pre-order.
func StatementCSV(w io.Writer, st *report.Statement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	err := visit(st.Roots, 0, func(n *report.Node[report.Monthly], level int) error {
		row := keyColumns(n, level)
		for _, m := range n.Values.Months {
			row = append(row, m.StringFixed(2))
		}
		row = append(row, n.Values.Total.StringFixed(2))
		return cw.Write(row)
	})
	if err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ComparativeCSV writes one row per node in pre-order.
func ComparativeCSV(w io.Writer, c *report.Comparative) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(comparativeHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	err := visit(c.Roots, 0, func(n *report.Node[report.Comparison], level int) error {
		v := n.Values
		row := append(keyColumns(n, level),
			v.Period1.StringFixed(2),
			v.Period2.StringFixed(2),
			v.Difference.StringFixed(2),
			v.Percentage.StringFixed(2),
		)
		return cw.Write(row)
	})
	if err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
