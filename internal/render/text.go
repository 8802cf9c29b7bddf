package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/model"
	"github.com/resultado/dre/internal/report"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const indent = "  "

// palette holds the text styles. Without color every style is a no-op.
type palette struct {
	title, header, root, synthesized, negative func(string) string
}

func newPalette(w io.Writer, color bool) palette {
	plain := func(s string) string { return s }
	if !color {
		return palette{plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	style := func(s lipgloss.Style) func(string) string {
		return func(v string) string { return s.Render(v) }
	}
	return palette{
		title:       style(r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"})),
		header:      style(r.NewStyle().Bold(true).Underline(true)),
		root:        style(r.NewStyle().Bold(true)),
		synthesized: style(r.NewStyle().Faint(true)),
		negative:    style(r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F87"})),
	}
}

// table is a grid of cells; column 0 and 1 are left aligned, the rest right.
type table struct {
	rows  [][]string
	kinds []rowKind
}

type rowKind int

const (
	rowHeader rowKind = iota
	rowRoot
	rowPlain
	rowSynthesized
)

func (t *table) add(kind rowKind, cells ...string) {
	t.rows = append(t.rows, cells)
	t.kinds = append(t.kinds, kind)
}

func (t *table) write(w io.Writer, p palette) error {
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for r, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			var cell string
			if i < 2 {
				cell = runewidth.FillRight(c, widths[i])
			} else {
				cell = runewidth.FillLeft(c, widths[i])
			}
			if i >= 2 && strings.HasPrefix(c, "-") {
				cell = p.negative(cell)
			}
			cells[i] = cell
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		switch t.kinds[r] {
		case rowHeader:
			line = p.header(line)
		case rowRoot:
			line = p.root(line)
		case rowSynthesized:
			line = p.synthesized(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func kindOf[V any](n *report.Node[V], level int) rowKind {
	switch {
	case level == 0:
		return rowRoot
	case n.Synthesized:
		return rowSynthesized
	default:
		return rowPlain
	}
}

func codeOf(k report.CompositeKey, display string) string {
	code := display
	if code == "" {
		code = k.Classification
	}
	if k.Account != "" {
		code += " " + k.Account
	}
	if k.SubAccount != "" {
		code += "/" + k.SubAccount
	}
	return code
}

func scopeTitle(sc model.Scope) string {
	switch {
	case sc.Empty():
		return "no matching entity"
	case sc.Kind == model.ScopeSingle:
		title := fmt.Sprintf("%s (%s)", sc.EntityName, sc.EntityIDs[0])
		if sc.Region != "" {
			title += " | " + sc.Region
		}
		return title
	default:
		return fmt.Sprintf("%s (%s)", sc.EntityName, strings.Join(sc.EntityIDs, ", "))
	}
}

func statementText(w io.Writer, st *report.Statement, opts Options) error {
	p := newPalette(w, opts.Color)

	title := "DRE"
	if st.Year != 0 {
		title = fmt.Sprintf("DRE %d", st.Year)
	}
	if _, err := fmt.Fprintln(w, p.title(title+" | "+scopeTitle(st.Scope))); err != nil {
		return err
	}
	if len(st.Roots) == 0 {
		_, err := fmt.Fprintln(w, "No ledger lines for this scope.")
		return err
	}

	months := activeMonths(st.Roots)
	header := []string{"Code", "Account"}
	for _, m := range months {
		header = append(header, monthLabels[m])
	}
	header = append(header, "Total")

	t := &table{}
	t.add(rowHeader, header...)
	_ = visit(st.Roots, 0, func(n *report.Node[report.Monthly], level int) error {
		row := []string{codeOf(n.Key, n.Classification), strings.Repeat(indent, level) + n.Name}
		for _, m := range months {
			row = append(row, FormatAmount(n.Values.Months[m]))
		}
		row = append(row, FormatAmount(n.Values.Total))
		t.add(kindOf(n, level), row...)
		return nil
	})
	if err := t.write(w, p); err != nil {
		return err
	}
	return writeSkipped(w, st.Skipped)
}

func comparativeText(w io.Writer, c *report.Comparative, opts Options) error {
	p := newPalette(w, opts.Color)

	title := fmt.Sprintf("DRE %s vs %s (%s) | %s", c.Period1, c.Period2, c.Mode, scopeTitle(c.Scope))
	if _, err := fmt.Fprintln(w, p.title(title)); err != nil {
		return err
	}
	if len(c.Roots) == 0 {
		_, err := fmt.Fprintln(w, "No ledger lines for this scope.")
		return err
	}

	t := &table{}
	t.add(rowHeader, "Code", "Account", c.Period1.String(), c.Period2.String(), "Difference", "%")
	_ = visit(c.Roots, 0, func(n *report.Node[report.Comparison], level int) error {
		v := n.Values
		t.add(kindOf(n, level),
			codeOf(n.Key, n.Classification),
			strings.Repeat(indent, level)+n.Name,
			FormatAmount(v.Period1),
			FormatAmount(v.Period2),
			FormatAmount(v.Difference),
			FormatAmount(v.Percentage),
		)
		return nil
	})
	if err := t.write(w, p); err != nil {
		return err
	}
	return writeSkipped(w, c.Skipped)
}

func writeSkipped(w io.Writer, n int) error {
	if n == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%d ledger line(s) skipped: no classification or invalid month\n", n)
	return err
}

// activeMonths returns the zero-based months where any node is non-zero.
func activeMonths(roots []*report.Node[report.Monthly]) []int {
	var seen [12]bool
	report.Walk(roots, func(n *report.Node[report.Monthly], _ *report.Node[report.Monthly]) bool {
		for m, v := range n.Values.Months {
			if !v.IsZero() {
				seen[m] = true
			}
		}
		return true
	})
	var out []int
	for m, ok := range seen {
		if ok {
			out = append(out, m)
		}
	}
	return out
}

// FormatAmount formats d with two decimals, "." thousands and "," decimal
// separators: -1234.5 becomes "-1.234,50".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}
