// Package render writes report forests as text, JSON or CSV.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/resultado/dre/internal/report"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or csv)", s)
	}
}

// Options tweak the text renderer.
type Options struct {
	Color bool // ANSI styling through lipgloss
}

// Statement writes st in format f.
func Statement(w io.Writer, st *report.Statement, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, st)
	case FormatCSV:
		return StatementCSV(w, st)
	default:
		return statementText(w, st, opts)
	}
}

// Comparative writes c in format f.
func Comparative(w io.Writer, c *report.Comparative, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, c)
	case FormatCSV:
		return ComparativeCSV(w, c)
	default:
		return comparativeText(w, c, opts)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// visit walks nodes in pre-order with their tree level.
func visit[V any](nodes []*report.Node[V], level int, fn func(n *report.Node[V], level int) error) error {
	for _, n := range nodes {
		if err := fn(n, level); err != nil {
			return err
		}
		if err := visit(n.Children, level+1, fn); err != nil {
			return err
		}
	}
	return nil
}
