// Package ledger reads monthly ledger exports and serves them per scope.
package ledger

import (
	"io"
	"sort"
	"strings"

	"github.com/resultado/dre/internal/model"
)

// Parser converts a ledger export into LedgerLines.
type Parser interface {
	Parse(r io.Reader) ([]model.LedgerLine, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(strings.TrimSpace(format))]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCSVParser())
	r.Register(NewBrazilianCSVParser())
	return r
}

// FormatAuto selects the parser per file from its header row.
const FormatAuto = "auto"

// Detect picks the dialect from a header line: semicolon-separated
// headers are read as csv-br, anything else as csv.
func (r *Registry) Detect(header string) Parser {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		if p := r.Get("csv-br"); p != nil {
			return p
		}
	}
	return r.Get("csv")
}
