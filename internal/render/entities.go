package render

import (
	"encoding/csv"
	"io"

	"github.com/resultado/dre/internal/ledger"
)

// Entities writes the entity list in format f.
func Entities(w io.Writer, entities []ledger.Entity, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		if entities == nil {
			entities = []ledger.Entity{}
		}
		return writeJSON(w, entities)
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "name", "region"})
		for _, e := range entities {
			_ = cw.Write([]string{e.ID, e.Name, e.Region})
		}
		cw.Flush()
		return cw.Error()
	default:
		t := &table{}
		t.add(rowHeader, "ID", "Name", "Region")
		for _, e := range entities {
			t.add(rowPlain, e.ID, e.Name, e.Region)
		}
		return t.write(w, newPalette(w, opts.Color))
	}
}

// Issues writes ledger validation issues in format f.
func Issues(w io.Writer, issues []ledger.Issue, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		if issues == nil {
			issues = []ledger.Issue{}
		}
		return writeJSON(w, issues)
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"check", "period", "entity_id", "account", "description"})
		for _, i := range issues {
			_ = cw.Write([]string{string(i.Check), i.Period, i.EntityID, i.Account, i.Description})
		}
		cw.Flush()
		return cw.Error()
	default:
		if len(issues) == 0 {
			_, err := io.WriteString(w, "No issues found.\n")
			return err
		}
		t := &table{}
		t.add(rowHeader, "Check", "Entity", "Period", "Account", "Description")
		for _, i := range issues {
			t.add(rowPlain, string(i.Check), i.EntityID, i.Period, i.Account, i.Description)
		}
		return t.write(w, newPalette(w, opts.Color))
	}
}
