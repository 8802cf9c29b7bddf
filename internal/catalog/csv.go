package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/resultado/dre/internal/model"
)

// Header is the CSV header for the account catalog.
const Header = "classification,name,depth,account_type"

const (
	numFields         = 4
	colClassification = 0
	colName           = 1
	colDepth          = 2
	colAccountType    = 3
)

// ReadEntries reads a catalog CSV.
func ReadEntries(r io.Reader) ([]model.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.CatalogEntry
	for i, rec := range records[1:] {
		entry, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteEntries writes a catalog CSV.
func WriteEntries(w io.Writer, entries []model.CatalogEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a CatalogEntry to a CSV row.
func MarshalEntry(e model.CatalogEntry) []string {
	row := make([]string, numFields)
	row[colClassification] = e.Classification
	row[colName] = e.Name
	if e.Depth != 0 {
		row[colDepth] = strconv.Itoa(e.Depth)
	}
	row[colAccountType] = e.AccountType
	return row
}

// UnmarshalEntry converts a CSV row to a CatalogEntry.
func UnmarshalEntry(record []string) (model.CatalogEntry, error) {
	if len(record) != numFields {
		return model.CatalogEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var depth int
	if s := strings.TrimSpace(record[colDepth]); s != "" {
		var err error
		depth, err = strconv.Atoi(s)
		if err != nil {
			return model.CatalogEntry{}, fmt.Errorf("parsing depth %q: %w", record[colDepth], err)
		}
	}

	return model.CatalogEntry{
		Classification: record[colClassification],
		Name:           record[colName],
		Depth:          depth,
		AccountType:    record[colAccountType],
	}, nil
}
