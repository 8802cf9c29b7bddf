package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resultado/dre/internal/model"
)

// Header is the CSV header of a ledger export.
const Header = "year,month,entity_id,entity_name,region,account_type,classification,account_code,sub_account_code,account_name,opening_balance,debit,credit,closing_balance"

const (
	numFields         = 14
	colYear           = 0
	colMonth          = 1
	colEntityID       = 2
	colEntityName     = 3
	colRegion         = 4
	colAccountType    = 5
	colClassification = 6
	colAccountCode    = 7
	colSubAccount     = 8
	colAccountName    = 9
	colOpening        = 10
	colDebit          = 11
	colCredit         = 12
	colClosing        = 13
)

// CSVParser reads ledger exports in one CSV dialect.
type CSVParser struct {
	format       string
	comma        rune
	decimalComma bool // "1.234,56" instead of "1234.56"
}

// NewCSVParser returns the comma-separated, dot-decimal dialect.
func NewCSVParser() *CSVParser {
	return &CSVParser{format: "csv", comma: ','}
}

// NewBrazilianCSVParser returns the semicolon-separated, comma-decimal
// dialect most Brazilian accounting systems export.
func NewBrazilianCSVParser() *CSVParser {
	return &CSVParser{format: "csv-br", comma: ';', decimalComma: true}
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return p.format }

// Parse reads every ledger line from r. The first row is the header.
func (p *CSVParser) Parse(r io.Reader) ([]model.LedgerLine, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.comma
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var lines []model.LedgerLine
	for i, rec := range records[1:] {
		line, err := p.unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (p *CSVParser) unmarshal(record []string) (model.LedgerLine, error) {
	year, err := strconv.Atoi(strings.TrimSpace(record[colYear]))
	if err != nil {
		return model.LedgerLine{}, fmt.Errorf("parsing year %q: %w", record[colYear], err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(record[colMonth]))
	if err != nil {
		return model.LedgerLine{}, fmt.Errorf("parsing month %q: %w", record[colMonth], err)
	}

	amounts := make([]decimal.Decimal, 4)
	for i, col := range []int{colOpening, colDebit, colCredit, colClosing} {
		amounts[i], err = p.parseAmount(record[col])
		if err != nil {
			return model.LedgerLine{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
	}

	return model.LedgerLine{
		Period:         model.Period{Year: year, Month: month},
		EntityID:       strings.TrimSpace(record[colEntityID]),
		EntityName:     strings.TrimSpace(record[colEntityName]),
		Region:         strings.TrimSpace(record[colRegion]),
		AccountType:    strings.TrimSpace(record[colAccountType]),
		Classification: record[colClassification],
		AccountCode:    record[colAccountCode],
		SubAccountCode: record[colSubAccount],
		AccountName:    strings.TrimSpace(record[colAccountName]),
		OpeningBalance: amounts[0],
		Debit:          amounts[1],
		Credit:         amounts[2],
		ClosingBalance: amounts[3],
	}, nil
}

// parseAmount accepts "", "-12.50", "(12.50)" and, for the comma dialect,
// "1.234,56".
func (p *CSVParser) parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if p.decimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
