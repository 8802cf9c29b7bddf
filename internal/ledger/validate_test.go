package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resultado/dre/internal/model"
)

// mockCatalog implements CatalogChecker for testing.
type mockCatalog struct {
	codes map[string]bool
}

func (m *mockCatalog) Get(code string) (model.CatalogEntry, bool) {
	return model.CatalogEntry{Classification: code}, m.codes[code]
}

func newMockCatalog(codes ...string) *mockCatalog {
	m := &mockCatalog{codes: make(map[string]bool)}
	for _, c := range codes {
		m.codes[c] = true
	}
	return m
}

func validLine(class, account string, month int) model.LedgerLine {
	return model.LedgerLine{
		Period:         model.Period{Year: 2024, Month: month},
		EntityID:       "01",
		EntityName:     "Matriz",
		AccountType:    model.AccountTypeDRE,
		Classification: class,
		AccountCode:    account,
		Credit:         decimal.RequireFromString("10.50"),
		ClosingBalance: decimal.RequireFromString("10.50"),
	}
}

func checks(issues []Issue) []Check {
	out := make([]Check, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Check)
	}
	return out
}

func TestValidate_Clean(t *testing.T) {
	lines := []model.LedgerLine{
		validLine("3.01.01", "4101", 1),
		validLine("3.01.01", "4101", 2),
		validLine("3.01.02", "4102", 1),
	}
	assert.Empty(t, Validate(lines, model.AccountTypeDRE, newMockCatalog("3.01.01", "3.01.02")))
}

func TestValidate_Issues(t *testing.T) {
	badMonth := validLine("3.01.01", "4101", 13)

	unclassified := validLine(" . ", "9999", 1)

	unknown := validLine("3.09", "4900", 1)

	decimals := validLine("3.01.02", "4102", 1)
	decimals.Debit = decimal.RequireFromString("0.005")

	renamed := validLine("3.01.01", "4101", 3)
	renamed.EntityName = "Matriz SA"

	dup := validLine("3.01.01.", "4101", 1)

	otherType := validLine("", "1101", 1)
	otherType.AccountType = "1-ATIVO"

	tests := []struct {
		name  string
		lines []model.LedgerLine
		want  []Check
	}{
		{"month", []model.LedgerLine{badMonth}, []Check{CheckMonth}},
		{"classification", []model.LedgerLine{unclassified}, []Check{CheckClassification}},
		{"catalog", []model.LedgerLine{unknown}, []Check{CheckCatalog}},
		{"decimals", []model.LedgerLine{decimals}, []Check{CheckDecimals}},
		{"entity name", []model.LedgerLine{validLine("3.01.01", "4101", 1), renamed}, []Check{CheckEntityName}},
		{"duplicate", []model.LedgerLine{validLine("3.01.01", "4101", 1), dup}, []Check{CheckDuplicate}},
		{"other account type ignored", []model.LedgerLine{otherType}, []Check{}},
	}
	cat := newMockCatalog("3.01.01", "3.01.02")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checks(Validate(tt.lines, model.AccountTypeDRE, cat)))
		})
	}
}

func TestValidate_NilCatalog(t *testing.T) {
	assert.Empty(t, Validate([]model.LedgerLine{validLine("3.09", "4900", 1)}, model.AccountTypeDRE, nil))
}

func TestValidate_Testdata(t *testing.T) {
	s := loadTestStore(t)
	issues := Validate(s.Lines(nil), model.AccountTypeDRE, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, CheckClassification, issues[0].Check)
	assert.Equal(t, "02", issues[0].EntityID)
	assert.Equal(t, "2024-01", issues[0].Period)
	assert.Contains(t, issues[0].Error(), "classification [02 2024-01 9999]")
}
