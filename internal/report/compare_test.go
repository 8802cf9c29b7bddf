package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resultado/dre/internal/model"
)

var (
	jan = model.Period{Year: 2024, Month: 1}
	feb = model.Period{Year: 2024, Month: 2}
)

func movement(class string, p model.Period, credit, debit, closing string) model.LedgerLine {
	return model.LedgerLine{
		Period:         p,
		AccountType:    model.AccountTypeDRE,
		Classification: class,
		AccountName:    "Conta " + class,
		Credit:         dec(credit),
		Debit:          dec(debit),
		ClosingBalance: dec(closing),
	}
}

func TestNewComparisonPercentage(t *testing.T) {
	tests := []struct {
		v1, v2   string
		wantDiff string
		wantPct  string
	}{
		{"0", "200", "200", "100"},
		{"0", "0", "0", "0"},
		{"0", "-200", "-200", "100"},
		{"50", "75", "25", "50"},
		{"-50", "-25", "25", "50"},
		{"200", "100", "-100", "-50"},
		{"3", "4", "1", "33.33"},
	}
	for _, tt := range tests {
		c := NewComparison(dec(tt.v1), dec(tt.v2))
		assert.True(t, c.Difference.Equal(dec(tt.wantDiff)), "diff(%s,%s) = %s", tt.v1, tt.v2, c.Difference)
		assert.True(t, c.Percentage.Round(2).Equal(dec(tt.wantPct)), "pct(%s,%s) = %s", tt.v1, tt.v2, c.Percentage)
	}
}

func TestNewComparisonKeepsPrecision(t *testing.T) {
	c := NewComparison(dec("3"), dec("4"))
	assert.False(t, c.Percentage.Equal(dec("33.33")), "got %s", c.Percentage)
	assert.True(t, c.Percentage.GreaterThan(dec("33.333")))
	assert.True(t, c.Percentage.LessThan(dec("33.334")))
}

func TestCompareModes(t *testing.T) {
	lines := []model.LedgerLine{
		movement("3.01", jan, "100", "30", "500"),
		movement("3.01", feb, "80", "0", "580"),
	}
	e := newTestEngine(nil)

	period, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: jan, Period2: feb, Mode: PeriodMovement})
	require.NoError(t, err)
	n := findNode(period.Roots, Key("3.01", "", ""))
	require.NotNil(t, n)
	assert.True(t, n.Values.Period1.Equal(dec("70")))
	assert.True(t, n.Values.Period2.Equal(dec("80")))

	cumulative, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: jan, Period2: feb, Mode: Cumulative})
	require.NoError(t, err)
	n = findNode(cumulative.Roots, Key("3.01", "", ""))
	require.NotNil(t, n)
	assert.True(t, n.Values.Period1.Equal(dec("500")))
	assert.True(t, n.Values.Period2.Equal(dec("580")))
	assert.True(t, n.Values.Difference.Equal(dec("80")))
	assert.True(t, n.Values.Percentage.Equal(dec("16")))
}

func TestCompareUnionsKeys(t *testing.T) {
	e := newTestEngine(nil)
	cmp, err := e.Compare(model.Scope{}, []model.LedgerLine{
		movement("3.01", jan, "100", "0", "0"),
		movement("3.02", feb, "200", "0", "0"),
	}, CompareQuery{Period1: jan, Period2: feb, Mode: PeriodMovement})
	require.NoError(t, err)

	only1 := findNode(cmp.Roots, Key("3.01", "", ""))
	require.NotNil(t, only1)
	assert.True(t, only1.Values.Period2.IsZero())
	assert.True(t, only1.Values.Percentage.Equal(dec("-100")))

	only2 := findNode(cmp.Roots, Key("3.02", "", ""))
	require.NotNil(t, only2)
	assert.True(t, only2.Values.Period1.IsZero())
	assert.True(t, only2.Values.Percentage.Equal(dec("100")))
}

func TestCompareRollupRecomputesPercentage(t *testing.T) {
	e := newTestEngine(nil)
	cmp, err := e.Compare(model.Scope{}, []model.LedgerLine{
		movement("3.01.01", jan, "100", "0", "0"),
		movement("3.01.01", feb, "200", "0", "0"),
		movement("3.01.02", jan, "300", "0", "0"),
		movement("3.01.02", feb, "300", "0", "0"),
	}, CompareQuery{Period1: jan, Period2: feb, Mode: PeriodMovement})
	require.NoError(t, err)

	parent := findNode(cmp.Roots, Key("3.01", "", ""))
	require.NotNil(t, parent)
	assert.True(t, parent.Values.Period1.Equal(dec("400")))
	assert.True(t, parent.Values.Period2.Equal(dec("500")))
	assert.True(t, parent.Values.Difference.Equal(dec("100")))
	// 25%, not the 100% + 0% sum of the children's percentages.
	assert.True(t, parent.Values.Percentage.Equal(dec("25")), "got %s", parent.Values.Percentage)

	root := findNode(cmp.Roots, Key("3", "", ""))
	require.NotNil(t, root)
	assert.True(t, root.Values.Period2.Equal(dec("500")))
}

func TestCompareSymmetry(t *testing.T) {
	lines := []model.LedgerLine{
		movement("3.01.01", jan, "100", "10", "0"),
		movement("3.01.01", feb, "40", "0", "0"),
		movement("3.01.02", jan, "0", "-20", "0"),
		movement("3.02", feb, "75.5", "0", "0"),
		movement("4.01", jan, "9", "1", "0"),
	}
	e := newTestEngine(nil)
	forward, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: jan, Period2: feb, Mode: PeriodMovement})
	require.NoError(t, err)
	backward, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: feb, Period2: jan, Mode: PeriodMovement})
	require.NoError(t, err)

	count := 0
	Walk(forward.Roots, func(n *Node[Comparison], _ *Node[Comparison]) bool {
		other := findNode(backward.Roots, n.Key)
		require.NotNil(t, other, "key %+v missing in reverse comparison", n.Key)
		assert.True(t, n.Values.Difference.Equal(other.Values.Difference.Neg()), "key %+v", n.Key)
		assert.True(t, n.Values.Period1.Equal(other.Values.Period2))
		count++
		return true
	})
	assert.Positive(t, count)
}

func TestCompareSwappedPeriodsKeepParents(t *testing.T) {
	lines := []model.LedgerLine{
		withAccount(movement("3.01", jan, "10", "0", "0"), "A", ""),
		withAccount(movement("3.01", feb, "20", "0", "0"), "B", ""),
		movement("3.01.01", jan, "100", "0", "0"),
		movement("3.01.01", feb, "300", "0", "0"),
	}
	e := newTestEngine(nil)
	forward, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: jan, Period2: feb, Mode: PeriodMovement})
	require.NoError(t, err)
	backward, err := e.Compare(model.Scope{}, lines, CompareQuery{Period1: feb, Period2: jan, Mode: PeriodMovement})
	require.NoError(t, err)

	child := Key("3.01.01", "", "")
	for _, cmp := range []*Comparative{forward, backward} {
		a := findNode(cmp.Roots, Key("3.01", "A", ""))
		require.NotNil(t, a)
		assert.Equal(t, []CompositeKey{child}, childKeys(a))
		b := findNode(cmp.Roots, Key("3.01", "B", ""))
		require.NotNil(t, b)
		assert.Empty(t, b.Children)
	}

	a := findNode(forward.Roots, Key("3.01", "A", ""))
	assert.True(t, a.Values.Difference.Equal(dec("200")), "got %s", a.Values.Difference)

	Walk(forward.Roots, func(n *Node[Comparison], _ *Node[Comparison]) bool {
		other := findNode(backward.Roots, n.Key)
		require.NotNil(t, other, "key %+v missing in reverse comparison", n.Key)
		assert.True(t, n.Values.Difference.Equal(other.Values.Difference.Neg()), "key %+v", n.Key)
		return true
	})
}

func TestCompareSamePeriod(t *testing.T) {
	e := newTestEngine(nil)
	cmp, err := e.Compare(model.Scope{}, []model.LedgerLine{
		movement("3.01", jan, "10", "0", "0"),
		movement("", jan, "10", "0", "0"),
	}, CompareQuery{Period1: jan, Period2: jan, Mode: PeriodMovement})
	require.NoError(t, err)
	assert.Equal(t, 1, cmp.Skipped)
	n := findNode(cmp.Roots, Key("3.01", "", ""))
	assert.True(t, n.Values.Difference.IsZero())
	assert.True(t, n.Values.Percentage.IsZero())
}

func TestCompareRejectsInvalidQuery(t *testing.T) {
	e := newTestEngine(nil)
	_, err := e.Compare(model.Scope{}, nil, CompareQuery{Period1: model.Period{Year: 2024, Month: 13}, Period2: feb, Mode: Cumulative})
	require.Error(t, err)
	_, err = e.Compare(model.Scope{}, nil, CompareQuery{Period1: jan, Period2: feb, Mode: "weekly"})
	require.Error(t, err)

	cmp, err := e.Compare(model.Scope{}, nil, CompareQuery{Period1: jan, Period2: feb, Mode: Cumulative})
	require.NoError(t, err)
	assert.Empty(t, cmp.Roots)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Cumulative ")
	require.NoError(t, err)
	assert.Equal(t, Cumulative, m)

	m, err = ParseMode("period")
	require.NoError(t, err)
	assert.Equal(t, PeriodMovement, m)

	_, err = ParseMode("ytd")
	require.Error(t, err)
}
