package reporting

import (
	"testing"
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumAmounts(records []ledger.Record) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].Amount)
	}
	return total
}

func TestDrillDownRoundTrip(t *testing.T) {
	accounts := testChart(t)
	rent := rubricID(accounts, "3.1.1")
	utilities := rubricID(accounts, "3.1.2")
	marketing := rubricID(accounts, "3.2.1")

	competence := march(1)
	records := []ledger.Record{
		expenseRecord(t, rent, "300.00", march(10), &competence),
		expenseRecord(t, rent, "45.90", march(12), &competence),
		expenseRecord(t, utilities, "89.10", march(15), &competence),
		expenseRecord(t, marketing, "500.00", march(20), &competence),
	}
	request := ReportRequest{
		Mode:    ModeAccrual,
		Primary: Period{Year: 2024, Months: []int{3}},
	}

	report, err := BuildReport(records, accounts, nil, request)
	require.NoError(t, err)

	t.Run("rubric cell", func(t *testing.T) {
		leaf := findNode(report.Rows, "3.1.1")
		require.NotNil(t, leaf)

		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeRubric, Code: "3.1.1", Key: "2024-03",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 2)
		assert.True(t, sumAmounts(matched).Equal(leaf.Values["2024-03"]))
	})

	t.Run("center cell sums its rubrics", func(t *testing.T) {
		center := findNode(report.Rows, "3.1")
		require.NotNil(t, center)

		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeCenter, Code: "3.1", Key: "2024-03",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 3)
		assert.True(t, sumAmounts(matched).Equal(center.Values["2024-03"]))
	})

	t.Run("classification cell sums its centers", func(t *testing.T) {
		classification := findNode(report.Rows, "3")
		require.NotNil(t, classification)

		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeClassification, Code: "3", Key: "2024-03",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 4)
		assert.True(t, sumAmounts(matched).Equal(classification.Values["2024-03"]))
	})

	t.Run("empty cell yields an empty slice", func(t *testing.T) {
		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeRubric, Code: "3.1.1", Key: "2024-04",
		})
		require.NoError(t, err)
		assert.Empty(t, matched)
	})

	t.Run("records needing validation never surface", func(t *testing.T) {
		flagged := expenseRecord(t, rent, "77.00", march(10), &competence)
		flagged.FlagForValidation()

		matched, err := DrillDown(append(records, flagged), accounts, request, DrillDownQuery{
			NodeType: NodeTypeRubric, Code: "3.1.1", Key: "2024-03",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 2)
	})
}

func TestDrillDownRevenueLeaf(t *testing.T) {
	accounts := testChart(t)
	types, ids := revenueTypes("Consulting", "Licensing")

	competence := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	split, err := ledger.NewRecord(testTenant, "project", decimal.RequireFromString("1000.00"),
		ledger.RecordTypeIncome, false, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	split.SetCompetenceDate(competence)
	require.NoError(t, split.ClassifyBySplitRevenue(ledger.RevenueSplits{
		{RevenueTypeID: ids["Consulting"], Amount: decimal.RequireFromString("600.00")},
		{RevenueTypeID: ids["Licensing"], Amount: decimal.RequireFromString("400.00")},
	}))
	consulting := ids["Consulting"]
	single := incomeRecord(t, &consulting, "200.00", time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), &competence)

	records := []ledger.Record{*split, single}
	request := ReportRequest{
		Mode:    ModeAccrual,
		Primary: Period{Year: 2024, Months: []int{5}},
	}

	t.Run("a split record surfaces once under each of its leaves", func(t *testing.T) {
		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeRevenueType, Code: ids["Consulting"].String(), Key: "2024-05",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 2)

		matched, err = DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeRevenueType, Code: ids["Licensing"].String(), Key: "2024-05",
		})
		require.NoError(t, err)
		require.Len(t, matched, 1)
		assert.Equal(t, split.ID, matched[0].ID)
	})

	t.Run("income classification cell matches revenue contributions", func(t *testing.T) {
		report, err := BuildReport(records, accounts, types, request)
		require.NoError(t, err)
		classification := findNode(report.Rows, "1")
		require.NotNil(t, classification)
		assert.True(t, classification.Values["2024-05"].Equal(decimal.RequireFromString("1200.00")))

		matched, err := DrillDown(records, accounts, request, DrillDownQuery{
			NodeType: NodeTypeClassification, Code: "1", Key: "2024-05",
		})
		require.NoError(t, err)
		assert.Len(t, matched, 2)
		assert.True(t, sumAmounts(matched).Equal(classification.Values["2024-05"]))
	})
}

func TestDrillDownCashRoots(t *testing.T) {
	accounts := testChart(t)
	sales := rubricID(accounts, "1.1.1")
	rent := rubricID(accounts, "3.1.1")

	income := incomeRecord(t, nil, "500.00", march(5), nil)
	require.NoError(t, income.ClassifyByRubric(sales))
	require.NoError(t, income.MarkPaid(march(5)))
	expense := expenseRecord(t, rent, "200.00", march(10), nil)
	require.NoError(t, expense.MarkPaid(march(11)))
	records := []ledger.Record{income, expense}

	request := ReportRequest{
		Mode:    ModeCash,
		Primary: Period{Year: 2024, Months: []int{3}},
	}

	inflows, err := DrillDown(records, accounts, request, DrillDownQuery{
		NodeType: NodeTypeRoot, Code: InflowRootCode, Key: "2024-03",
	})
	require.NoError(t, err)
	require.Len(t, inflows, 1)
	assert.Equal(t, income.ID, inflows[0].ID)

	outflows, err := DrillDown(records, accounts, request, DrillDownQuery{
		NodeType: NodeTypeRoot, Code: OutflowRootCode, Key: "2024-03",
	})
	require.NoError(t, err)
	require.Len(t, outflows, 1)
	assert.Equal(t, expense.ID, outflows[0].ID)

	net, err := DrillDown(records, accounts, request, DrillDownQuery{
		NodeType: NodeTypeRoot, Code: NetResultCode, Key: "2024-03",
	})
	require.NoError(t, err)
	assert.Len(t, net, 2)
}

func TestDrillDownValidation(t *testing.T) {
	request := ReportRequest{
		Mode:    ModeAccrual,
		Primary: Period{Year: 2024, Months: []int{3}},
	}

	_, err := DrillDown(nil, nil, request, DrillDownQuery{NodeType: NodeTypeRubric, Key: "2024-03"})
	assert.Error(t, err)

	_, err = DrillDown(nil, nil, request, DrillDownQuery{NodeType: NodeTypeRubric, Code: "3.1.1"})
	assert.Error(t, err)
}
