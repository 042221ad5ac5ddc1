package reporting

import (
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
)

// Report is the fully built matrix for one request: the hierarchy rows, the
// net-result row and the period keys the cells are bucketed under. It is
// derived state with no lifecycle of its own.
type Report struct {
	Mode        ReportMode  `json:"mode"`
	PeriodKeys  []PeriodKey `json:"period_keys"`
	CompareKeys []PeriodKey `json:"compare_keys,omitempty"`
	Rows        []*Node     `json:"rows"`
	NetResult   *Node       `json:"net_result"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// BuildReport runs the whole pipeline: index the chart, classify every
// record, aggregate into period buckets and assemble the hierarchy. It is a
// pure function of its inputs: identical snapshots and requests always yield
// identical reports, and no input shape makes it fail beyond request
// validation.
func BuildReport(
	records []ledger.Record,
	accounts []ledger.ChartOfAccount,
	revenueTypes []ledger.RevenueType,
	request ReportRequest,
) (*Report, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	index := NewChartIndex(accounts)
	classifier := NewClassifier(request.Mode, request.IncludeProjections, index)

	var contributions []Contribution
	for i := range records {
		contributions = append(contributions, classifier.Classify(&records[i])...)
	}

	primaryKeys := request.Primary.Keys()
	builder := &hierarchyBuilder{
		request:      request,
		index:        index,
		revenueTypes: revenueTypes,
		primary:      groupContributions(contributions, primaryKeys),
		primaryKeys:  primaryKeys,
	}
	if request.Compare != nil {
		compareKeys := request.Compare.Keys()
		compare := groupContributions(contributions, compareKeys)
		builder.compare = &compare
		builder.compareKeys = compareKeys
	}

	rows := builder.build()
	report := &Report{
		Mode:        request.Mode,
		PeriodKeys:  primaryKeys,
		CompareKeys: builder.compareKeys,
		NetResult:   builder.netResult(rows),
		GeneratedAt: time.Now(),
	}
	if request.HideEmptyRows {
		report.Rows = FilterEmptyNodes(rows)
	} else {
		report.Rows = rows
	}
	return report, nil
}
