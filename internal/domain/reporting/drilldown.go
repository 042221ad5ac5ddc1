package reporting

import (
	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/fluxo/backend/internal/domain/shared"
)

// DrillDownQuery identifies one report cell: a hierarchy node and a period
// key. Code carries the chart code for classification/center/rubric nodes,
// the revenue-type id for revenue leaves, and the synthetic root codes for
// the cash-flow roots and net-result row.
type DrillDownQuery struct {
	NodeType NodeType  `json:"node_type"`
	Code     string    `json:"code"`
	Key      PeriodKey `json:"key"`
}

// DrillDown re-applies the exact classification predicate that produced one
// cell and returns the literal records summed into it. It is side-effect
// free and total: an empty cell yields an empty slice, never an error.
func DrillDown(
	records []ledger.Record,
	accounts []ledger.ChartOfAccount,
	request ReportRequest,
	query DrillDownQuery,
) ([]ledger.Record, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if query.Code == "" {
		return nil, shared.NewDomainError("INVALID_QUERY", "Drill-down node code is required")
	}
	if query.Key == "" {
		return nil, shared.NewDomainError("INVALID_QUERY", "Drill-down period key is required")
	}

	index := NewChartIndex(accounts)
	classifier := NewClassifier(request.Mode, request.IncludeProjections, index)
	incomeCode := request.IncomeCode()

	matched := make([]ledger.Record, 0)
	for i := range records {
		record := &records[i]
		for _, contribution := range classifier.Classify(record) {
			if contribution.Key != query.Key {
				continue
			}
			if matchesNode(contribution, query, incomeCode) {
				matched = append(matched, *record)
				break
			}
		}
	}
	return matched, nil
}

func matchesNode(contribution Contribution, query DrillDownQuery, incomeCode string) bool {
	switch query.NodeType {
	case NodeTypeRubric:
		return contribution.Account != nil && contribution.Account.RubricCode == query.Code
	case NodeTypeCenter:
		return contribution.Account != nil && contribution.Account.CenterCode == query.Code
	case NodeTypeClassification:
		if contribution.Account != nil {
			return contribution.Account.ClassificationCode == query.Code
		}
		// Revenue-type contributions live under the income classification.
		return contribution.IsRevenue && query.Code == incomeCode
	case NodeTypeRevenueType:
		return contribution.IsRevenue && contribution.RevenueTypeID.String() == query.Code
	case NodeTypeRoot:
		switch query.Code {
		case InflowRootCode:
			return contribution.Account != nil && contribution.Account.ClassificationCode == incomeCode
		case OutflowRootCode:
			return contribution.Account != nil && contribution.Account.ClassificationCode != incomeCode
		case NetResultCode:
			return true
		}
		return false
	}
	return false
}
