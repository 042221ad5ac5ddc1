package ledger

import (
	"strings"

	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChartOfAccount represents one rubric (leaf) of the chart of accounts with
// its denormalized ancestor codes and names. Codes are dot-delimited,
// numerically ordered strings ("3" > "3.1" > "3.1.2"); the hierarchy is
// encoded entirely by shared code prefixes.
type ChartOfAccount struct {
	shared.TenantAggregateRoot
	ClassificationCode string `json:"classification_code"`
	ClassificationName string `json:"classification_name"`
	CenterCode         string `json:"center_code"`
	CenterName         string `json:"center_name"`
	RubricCode         string `json:"rubric_code"`
	RubricName         string `json:"rubric_name"`
}

// NewChartOfAccount creates a new chart-of-accounts rubric. Code prefix
// consistency is validated once here, so reporting never has to re-derive
// hierarchy relationships defensively.
func NewChartOfAccount(
	tenantID uuid.UUID,
	classificationCode, classificationName string,
	centerCode, centerName string,
	rubricCode, rubricName string,
) (*ChartOfAccount, error) {
	if classificationCode == "" || centerCode == "" || rubricCode == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Classification, center and rubric codes are all required")
	}
	if classificationName == "" || centerName == "" || rubricName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Classification, center and rubric names are all required")
	}
	if !isChildCode(centerCode, classificationCode) {
		return nil, shared.NewDomainError("INVALID_CODE", "Center code must extend the classification code")
	}
	if !isChildCode(rubricCode, centerCode) {
		return nil, shared.NewDomainError("INVALID_CODE", "Rubric code must extend the center code")
	}

	return &ChartOfAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClassificationCode:  classificationCode,
		ClassificationName:  classificationName,
		CenterCode:          centerCode,
		CenterName:          centerName,
		RubricCode:          rubricCode,
		RubricName:          rubricName,
	}, nil
}

// Rename updates the display names without touching the code hierarchy
func (a *ChartOfAccount) Rename(classificationName, centerName, rubricName string) error {
	if classificationName == "" || centerName == "" || rubricName == "" {
		return shared.NewDomainError("INVALID_NAME", "Names cannot be empty")
	}
	a.ClassificationName = classificationName
	a.CenterName = centerName
	a.RubricName = rubricName
	return nil
}

// isChildCode reports whether child is exactly one dot-delimited component
// below parent ("1.2.3" is a child of "1.2" but not of "1").
func isChildCode(child, parent string) bool {
	if !strings.HasPrefix(child, parent+".") {
		return false
	}
	rest := strings.TrimPrefix(child, parent+".")
	return rest != "" && !strings.Contains(rest, ".")
}

// CompareCodes orders dot-delimited account codes numerically component by
// component, so "2" sorts before "10" and "1.2" before "1.10".
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		av, aok := atoiComponent(as[i])
		bv, bok := atoiComponent(bs[i])
		switch {
		case aok && bok:
			if av != bv {
				if av < bv {
					return -1
				}
				return 1
			}
		default:
			// Non-numeric components fall back to lexical order.
			if as[i] != bs[i] {
				if as[i] < bs[i] {
					return -1
				}
				return 1
			}
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func atoiComponent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
