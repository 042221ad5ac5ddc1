package reporting

import (
	"github.com/fluxo/backend/internal/domain/shared"
)

// ReportMode selects the reporting date basis
type ReportMode string

const (
	// ModeAccrual groups by competence date (income statement / DRE)
	ModeAccrual ReportMode = "ACCRUAL"
	// ModeCash groups by payment/due date (cash-flow report)
	ModeCash ReportMode = "CASH"
)

// IsValid checks if the mode is a valid ReportMode
func (m ReportMode) IsValid() bool {
	return m == ModeAccrual || m == ModeCash
}

// String returns the string representation of ReportMode
func (m ReportMode) String() string {
	return string(m)
}

// DefaultIncomeClassificationCode is the conventional top-level code under
// which income lives in the chart of accounts.
const DefaultIncomeClassificationCode = "1"

// DefaultIncomeClassificationName labels the income root when no chart row
// names that classification.
const DefaultIncomeClassificationName = "Revenue"

// ReportRequest is the full, explicit input of one report build. Identical
// requests over identical snapshots always produce identical reports; any
// caching sits with the caller.
type ReportRequest struct {
	Mode               ReportMode `json:"mode"`
	Primary            Period     `json:"primary"`
	Compare            *Period    `json:"compare,omitempty"`
	IncludeProjections bool       `json:"include_projections"`
	HideEmptyRows      bool       `json:"hide_empty_rows"`
	// IncomeClassificationCode overrides the conventional "1" when set
	IncomeClassificationCode string `json:"income_classification_code,omitempty"`
}

// Validate checks the request for structural problems
func (r ReportRequest) Validate() error {
	if !r.Mode.IsValid() {
		return shared.NewDomainError("INVALID_MODE", "Report mode must be ACCRUAL or CASH")
	}
	if len(r.Primary.Months) == 0 {
		return shared.NewDomainError("INVALID_PERIOD", "Primary period must select at least one month")
	}
	if r.Compare != nil && len(r.Compare.Months) == 0 {
		return shared.NewDomainError("INVALID_PERIOD", "Compare period must select at least one month")
	}
	return nil
}

// IncomeCode returns the effective income classification code
func (r ReportRequest) IncomeCode() string {
	if r.IncomeClassificationCode != "" {
		return r.IncomeClassificationCode
	}
	return DefaultIncomeClassificationCode
}
