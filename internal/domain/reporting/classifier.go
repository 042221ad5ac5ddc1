package reporting

import (
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UncategorizedRevenueTypeID is the synthetic leaf that collects income with
// no resolvable revenue type, so the income classification total always
// equals the sum of its leaves.
var UncategorizedRevenueTypeID = uuid.Nil

// UncategorizedRevenueTypeName labels the synthetic leaf
const UncategorizedRevenueTypeName = "Uncategorized"

// Contribution is one (record, period, amount) attribution produced by the
// classifier. Exactly one of Account / revenue-type attribution is set.
type Contribution struct {
	RecordID      uuid.UUID
	Key           PeriodKey
	Amount        decimal.Decimal
	Account       *ledger.ChartOfAccount
	RevenueTypeID uuid.UUID
	IsRevenue     bool
}

// Classifier resolves which chart nodes and which reporting date a ledger
// record contributes to, for a given report mode.
type Classifier struct {
	mode               ReportMode
	includeProjections bool
	index              *ChartIndex
}

// NewClassifier creates a classifier for the given mode
func NewClassifier(mode ReportMode, includeProjections bool, index *ChartIndex) *Classifier {
	return &Classifier{
		mode:               mode,
		includeProjections: includeProjections,
		index:              index,
	}
}

// ReportingDate resolves the date a record reports under, or false when the
// record does not participate in this mode at all.
//
// Accrual: competence ?? due ?? payment. Cash with projections excluded:
// paid records only, payment ?? due. Cash with projections included: every
// record, due ?? competence.
func (c *Classifier) ReportingDate(record *ledger.Record) (time.Time, bool) {
	if c.mode == ModeAccrual {
		return firstDate(record.CompetenceDate, nonZero(record.DueDate), record.PaymentDate)
	}
	if !c.includeProjections {
		if record.Status != ledger.RecordStatusPaid {
			return time.Time{}, false
		}
		return firstDate(record.PaymentDate, nonZero(record.DueDate))
	}
	return firstDate(nonZero(record.DueDate), record.CompetenceDate)
}

// Includes reports whether the record participates in aggregation at all
func (c *Classifier) Includes(record *ledger.Record) bool {
	if record.NeedsValidation {
		return false
	}
	_, ok := c.ReportingDate(record)
	return ok
}

// Classify resolves the contributions of one record. Records pending
// validation, records with no usable date, and records the mode cannot
// attribute produce nothing; this is a silent, expected filter.
func (c *Classifier) Classify(record *ledger.Record) []Contribution {
	if record.NeedsValidation {
		return nil
	}
	date, ok := c.ReportingDate(record)
	if !ok {
		return nil
	}
	key := KeyFor(date)

	if c.mode == ModeCash || record.Type == ledger.RecordTypeExpense {
		return c.classifyByRubric(record, key)
	}
	return c.classifyIncome(record, key)
}

// classifyByRubric attributes the full amount to the record's rubric and,
// transitively, its center and classification.
func (c *Classifier) classifyByRubric(record *ledger.Record, key PeriodKey) []Contribution {
	if record.RubricID == nil {
		return nil
	}
	account, ok := c.index.ByID[*record.RubricID]
	if !ok {
		return nil
	}
	return []Contribution{{
		RecordID: record.ID,
		Key:      key,
		Amount:   record.Amount,
		Account:  account,
	}}
}

// classifyIncome attributes an accrual-mode income record to revenue-type
// leaves. Split entries supersede the single revenue type; blank or
// non-positive split entries are ignored. Income with no classification at
// all lands in the synthetic uncategorized leaf.
func (c *Classifier) classifyIncome(record *ledger.Record, key PeriodKey) []Contribution {
	sign := decimal.NewFromInt(1)
	if record.Amount.IsNegative() {
		sign = decimal.NewFromInt(-1)
	}

	if len(record.SplitRevenue) > 0 {
		var contributions []Contribution
		for _, split := range record.SplitRevenue {
			if split.RevenueTypeID == uuid.Nil || split.Amount.LessThanOrEqual(decimal.Zero) {
				continue
			}
			contributions = append(contributions, Contribution{
				RecordID:      record.ID,
				Key:           key,
				Amount:        split.Amount.Mul(sign),
				RevenueTypeID: split.RevenueTypeID,
				IsRevenue:     true,
			})
		}
		return contributions
	}

	revenueTypeID := UncategorizedRevenueTypeID
	if record.RevenueTypeID != nil {
		revenueTypeID = *record.RevenueTypeID
	}
	return []Contribution{{
		RecordID:      record.ID,
		Key:           key,
		Amount:        record.Amount,
		RevenueTypeID: revenueTypeID,
		IsRevenue:     true,
	}}
}

func firstDate(candidates ...*time.Time) (time.Time, bool) {
	for _, candidate := range candidates {
		if candidate != nil && !candidate.IsZero() {
			return *candidate, true
		}
	}
	return time.Time{}, false
}

func nonZero(date time.Time) *time.Time {
	if date.IsZero() {
		return nil
	}
	return &date
}
