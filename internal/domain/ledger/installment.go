package ledger

import (
	"time"

	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxInstallmentCount bounds how many installments one entry may expand into
const MaxInstallmentCount = 60

// DistributionMode controls how the entered amount spreads across installments
type DistributionMode string

const (
	// DistributionTotal divides the entered amount across all installments
	DistributionTotal DistributionMode = "TOTAL"
	// DistributionRecurring repeats the full entered amount on every installment
	DistributionRecurring DistributionMode = "RECURRING"
)

// IsValid checks if the mode is a valid DistributionMode
func (m DistributionMode) IsValid() bool {
	return m == DistributionTotal || m == DistributionRecurring
}

// CompetenceMode controls how competence dates behave across installments
type CompetenceMode string

const (
	// CompetenceFixed keeps every installment in the base competence month
	CompetenceFixed CompetenceMode = "FIXED"
	// CompetenceRecurring advances the competence month with the due date
	CompetenceRecurring CompetenceMode = "RECURRING"
)

// IsValid checks if the mode is a valid CompetenceMode
func (m CompetenceMode) IsValid() bool {
	return m == CompetenceFixed || m == CompetenceRecurring
}

// InstallmentSpec describes one user entry to be expanded into N installments
type InstallmentSpec struct {
	Amount         decimal.Decimal // entered magnitude, always positive
	Count          int
	Type           RecordType
	IsRefund       bool
	DueDate        time.Time
	CompetenceDate *time.Time
	Distribution   DistributionMode
	Competence     CompetenceMode
	Splits         RevenueSplits // optional split revenue of the entered total
}

// Installment is one dated, amount-bearing share of an expanded entry.
// Amount carries the final sign convention; Splits keep positive magnitudes.
type Installment struct {
	DueDate        time.Time
	CompetenceDate *time.Time
	Amount         decimal.Decimal
	Splits         RevenueSplits
}

// GenerateInstallments expands a single entry into an ordered list of dated
// installments. In TOTAL mode the entered amount is divided into equal shares
// truncated to the cent and the remainder lands entirely on the first
// installment, so the installment amounts always reconstruct the entered
// total exactly. Split revenue is prorated the same way, with each split's
// remainder reconciled into the first installment's entry for that split.
func GenerateInstallments(spec InstallmentSpec) ([]Installment, error) {
	if spec.Count < 1 || spec.Count > MaxInstallmentCount {
		return nil, shared.NewDomainError("INVALID_COUNT", "Installment count must be between 1 and 60")
	}
	if spec.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !spec.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Record type is not valid")
	}
	if spec.DueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	if spec.Distribution == "" {
		spec.Distribution = DistributionTotal
	}
	if !spec.Distribution.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTION", "Distribution mode is not valid")
	}
	if spec.Competence == "" {
		spec.Competence = CompetenceRecurring
	}
	if !spec.Competence.IsValid() {
		return nil, shared.NewDomainError("INVALID_COMPETENCE", "Competence mode is not valid")
	}
	if len(spec.Splits) > 0 {
		if spec.Type != RecordTypeIncome {
			return nil, shared.NewDomainError("INVALID_SPLIT", "Split revenue only applies to income entries")
		}
		if !spec.Splits.Total().Equal(spec.Amount) {
			return nil, shared.NewDomainError("INVALID_SPLIT", "Split revenue total must equal the entered amount")
		}
	}
	if spec.Distribution == DistributionTotal && spec.Count > 1 {
		// Dividing less than one cent per installment would yield
		// zero-amount shares.
		minDivisible := decimal.New(int64(spec.Count), -2)
		if spec.Amount.LessThan(minDivisible) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount is too small to divide across the requested installments")
		}
		for _, split := range spec.Splits {
			if split.Amount.LessThan(minDivisible) {
				return nil, shared.NewDomainError("INVALID_SPLIT", "Each split must cover at least one cent per installment")
			}
		}
	}

	magnitudes := distributeAmount(spec.Amount, spec.Count, spec.Distribution)
	splitShares := distributeSplits(spec.Splits, spec.Count, spec.Distribution)
	if splitShares != nil {
		// Rounding each split independently can drift from the rounded
		// amount shares; the split totals are authoritative so every
		// installment's amount equals the sum of its splits.
		for i := range magnitudes {
			magnitudes[i] = splitShares[i].Total()
		}
	}

	installments := make([]Installment, spec.Count)
	for i := 0; i < spec.Count; i++ {
		installment := Installment{
			DueDate: AddMonths(spec.DueDate, i),
			Amount:  SignedAmount(spec.Type, spec.IsRefund, magnitudes[i]),
		}
		if spec.CompetenceDate != nil {
			var competence time.Time
			if spec.Competence == CompetenceFixed {
				competence = *spec.CompetenceDate
			} else {
				competence = AddMonths(*spec.CompetenceDate, i)
			}
			installment.CompetenceDate = &competence
		}
		if splitShares != nil {
			installment.Splits = splitShares[i]
		}
		installments[i] = installment
	}

	return installments, nil
}

// distributeAmount returns the positive magnitude of each installment
func distributeAmount(total decimal.Decimal, count int, mode DistributionMode) []decimal.Decimal {
	magnitudes := make([]decimal.Decimal, count)
	if mode == DistributionRecurring || count == 1 {
		for i := range magnitudes {
			magnitudes[i] = total
		}
		return magnitudes
	}

	share := total.Div(decimal.NewFromInt(int64(count))).Truncate(2)
	remainder := total.Sub(share.Mul(decimal.NewFromInt(int64(count))))
	for i := range magnitudes {
		magnitudes[i] = share
	}
	magnitudes[0] = magnitudes[0].Add(remainder)
	return magnitudes
}

// distributeSplits prorates each split entry across the installments. Returns
// nil when there are no splits.
func distributeSplits(splits RevenueSplits, count int, mode DistributionMode) []RevenueSplits {
	if len(splits) == 0 {
		return nil
	}

	shares := make([]RevenueSplits, count)
	for i := range shares {
		shares[i] = make(RevenueSplits, len(splits))
	}

	for j, split := range splits {
		portions := distributeAmount(split.Amount, count, mode)
		for i := 0; i < count; i++ {
			shares[i][j] = RevenueSplit{
				RevenueTypeID: split.RevenueTypeID,
				Amount:        portions[i],
			}
		}
	}
	return shares
}

// AddMonths advances a date by n calendar months keeping the day of month,
// clamping to the last day when the target month is shorter (Jan 31 + 1
// month is Feb 28/29, not Mar 2).
func AddMonths(date time.Time, n int) time.Time {
	if n == 0 {
		return date
	}
	year, month, day := date.Date()
	totalMonths := int(month) - 1 + n
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 {
		// Go's integer division truncates toward zero; normalize so month
		// arithmetic also works going backwards.
		targetYear = year + (totalMonths-11)/12
		targetMonth = time.Month((totalMonths%12+12)%12 + 1)
	}
	if max := daysInMonth(targetYear, targetMonth); day > max {
		day = max
	}
	return time.Date(targetYear, targetMonth, day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
