package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/fluxo/backend/internal/domain/shared"
)

// PeriodKey identifies one reporting month as "YYYY-MM"
type PeriodKey string

// KeyFor returns the period key of the month containing the given date
func KeyFor(date time.Time) PeriodKey {
	return PeriodKey(fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month())))
}

// Period selects a set of months within one year
type Period struct {
	Year   int   `json:"year"`
	Months []int `json:"months"`
}

// NewPeriod creates a period for the given year and months (1-12)
func NewPeriod(year int, months ...int) (Period, error) {
	if year < 1 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Year must be positive")
	}
	if len(months) == 0 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "At least one month is required")
	}
	seen := make(map[int]bool, len(months))
	normalized := make([]int, 0, len(months))
	for _, m := range months {
		if m < 1 || m > 12 {
			return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Month %d is out of range", m))
		}
		if !seen[m] {
			seen[m] = true
			normalized = append(normalized, m)
		}
	}
	sort.Ints(normalized)
	return Period{Year: year, Months: normalized}, nil
}

// FullYear returns a period covering all twelve months of the given year
func FullYear(year int) Period {
	p, _ := NewPeriod(year, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	return p
}

// Keys returns the sorted period keys selected by this period
func (p Period) Keys() []PeriodKey {
	keys := make([]PeriodKey, 0, len(p.Months))
	for _, m := range p.Months {
		keys = append(keys, PeriodKey(fmt.Sprintf("%04d-%02d", p.Year, m)))
	}
	return keys
}

// Contains reports whether the given date falls in one of the selected months
func (p Period) Contains(date time.Time) bool {
	if date.Year() != p.Year {
		return false
	}
	month := int(date.Month())
	for _, m := range p.Months {
		if m == month {
			return true
		}
	}
	return false
}
