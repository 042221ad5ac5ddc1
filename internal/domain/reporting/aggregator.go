package reporting

import (
	"github.com/shopspring/decimal"
)

// ValueMap holds one value per requested period key. Every requested key is
// always present, defaulting to zero; downstream rendering depends on this
// completeness to distinguish "no data" uniformly.
type ValueMap map[PeriodKey]decimal.Decimal

// NewValueMap creates a value map with every key zeroed
func NewValueMap(keys []PeriodKey) ValueMap {
	values := make(ValueMap, len(keys))
	for _, key := range keys {
		values[key] = decimal.Zero
	}
	return values
}

// Add accumulates an amount under a key, ignoring keys outside the map
func (v ValueMap) Add(key PeriodKey, amount decimal.Decimal) {
	if current, ok := v[key]; ok {
		v[key] = current.Add(amount)
	}
}

// AddAll accumulates another value map into this one, key by key
func (v ValueMap) AddAll(other ValueMap) {
	for key, amount := range other {
		v.Add(key, amount)
	}
}

// Total returns the sum across every key
func (v ValueMap) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range v {
		total = total.Add(amount)
	}
	return total
}

// IsZero reports whether the absolute sum across every key is zero
func (v ValueMap) IsZero() bool {
	for _, amount := range v {
		if !amount.IsZero() {
			return false
		}
	}
	return true
}

// Aggregate sums contributions into value-by-period buckets for the
// requested keys. Contributions whose key falls outside the request are
// dropped; a key with no contributions stays at zero.
func Aggregate(contributions []Contribution, keys []PeriodKey) ValueMap {
	values := NewValueMap(keys)
	for _, contribution := range contributions {
		values.Add(contribution.Key, contribution.Amount)
	}
	return values
}
