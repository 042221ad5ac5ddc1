package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, PeriodKey("2024-03"), KeyFor(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, PeriodKey("2023-12"), KeyFor(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, PeriodKey("2024-01"), KeyFor(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewPeriod(t *testing.T) {
	t.Run("deduplicates and sorts months", func(t *testing.T) {
		period, err := NewPeriod(2024, 3, 1, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, period.Months)
		assert.Equal(t, []PeriodKey{"2024-01", "2024-02", "2024-03"}, period.Keys())
	})

	t.Run("rejects out-of-range months", func(t *testing.T) {
		_, err := NewPeriod(2024, 0)
		assert.Error(t, err)
		_, err = NewPeriod(2024, 13)
		assert.Error(t, err)
	})

	t.Run("rejects an empty month list", func(t *testing.T) {
		_, err := NewPeriod(2024)
		assert.Error(t, err)
	})
}

func TestFullYear(t *testing.T) {
	period := FullYear(2024)
	assert.Len(t, period.Months, 12)
	keys := period.Keys()
	assert.Equal(t, PeriodKey("2024-01"), keys[0])
	assert.Equal(t, PeriodKey("2024-12"), keys[11])
}

func TestPeriodContains(t *testing.T) {
	period, err := NewPeriod(2024, 2, 3)
	require.NoError(t, err)

	assert.True(t, period.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
}
