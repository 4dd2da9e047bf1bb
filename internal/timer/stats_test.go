package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
)

func TestAverageTimeUnknownTask(t *testing.T) {
	r, _ := newTestRegistry()

	assert.Zero(t, r.AverageTime("nope"))
	assert.Empty(t, r.Tasks())
	assert.Nil(t, r.Samples("nope"))
}

func TestStatsSummarizesSamples(t *testing.T) {
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now))
	for _, d := range []time.Duration{100, 200, 300, 400, 500} {
		require.NoError(t, spend(r, clock, "t", d*time.Millisecond))
	}

	all, ok := r.Stats("t", 0)
	require.True(t, ok)
	assert.Equal(t, TaskStats{
		Task:    "t",
		Average: 300 * time.Millisecond,
		Min:     100 * time.Millisecond,
		Max:     500 * time.Millisecond,
		Count:   5,
	}, all)

	recent, ok := r.Stats("t", 2)
	require.True(t, ok)
	assert.Equal(t, TaskStats{
		Task:    "t",
		Average: 450 * time.Millisecond,
		Min:     400 * time.Millisecond,
		Max:     500 * time.Millisecond,
		Count:   2,
	}, recent)

	wide, ok := r.Stats("t", 10)
	require.True(t, ok)
	assert.Equal(t, all, wide)

	_, ok = r.Stats("missing", 0)
	assert.False(t, ok)
}

func TestHistoryEvictsOldestSamples(t *testing.T) {
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now))
	for i := 1; i <= DefaultHistoryCapacity+5; i++ {
		require.NoError(t, spend(r, clock, "busy", time.Duration(i)*time.Millisecond))
	}

	samples := r.Samples("busy")
	require.Len(t, samples, DefaultHistoryCapacity)
	assert.Equal(t, 6*time.Millisecond, samples[0])
	assert.Equal(t, time.Duration(DefaultHistoryCapacity+5)*time.Millisecond, samples[len(samples)-1])
}

func TestHistoryCapacityOption(t *testing.T) {
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now), WithHistoryCapacity(3))
	for i := 1; i <= 5; i++ {
		require.NoError(t, spend(r, clock, "small", time.Duration(i)*time.Second))
	}

	assert.Equal(t, []time.Duration{3 * time.Second, 4 * time.Second, 5 * time.Second}, r.Samples("small"))
	assert.Equal(t, 4*time.Second, r.AverageTime("small"))
}

func seedSortFixture(t *testing.T) *Registry {
	t.Helper()
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now))
	require.NoError(t, spend(r, clock, "b", 300*time.Millisecond))
	require.NoError(t, spend(r, clock, "a", 100*time.Millisecond))
	require.NoError(t, spend(r, clock, "c", 200*time.Millisecond))
	return r
}

func taskNames(rows []TaskStats) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Task
	}
	return names
}

func TestSummariesSortModes(t *testing.T) {
	tests := []struct {
		sort SortMode
		want []string
	}{
		{SortNone, []string{"b", "a", "c"}},
		{SortName, []string{"a", "b", "c"}},
		{SortAverage, []string{"a", "c", "b"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			rows, err := seedSortFixture(t).Summaries(tt.sort, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taskNames(rows))
		})
	}
}

func TestSummariesSortByFullAverage(t *testing.T) {
	clock := newFakeClock()
	r, _ := newTestRegistry(WithClock(clock.Now))
	// "x" is slow overall but its latest sample is fast.
	require.NoError(t, spend(r, clock, "x", 900*time.Millisecond))
	require.NoError(t, spend(r, clock, "x", 100*time.Millisecond))
	require.NoError(t, spend(r, clock, "y", 300*time.Millisecond))

	rows, err := r.Summaries(SortAverage, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, taskNames(rows))
	assert.Equal(t, 100*time.Millisecond, rows[1].Average)
}

func TestSummariesRejectsInvalidSort(t *testing.T) {
	r := seedSortFixture(t)

	_, err := r.Summaries(SortMode("fastest"), 0)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortMode
		wantErr bool
	}{
		{"", SortNone, false},
		{"none", SortNone, false},
		{"NAME", SortName, false},
		{" average ", SortAverage, false},
		{"median", SortNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSortMode(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
