package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punch(h, m int) time.Time {
	return time.Date(2025, 3, 3, h, m, 0, 0, time.UTC)
}

func TestWorkIntervalsPairInChronologicalOrder(t *testing.T) {
	t.Parallel()

	record := PunchRecord{Times: []time.Time{
		punch(13, 0), punch(8, 0), punch(17, 0), punch(12, 0),
	}}

	intervals := record.WorkIntervals()
	require.Len(t, intervals, 2)
	assert.Equal(t, [2]time.Time{punch(8, 0), punch(12, 0)}, intervals[0])
	assert.Equal(t, [2]time.Time{punch(13, 0), punch(17, 0)}, intervals[1])
}

func TestWorkIntervalsDropUnpairedTrailingPunch(t *testing.T) {
	t.Parallel()

	record := PunchRecord{Times: []time.Time{punch(8, 0), punch(12, 0), punch(13, 0)}}

	intervals := record.WorkIntervals()
	require.Len(t, intervals, 1)
	assert.Equal(t, [2]time.Time{punch(8, 0), punch(12, 0)}, intervals[0])
}

func TestSortedTimesLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	record := PunchRecord{Times: []time.Time{punch(17, 0), punch(8, 0)}}

	sorted := record.SortedTimes()
	assert.Equal(t, []time.Time{punch(8, 0), punch(17, 0)}, sorted)
	assert.Equal(t, []time.Time{punch(17, 0), punch(8, 0)}, record.Times)
}
