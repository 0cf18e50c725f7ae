package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
)

func punch(workerID string, kind attendance.EventKind, ts time.Time) attendance.Event {
	return attendance.Event{
		WorkerID:  workerID,
		Kind:      kind,
		Timestamp: ts,
	}
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestPairEvents_SimpleDay(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 17, 0)),
	}

	result := PairEvents(events)
	require.Len(t, result.Days, 1)
	assert.Empty(t, result.Unpaired)

	intervals := result.Days["2025-03-03"]
	require.Len(t, intervals, 1)
	assert.Equal(t, at(2025, time.March, 3, 8, 0), intervals[0].ClockIn)
	assert.Equal(t, at(2025, time.March, 3, 17, 0), intervals[0].ClockOut)
	assert.True(t, intervals[0].Hours.Equal(decimalFromString(t, "9")))
}

func TestPairEvents_MultipleIntervalsPerDay(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 7, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 11, 30)),
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 13, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 17, 0)),
	}

	result := PairEvents(events)
	intervals := result.Days["2025-03-03"]
	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].Hours.Equal(decimalFromString(t, "4.5")))
	assert.True(t, intervals[1].Hours.Equal(decimalFromString(t, "4")))
	assert.Empty(t, result.Unpaired)
}

func TestPairEvents_OrphanClockOutBeforeFirstIn(t *testing.T) {
	// A stale clock-out from before the first clock-in is orphaned; the
	// remaining punches still pair.
	events := []attendance.Event{
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 7, 0)),
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 17, 0)),
	}

	result := PairEvents(events)
	intervals := result.Days["2025-03-03"]
	require.Len(t, intervals, 1)
	assert.Equal(t, at(2025, time.March, 3, 8, 0), intervals[0].ClockIn)
	assert.Equal(t, at(2025, time.March, 3, 17, 0), intervals[0].ClockOut)

	require.Len(t, result.Unpaired, 1)
	assert.Equal(t, string(attendance.EventClockOut), result.Unpaired[0].Kind)
	assert.Equal(t, at(2025, time.March, 3, 7, 0), result.Unpaired[0].Timestamp)
}

func TestPairEvents_LoneClockInExcluded(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
	}

	result := PairEvents(events)
	assert.Empty(t, result.Days)
	require.Len(t, result.Unpaired, 1)
	assert.Equal(t, string(attendance.EventClockIn), result.Unpaired[0].Kind)
}

func TestPairEvents_DayWithOnlyOrphansOmitted(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 17, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 4, 6, 0)),
	}

	result := PairEvents(events)
	_, hasOrphanDay := result.Days["2025-03-04"]
	assert.False(t, hasOrphanDay)
	assert.Contains(t, result.Days, "2025-03-03")
	require.Len(t, result.Unpaired, 1)
}

func TestPairEvents_EventsNeverPairAcrossDays(t *testing.T) {
	// An overnight shift recorded as in one day, out the next leaves two
	// orphans; pairing is strictly within a calendar day.
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 22, 0)),
		punch("w1", attendance.EventClockOut, at(2025, time.March, 4, 6, 0)),
	}

	result := PairEvents(events)
	assert.Empty(t, result.Days)
	assert.Len(t, result.Unpaired, 2)
}

func TestPairEvents_OutOfOrderInputStillPairs(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockOut, at(2025, time.March, 3, 17, 0)),
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
	}

	result := PairEvents(events)
	intervals := result.Days["2025-03-03"]
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Hours.Equal(decimalFromString(t, "9")))
}

func TestPairEvents_SubMinutePrecisionKept(t *testing.T) {
	events := []attendance.Event{
		punch("w1", attendance.EventClockIn, at(2025, time.March, 3, 8, 0)),
		punch("w1", attendance.EventClockOut, time.Date(2025, time.March, 3, 8, 20, 0, 0, time.UTC)),
	}

	result := PairEvents(events)
	intervals := result.Days["2025-03-03"]
	require.Len(t, intervals, 1)
	// 20 minutes = 1/3 hour, carried unrounded
	diff := intervals[0].Hours.Sub(decimalFromString(t, "0.333333333333"))
	assert.True(t, diff.Abs().LessThan(decimalFromString(t, "0.000001")))
}

func TestPairEvents_Empty(t *testing.T) {
	result := PairEvents(nil)
	assert.Empty(t, result.Days)
	assert.Empty(t, result.Unpaired)
}
