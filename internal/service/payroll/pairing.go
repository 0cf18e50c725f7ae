package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
)

// PairResult maps calendar day -> ordered worked intervals, with the punches
// that could not be matched reported as diagnostics. Days that produced no
// interval are absent from Days.
type PairResult struct {
	Days     map[string][]payroll.WorkedInterval // keyed YYYY-MM-DD
	Unpaired []payroll.UnpairedEvent
}

// PairEvents reconstructs worked intervals from one worker's attendance
// events within a window. Pairing is greedy earliest-valid per calendar day:
// punches are expected to be temporally well-ordered in the common case, and
// the walk tolerates duplicate or out-of-order punches without crashing or
// double-counting hours.
func PairEvents(events []attendance.Event) PairResult {
	byDay := make(map[string][]attendance.Event)
	var dayKeys []string
	for _, e := range events {
		key := e.Timestamp.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		byDay[key] = append(byDay[key], e)
	}
	sort.Strings(dayKeys)

	result := PairResult{Days: make(map[string][]payroll.WorkedInterval)}
	for _, key := range dayKeys {
		intervals, unpaired := pairDay(byDay[key])
		if len(intervals) > 0 {
			result.Days[key] = intervals
		}
		result.Unpaired = append(result.Unpaired, unpaired...)
	}
	return result
}

// pairDay runs the two-cursor greedy walk over one day's punches.
func pairDay(events []attendance.Event) ([]payroll.WorkedInterval, []payroll.UnpairedEvent) {
	var ins, outs []attendance.Event
	for _, e := range events {
		switch e.Kind {
		case attendance.EventClockIn:
			ins = append(ins, e)
		case attendance.EventClockOut:
			outs = append(outs, e)
		}
	}
	// stable: ties keep original insertion order
	sort.SliceStable(ins, func(i, j int) bool { return ins[i].Timestamp.Before(ins[j].Timestamp) })
	sort.SliceStable(outs, func(i, j int) bool { return outs[i].Timestamp.Before(outs[j].Timestamp) })

	var intervals []payroll.WorkedInterval
	var unpaired []payroll.UnpairedEvent

	i, o := 0, 0
	for i < len(ins) && o < len(outs) {
		in, out := ins[i], outs[o]
		if out.Timestamp.After(in.Timestamp) {
			intervals = append(intervals, payroll.WorkedInterval{
				Date:     truncateDay(in.Timestamp),
				ClockIn:  in.Timestamp,
				ClockOut: out.Timestamp,
				Hours:    intervalHours(in.Timestamp, out.Timestamp),
			})
			i++
			o++
			continue
		}
		// stale or duplicate out-punch preceding its in-punch: orphaned,
		// never matched backward
		unpaired = append(unpaired, unpairedOf(out))
		o++
	}
	for ; i < len(ins); i++ {
		unpaired = append(unpaired, unpairedOf(ins[i]))
	}
	for ; o < len(outs); o++ {
		unpaired = append(unpaired, unpairedOf(outs[o]))
	}

	return intervals, unpaired
}

// intervalHours computes (clockOut - clockIn) in minutes / 60 with
// sub-minute precision. The value stays unrounded; only final outputs are
// rounded to the configured precision.
func intervalHours(in, out time.Time) decimal.Decimal {
	minutes := decimal.NewFromFloat(out.Sub(in).Minutes())
	return minutes.Div(decimal.NewFromInt(60))
}

func unpairedOf(e attendance.Event) payroll.UnpairedEvent {
	return payroll.UnpairedEvent{
		WorkerID:  e.WorkerID,
		Kind:      string(e.Kind),
		Timestamp: e.Timestamp,
	}
}
