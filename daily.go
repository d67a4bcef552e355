package fitload

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// DailyLoad is the accumulated training stress of one calendar day.
type DailyLoad struct {
	Date time.Time `json:"date"`
	TSS  float64   `json:"tss"`
}

// DailyLoadSeries holds one DailyLoad per day of a fixed inclusive date range.
// Every day exists from construction with zero load. Add is not safe for concurrent use.
type DailyLoadSeries struct {
	start time.Time
	days  []DailyLoad
}

// NewDailyLoadSeries creates the zero-load days from start to end inclusive.
// Both dates are reduced to their calendar day.
func NewDailyLoadSeries(start, end time.Time) (*DailyLoadSeries, error) {
	first, last := CivilDay(start), CivilDay(end)
	if last.Before(first) {
		return nil, fmt.Errorf("invalid date range: start %s is after end %s",
			first.Format(dateLayout), last.Format(dateLayout))
	}
	n := daysBetween(first, last) + 1
	days := make([]DailyLoad, n)
	for i := range days {
		days[i] = DailyLoad{Date: first.AddDate(0, 0, i)}
	}
	return &DailyLoadSeries{start: first, days: days}, nil
}

// Add accumulates tss on the calendar day of date. It returns false, leaving the
// series unchanged, when the day lies outside the range.
func (d *DailyLoadSeries) Add(date time.Time, tss float64) bool {
	idx := daysBetween(d.start, CivilDay(date))
	if idx < 0 || idx >= len(d.days) {
		return false
	}
	d.days[idx].TSS += tss
	return true
}

// Contains reports whether the calendar day of date is inside the range.
func (d *DailyLoadSeries) Contains(date time.Time) bool {
	idx := daysBetween(d.start, CivilDay(date))
	return idx >= 0 && idx < len(d.days)
}

// Start returns the first day of the range.
func (d *DailyLoadSeries) Start() time.Time { return d.start }

// End returns the last day of the range.
func (d *DailyLoadSeries) End() time.Time { return d.days[len(d.days)-1].Date }

// Days returns a copy of the daily records in date order.
func (d *DailyLoadSeries) Days() []DailyLoad {
	return append([]DailyLoad(nil), d.days...)
}

// TotalTSS is the sum of all daily loads.
func (d *DailyLoadSeries) TotalTSS() float64 {
	return lo.SumBy(d.days, func(day DailyLoad) float64 { return day.TSS })
}

// Performance computes the PMC over the current daily loads.
func (d *DailyLoadSeries) Performance() []PerformanceDay {
	return ComputePerformance(d.days)
}

// daysBetween counts whole days from a to b. Both must be civil days at 00:00 UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
