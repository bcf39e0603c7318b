package engine

import "time"

// DayCount is the result of counting chargeable days for a date span.
type DayCount struct {
	// ChargeableDays is the whole-day count after the half-day adjustment.
	ChargeableDays float64
	// BusinessDays is the weekday count excluding public holidays.
	BusinessDays int
	// HolidayCount is the number of public holidays that fell on weekdays
	// inside the span, reported separately for display.
	HolidayCount int
}

// BusinessDays counts the days chargeable against a leave request between
// start and end inclusive. Weekends are excluded, public holidays falling
// on weekdays are excluded and counted separately, and a half-day request
// over a single calendar day charges 0.5. Malformed spans (zero dates,
// end before start) count as zero; surfacing that as a validation error is
// the caller's job.
func BusinessDays(start, end time.Time, holidays []time.Time, partial PartialDay) DayCount {
	var out DayCount
	if start.IsZero() || end.IsZero() {
		return out
	}
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return out
	}

	holidaySet := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[dateOnly(h)] = struct{}{}
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if _, ok := holidaySet[d]; ok {
			out.HolidayCount++
			continue
		}
		out.BusinessDays++
	}

	out.ChargeableDays = float64(out.BusinessDays)
	// Half days only apply to single-day requests; the validator rejects a
	// half-day marker on a multi-day span before it reaches here.
	if partial.IsHalfDay() && start.Equal(end) && out.BusinessDays == 1 {
		out.ChargeableDays = 0.5
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
