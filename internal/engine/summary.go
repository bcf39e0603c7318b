package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary is the opening/accrued/taken/closing breakdown for a
// reporting window. Closing is always opening + accrued - taken.
type PeriodSummary struct {
	Opening float64 `json:"opening_hours"`
	Accrued float64 `json:"accrued_hours"`
	Taken   float64 `json:"taken_hours"`
	Closing float64 `json:"closing_hours"`
}

// ApprovedLeave is an approved request as seen by the summary calculator.
type ApprovedLeave struct {
	Start   time.Time
	End     time.Time
	Partial PartialDay
}

// Summarize combines a caller-supplied opening balance (zero for forward
// projections) with accrued and taken hours for the window.
func Summarize(opening, accrued, taken float64) PeriodSummary {
	return PeriodSummary{
		Opening: opening,
		Accrued: accrued,
		Taken:   taken,
		Closing: opening + accrued - taken,
	}
}

// TakenWithin sums the chargeable hours of approved requests intersecting
// the window, clipping each request to the window rather than charging its
// full span. Half-day markers only ever exist on single-day requests, so a
// clipped multi-day request is always charged in whole days.
func TakenWithin(periodStart, periodEnd time.Time, requests []ApprovedLeave, holidays []time.Time, hoursPerDay float64) float64 {
	if periodStart.IsZero() || periodEnd.IsZero() || periodEnd.Before(periodStart) {
		return 0
	}
	periodStart = dateOnly(periodStart)
	periodEnd = dateOnly(periodEnd)

	var taken float64
	for _, r := range requests {
		start := dateOnly(r.Start)
		end := dateOnly(r.End)
		if start.Before(periodStart) {
			start = periodStart
		}
		if end.After(periodEnd) {
			end = periodEnd
		}
		if end.Before(start) {
			continue
		}
		partial := PartialNone
		if dateOnly(r.Start).Equal(dateOnly(r.End)) {
			partial = r.Partial
		}
		dc := BusinessDays(start, end, holidays, partial)
		taken += dc.ChargeableDays * hoursPerDay
	}
	return taken
}

// Liability values an unused balance at the employee's hourly rate,
// rounded to cents. It returns nil when the balance is not payable:
// personal leave is never a termination liability regardless of how the
// policy is flagged, since that exclusion is a jurisdictional rule and
// not an option, and other buckets follow the policy's payable flag.
func Liability(closingHours, hourlyRate float64, bucket Bucket, payableOnTermination bool) *decimal.Decimal {
	if bucket == BucketPersonal {
		return nil
	}
	if !payableOnTermination {
		return nil
	}
	v := decimal.NewFromFloat(closingHours).
		Mul(decimal.NewFromFloat(hourlyRate)).
		Round(2)
	return &v
}
