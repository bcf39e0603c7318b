package engine

import (
	"fmt"
	"time"
)

// BalanceEpsilon absorbs floating-point drift when comparing required
// hours against an available balance.
const BalanceEpsilon = 0.01

// RequestInput is a proposed leave request reduced to the fields the
// validator needs.
type RequestInput struct {
	Bucket  Bucket
	Start   time.Time
	End     time.Time
	Partial PartialDay
}

// Validation is the outcome of a pre-submit or approval-time check.
// OK false carries a human-readable warning; insufficient balance is
// advisory only and a manager may still approve the request.
type Validation struct {
	OK             bool    `json:"ok"`
	Warning        string  `json:"warning,omitempty"`
	NeededHours    float64 `json:"needed_hours"`
	AvailableHours float64 `json:"available_hours"`
	ChargeableDays float64 `json:"chargeable_days"`
	HolidayCount   int     `json:"holiday_count"`
}

// ValidateRequest converts a proposed request into required hours and
// compares against the available balance. Missing leave type or dates, and
// spans that charge zero days, return OK with no warning: those states are
// surfaced by field-level validation upstream, not here. A half-day marker
// on a multi-day span is rejected outright.
func ValidateRequest(req RequestInput, availableHours, hoursPerDay float64, holidays []time.Time) Validation {
	v := Validation{OK: true, AvailableHours: availableHours}

	if req.Bucket == "" || req.Start.IsZero() || req.End.IsZero() {
		return v
	}
	if req.Partial.IsHalfDay() && !dateOnly(req.Start).Equal(dateOnly(req.End)) {
		v.OK = false
		v.Warning = "half-day requests must start and end on the same day"
		return v
	}

	dc := BusinessDays(req.Start, req.End, holidays, req.Partial)
	v.ChargeableDays = dc.ChargeableDays
	v.HolidayCount = dc.HolidayCount
	if dc.ChargeableDays <= 0 {
		return v
	}

	v.NeededHours = dc.ChargeableDays * hoursPerDay
	if v.NeededHours > availableHours+BalanceEpsilon {
		v.OK = false
		v.Warning = fmt.Sprintf(
			"insufficient balance: %.2f hours required, %.2f available",
			v.NeededHours, availableHours,
		)
	}
	return v
}
