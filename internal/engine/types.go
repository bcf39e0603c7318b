// Package engine is the pure computation core of the leave entitlement
// system: business-day arithmetic, policy-driven accrual, request
// validation, period summaries and staffing-conflict evaluation.
//
// The package performs no I/O. Every input (employees, policies, holidays,
// requests, staffing rules) is plain data supplied by the caller, so each
// function is synchronous, deterministic and safe to call from any number
// of goroutines. Malformed input yields zero values, never a panic.
package engine

import "time"

type EmploymentType string

const (
	FullTime   EmploymentType = "full_time"
	PartTime   EmploymentType = "part_time"
	Casual     EmploymentType = "casual"
	Contractor EmploymentType = "contractor"
)

type PartialDay string

const (
	PartialNone   PartialDay = "full"
	PartialHalfAM PartialDay = "half_am"
	PartialHalfPM PartialDay = "half_pm"
)

// IsHalfDay reports whether p charges half of the first day.
func (p PartialDay) IsHalfDay() bool {
	return p == PartialHalfAM || p == PartialHalfPM
}

// Employment carries the employee attributes that drive accrual. Any change
// to one of these fields invalidates previously accrued balances and
// requires a full ledger rebuild.
type Employment struct {
	Type             EmploymentType
	HoursPerWeek     float64
	StartDate        time.Time
	ServiceStartDate time.Time // zero means StartDate
}

// serviceStart returns the date long-service eligibility is measured from.
func (e Employment) serviceStart() time.Time {
	if e.ServiceStartDate.IsZero() {
		return e.StartDate
	}
	return e.ServiceStartDate
}

// PolicyParams are the effective parameters of the single active policy for
// an (entity, bucket) pair, as derived by the policy resolver.
type PolicyParams struct {
	Bucket              Bucket
	StandardHoursPerDay float64
	// AccrualRate is hours of leave accrued per ordinary hour worked.
	// Annual leave at four weeks per year is 4/52 ≈ 0.0769.
	AccrualRate     float64
	MinServiceYears int
	// AccrueBeforeEligibility controls long-service retroactivity: when
	// true (the default), leave accrues progressively from the start of the
	// accrual window and MinServiceYears gates availability only. When
	// false, accrual itself starts at the eligibility date.
	AccrueBeforeEligibility bool
	PayableOnTermination    bool
}
