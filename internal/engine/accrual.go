package engine

import "time"

const hoursPerCalendarDay = 24

// AccruedTotal computes the hours of leave accrued from the start of
// employment up to asOf under the given policy. Accrual is progressive:
// it grows in proportion to ordinary hours worked, never in lump grants,
// so the value is continuous in asOf and exact for arbitrary sub-windows.
//
// Casual and contractor employment short-circuits to zero for excluded
// buckets. A MinServiceYears gate holds the total at zero until the
// employee's service anniversary; once reached, the total includes the
// full accrual window when AccrueBeforeEligibility is set (the gate only
// defers availability), or accrues forward from the eligibility date when
// it is not.
func AccruedTotal(emp Employment, p PolicyParams, asOf time.Time) float64 {
	if !entitledTo(emp.Type, p.Bucket) {
		return 0
	}
	if p.AccrualRate <= 0 || emp.HoursPerWeek <= 0 {
		return 0
	}
	if emp.StartDate.IsZero() || asOf.IsZero() {
		return 0
	}

	from := dateOnly(emp.StartDate)
	asOf = dateOnly(asOf)
	if asOf.Before(from) {
		return 0
	}

	if p.MinServiceYears > 0 {
		eligibleAt := dateOnly(emp.serviceStart()).AddDate(p.MinServiceYears, 0, 0)
		if asOf.Before(eligibleAt) {
			return 0
		}
		if !p.AccrueBeforeEligibility && eligibleAt.After(from) {
			from = eligibleAt
		}
	}

	days := asOf.Sub(from).Hours() / hoursPerCalendarDay
	ordinaryHoursWorked := emp.HoursPerWeek / 7 * days
	return ordinaryHoursWorked * p.AccrualRate
}

// Accrue computes the hours accrued within the window (from, to]. It is
// defined as a difference of totals, which makes incremental checkpoint
// advances additive: summing Accrue over adjacent windows always equals
// AccruedTotal over the union, including the window in which a
// long-service eligibility gate opens and the retroactive amount lands.
// Zero-duration and inverted windows accrue zero.
func Accrue(emp Employment, p PolicyParams, from, to time.Time) float64 {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return 0
	}
	accrued := AccruedTotal(emp, p, to) - AccruedTotal(emp, p, from)
	if accrued < 0 {
		return 0
	}
	return accrued
}
