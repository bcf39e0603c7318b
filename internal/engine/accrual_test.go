package engine_test

import (
	"testing"
	"time"

	"leavehr/internal/engine"

	"github.com/stretchr/testify/assert"
)

// Four weeks of annual leave per year for a full-time employee.
const annualRate = 4.0 / 52.0

func fullTimer(start time.Time) engine.Employment {
	return engine.Employment{
		Type:         engine.FullTime,
		HoursPerWeek: 38,
		StartDate:    start,
	}
}

func annualPolicy() engine.PolicyParams {
	return engine.PolicyParams{
		Bucket:                  engine.BucketAnnual,
		AccrualRate:             annualRate,
		AccrueBeforeEligibility: true,
		PayableOnTermination:    true,
	}
}

func TestAccruedTotal_FullYearApproximatesFourWeeks(t *testing.T) {
	emp := fullTimer(date(2024, 1, 1))
	got := engine.AccruedTotal(emp, annualPolicy(), date(2025, 1, 1))
	// 366 days of 2024: slightly over 4 × 38 hours.
	assert.InDelta(t, 4*38.0, got, 1.0)
}

func TestAccrue_Progressive(t *testing.T) {
	emp := fullTimer(date(2024, 1, 1))
	p := annualPolicy()

	week := engine.Accrue(emp, p, date(2024, 6, 3), date(2024, 6, 10))
	// One week of service accrues one 52nd of the annual entitlement.
	assert.InDelta(t, 4*38.0/52.0, week, 0.001)

	// Proportional for arbitrary sub-windows, including partial pay periods.
	threeDays := engine.Accrue(emp, p, date(2024, 6, 3), date(2024, 6, 6))
	assert.InDelta(t, week*3/7, threeDays, 1e-9)
}

func TestAccrue_WindowAdditivity(t *testing.T) {
	emp := fullTimer(date(2023, 7, 1))
	p := annualPolicy()

	whole := engine.Accrue(emp, p, date(2024, 1, 1), date(2024, 12, 31))
	split := engine.Accrue(emp, p, date(2024, 1, 1), date(2024, 5, 20)) +
		engine.Accrue(emp, p, date(2024, 5, 20), date(2024, 12, 31))
	assert.InDelta(t, whole, split, 1e-9,
		"adjacent windows must sum exactly to their union")
}

func TestAccrue_ZeroAndInvertedWindows(t *testing.T) {
	emp := fullTimer(date(2024, 1, 1))
	p := annualPolicy()

	assert.Equal(t, 0.0, engine.Accrue(emp, p, date(2024, 6, 1), date(2024, 6, 1)))
	assert.Equal(t, 0.0, engine.Accrue(emp, p, date(2024, 6, 10), date(2024, 6, 1)))
	assert.Equal(t, 0.0, engine.Accrue(emp, p, time.Time{}, date(2024, 6, 1)))
}

func TestAccrue_BeforeEmploymentStartIsZero(t *testing.T) {
	emp := fullTimer(date(2024, 6, 1))
	got := engine.Accrue(emp, annualPolicy(), date(2024, 1, 1), date(2024, 3, 1))
	assert.Equal(t, 0.0, got)
}

func TestAccrue_CasualExcluded(t *testing.T) {
	emp := engine.Employment{
		Type:         engine.Casual,
		HoursPerWeek: 30,
		StartDate:    date(2020, 1, 1),
	}

	p := annualPolicy()
	assert.Equal(t, 0.0, engine.AccruedTotal(emp, p, date(2025, 1, 1)))

	p.Bucket = engine.BucketPersonal
	assert.Equal(t, 0.0, engine.AccruedTotal(emp, p, date(2025, 1, 1)))
}

func TestAccrue_ContractorExcluded(t *testing.T) {
	emp := engine.Employment{
		Type:         engine.Contractor,
		HoursPerWeek: 40,
		StartDate:    date(2020, 1, 1),
	}
	assert.Equal(t, 0.0, engine.AccruedTotal(emp, annualPolicy(), date(2025, 1, 1)))
}

func TestAccrue_PartTimeProRata(t *testing.T) {
	full := fullTimer(date(2024, 1, 1))
	half := full
	half.Type = engine.PartTime
	half.HoursPerWeek = 19

	p := annualPolicy()
	asOf := date(2024, 12, 31)
	assert.InDelta(t,
		engine.AccruedTotal(full, p, asOf)/2,
		engine.AccruedTotal(half, p, asOf),
		1e-9)
}

func longServicePolicy(retroactive bool) engine.PolicyParams {
	return engine.PolicyParams{
		Bucket:                  engine.BucketLongService,
		AccrualRate:             8.6667 / 52.0 / 10.0, // 8.67 weeks after ten years
		MinServiceYears:         7,
		AccrueBeforeEligibility: retroactive,
	}
}

func TestAccrue_EligibilityGateHoldsAtZero(t *testing.T) {
	emp := fullTimer(date(2020, 1, 1))
	p := longServicePolicy(true)

	assert.Equal(t, 0.0, engine.AccruedTotal(emp, p, date(2026, 12, 31)),
		"nothing is available before the service anniversary")
}

func TestAccrue_RetroactiveOnEligibility(t *testing.T) {
	emp := fullTimer(date(2020, 1, 1))
	p := longServicePolicy(true)

	// The day the gate opens, the full progressive accrual since the start
	// of employment becomes available at once.
	atGate := engine.AccruedTotal(emp, p, date(2027, 1, 1))
	days := date(2027, 1, 1).Sub(date(2020, 1, 1)).Hours() / 24
	assert.InDelta(t, 38.0/7*days*p.AccrualRate, atGate, 0.001)

	// And the incremental window crossing the gate carries the whole
	// retroactive amount.
	crossing := engine.Accrue(emp, p, date(2026, 12, 1), date(2027, 1, 1))
	assert.InDelta(t, atGate, crossing, 1e-9)
}

func TestAccrue_ForwardOnlyWhenNotRetroactive(t *testing.T) {
	emp := fullTimer(date(2020, 1, 1))
	p := longServicePolicy(false)

	// One year past the gate: only that year has accrued.
	got := engine.AccruedTotal(emp, p, date(2028, 1, 1))
	days := date(2028, 1, 1).Sub(date(2027, 1, 1)).Hours() / 24
	assert.InDelta(t, 38.0/7*days*p.AccrualRate, got, 0.001)
}

func TestAccrue_ServiceStartDateDrivesEligibility(t *testing.T) {
	emp := fullTimer(date(2023, 1, 1))
	emp.ServiceStartDate = date(2019, 1, 1) // recognized prior service
	p := longServicePolicy(true)

	// Seven years from recognized service start, not the re-hire date.
	assert.Greater(t, engine.AccruedTotal(emp, p, date(2026, 6, 1)), 0.0)
}
