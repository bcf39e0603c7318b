package engine_test

import (
	"testing"
	"time"

	"leavehr/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest_RoundTrip(t *testing.T) {
	// 38 h/week with no policy standard hours derives 7.6 h/day, so five
	// business days need exactly 38 hours.
	hpd := engine.HoursPerDay(0, 38)
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 3),
		End:    date(2025, 3, 7),
	}, 40, hpd, nil)

	assert.True(t, v.OK)
	assert.Equal(t, 5.0, v.ChargeableDays)
	assert.InDelta(t, 38.0, v.NeededHours, 1e-9)
}

func TestValidateRequest_InsufficientBalanceIsWarning(t *testing.T) {
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 3),
		End:    date(2025, 3, 7),
	}, 20, 7.608, nil) // 5 × 7.608 = 38.04 > 20 + 0.01

	assert.False(t, v.OK)
	assert.Contains(t, v.Warning, "insufficient balance")
	assert.InDelta(t, 38.04, v.NeededHours, 1e-9)
	assert.Equal(t, 20.0, v.AvailableHours)
}

func TestValidateRequest_EpsilonAbsorbsDrift(t *testing.T) {
	// Exactly at the balance plus drift inside epsilon: no warning.
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 3),
		End:    date(2025, 3, 7),
	}, 38.0, 7.6005, nil) // needed 38.0025, within 0.01 of available
	assert.True(t, v.OK)
}

func TestValidateRequest_MissingFieldsNoWarning(t *testing.T) {
	v := engine.ValidateRequest(engine.RequestInput{}, 0, 7.6, nil)
	assert.True(t, v.OK)
	assert.Empty(t, v.Warning)

	v = engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 3),
	}, 0, 7.6, nil)
	assert.True(t, v.OK)
}

func TestValidateRequest_ZeroChargeableDaysNoWarning(t *testing.T) {
	// A weekend-only request consumes nothing and raises nothing.
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 8),
		End:    date(2025, 3, 9),
	}, 0, 7.6, nil)
	assert.True(t, v.OK)
	assert.Equal(t, 0.0, v.NeededHours)
}

func TestValidateRequest_MultiDayHalfDayRejected(t *testing.T) {
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket:  engine.BucketAnnual,
		Start:   date(2025, 3, 3),
		End:     date(2025, 3, 5),
		Partial: engine.PartialHalfPM,
	}, 100, 7.6, nil)

	assert.False(t, v.OK)
	assert.Contains(t, v.Warning, "half-day")
}

func TestValidateRequest_HalfDayNeedsHalfHours(t *testing.T) {
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket:  engine.BucketPersonal,
		Start:   date(2025, 3, 3),
		End:     date(2025, 3, 3),
		Partial: engine.PartialHalfAM,
	}, 10, 7.6, nil)

	assert.True(t, v.OK)
	assert.InDelta(t, 3.8, v.NeededHours, 1e-9)
}

func TestValidateRequest_HolidaysReduceNeededHours(t *testing.T) {
	holidays := []time.Time{date(2025, 3, 5)}
	v := engine.ValidateRequest(engine.RequestInput{
		Bucket: engine.BucketAnnual,
		Start:  date(2025, 3, 3),
		End:    date(2025, 3, 7),
	}, 40, 7.6, holidays)

	assert.True(t, v.OK)
	assert.Equal(t, 4.0, v.ChargeableDays)
	assert.Equal(t, 1, v.HolidayCount)
}
