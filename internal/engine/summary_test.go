package engine_test

import (
	"testing"

	"leavehr/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := engine.Summarize(40, 10, 15)
	assert.Equal(t, 40.0, s.Opening)
	assert.Equal(t, 10.0, s.Accrued)
	assert.Equal(t, 15.0, s.Taken)
	assert.Equal(t, 35.0, s.Closing)
}

func TestTakenWithin_ClipsToWindow(t *testing.T) {
	// Request Thu 2025-02-27 .. Tue 2025-03-04 overlaps a window starting
	// 2025-03-01; only Mon 3rd and Tue 4th are chargeable inside it.
	reqs := []engine.ApprovedLeave{
		{Start: date(2025, 2, 27), End: date(2025, 3, 4)},
	}
	taken := engine.TakenWithin(date(2025, 3, 1), date(2025, 3, 31), reqs, nil, 7.6)
	assert.InDelta(t, 2*7.6, taken, 1e-9)
}

func TestTakenWithin_RequestOutsideWindowIgnored(t *testing.T) {
	reqs := []engine.ApprovedLeave{
		{Start: date(2025, 1, 6), End: date(2025, 1, 10)},
	}
	taken := engine.TakenWithin(date(2025, 3, 1), date(2025, 3, 31), reqs, nil, 7.6)
	assert.Equal(t, 0.0, taken)
}

func TestTakenWithin_HalfDayRequest(t *testing.T) {
	reqs := []engine.ApprovedLeave{
		{Start: date(2025, 3, 3), End: date(2025, 3, 3), Partial: engine.PartialHalfAM},
	}
	taken := engine.TakenWithin(date(2025, 3, 1), date(2025, 3, 31), reqs, nil, 8)
	assert.InDelta(t, 4.0, taken, 1e-9)
}

func TestTakenWithin_SummaryExample(t *testing.T) {
	// Opening 40, accrued 10, 15 hours of approved leave in the window.
	reqs := []engine.ApprovedLeave{
		{Start: date(2025, 3, 3), End: date(2025, 3, 4)}, // 2 days × 7.5h
	}
	taken := engine.TakenWithin(date(2025, 3, 1), date(2025, 3, 31), reqs, nil, 7.5)
	s := engine.Summarize(40, 10, taken)
	assert.Equal(t, 35.0, s.Closing)
}

func TestLiability_PersonalAlwaysExcluded(t *testing.T) {
	// Jurisdictional rule: sick/personal leave is never paid out, even when
	// a policy is misconfigured as payable.
	assert.Nil(t, engine.Liability(100, 45, engine.BucketPersonal, true))
	assert.Nil(t, engine.Liability(100, 45, engine.BucketPersonal, false))
}

func TestLiability_NotPayableExcluded(t *testing.T) {
	assert.Nil(t, engine.Liability(100, 45, engine.BucketAnnual, false))
}

func TestLiability_PayableAnnual(t *testing.T) {
	v := engine.Liability(38, 45.50, engine.BucketAnnual, true)
	assert.NotNil(t, v)
	assert.Equal(t, "1729", v.String())
}

func TestLiability_RoundsToCents(t *testing.T) {
	v := engine.Liability(1.5, 33.333, engine.BucketLongService, true)
	assert.NotNil(t, v)
	assert.Equal(t, "50", v.String())
}
