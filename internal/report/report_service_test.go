package report

import (
	"context"
	"testing"
	"time"

	"leavehr/internal/employee"
	"leavehr/internal/engine"
	"leavehr/internal/leave"
	salaryerrors "leavehr/internal/salary/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	emp engine.Employment
}

func (f *fakeEmployees) GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error) {
	return f.emp, nil
}

func (f *fakeEmployees) GetByID(ctx context.Context, entityID, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: id}, nil
}

type fakePolicies struct {
	byBucket map[engine.Bucket]*engine.PolicyParams
}

func (f *fakePolicies) Resolve(ctx context.Context, entityID string, bucket engine.Bucket) (*engine.PolicyParams, error) {
	return f.byBucket[bucket], nil
}

type fakeHolidays struct {
	dates []time.Time
}

func (f *fakeHolidays) ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error) {
	return f.dates, nil
}

type fakeLeaves struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaves) FindApprovedInPeriod(ctx context.Context, entityID, employeeID string, periodStart, periodEnd time.Time) ([]leave.LeaveRequest, error) {
	return f.requests, nil
}

type fakeRates struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRates) HourlyRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	return f.rate, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullTimer() engine.Employment {
	return engine.Employment{
		Type:         engine.FullTime,
		HoursPerWeek: 38,
		StartDate:    day(2024, time.January, 1),
	}
}

func annualParams() *engine.PolicyParams {
	return &engine.PolicyParams{
		Bucket:               engine.BucketAnnual,
		AccrualRate:          4.0 / 52.0,
		PayableOnTermination: true,
	}
}

func approved(bucket string, start, end time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     uuid.New(),
		Bucket:         bucket,
		StartDate:      start,
		EndDate:        end,
		PartialDayType: "full",
		Status:         leave.StatusApproved,
	}
}

func summaryRequest() PeriodSummaryRequest {
	return PeriodSummaryRequest{
		EmployeeID:  uuid.NewString(),
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-03-31",
	}
}

func TestSummarize_OpeningAccruedTakenClosing(t *testing.T) {
	emp := fullTimer()
	params := annualParams()
	svc := NewService(
		&fakeEmployees{emp: emp},
		&fakePolicies{byBucket: map[engine.Bucket]*engine.PolicyParams{engine.BucketAnnual: params}},
		&fakeHolidays{},
		&fakeLeaves{requests: []leave.LeaveRequest{
			// Two days taken well before the window, one week inside it.
			approved("annual", day(2024, time.June, 3), day(2024, time.June, 4)),
			approved("annual", day(2025, time.March, 3), day(2025, time.March, 7)),
		}},
		&fakeRates{rate: decimal.NewFromInt(40)},
	)

	resp, err := svc.Summarize(context.Background(), uuid.NewString(), summaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 1)

	bs := resp.Buckets[0]
	assert.Equal(t, "annual", bs.Bucket)
	assert.InDelta(t, 7.6, bs.HoursPerDay, 1e-9)

	periodStart := day(2025, time.January, 1)
	periodEnd := day(2025, time.March, 31)
	wantOpening := engine.AccruedTotal(emp, *params, periodStart) - 2*7.6
	wantAccrued := engine.Accrue(emp, *params, periodStart, periodEnd)

	assert.InDelta(t, wantOpening, bs.Opening, 1e-9)
	assert.InDelta(t, wantAccrued, bs.Accrued, 1e-9)
	assert.InDelta(t, 5*7.6, bs.Taken, 1e-9)
	assert.InDelta(t, bs.Opening+bs.Accrued-bs.Taken, bs.Closing, 1e-9)

	require.NotNil(t, bs.Liability)
	want := engine.Liability(bs.Closing, 40, engine.BucketAnnual, true)
	assert.Equal(t, want.StringFixed(2), *bs.Liability)
}

func TestSummarize_HolidayInsideSpanNotTaken(t *testing.T) {
	svc := NewService(
		&fakeEmployees{emp: fullTimer()},
		&fakePolicies{byBucket: map[engine.Bucket]*engine.PolicyParams{engine.BucketAnnual: annualParams()}},
		&fakeHolidays{dates: []time.Time{day(2025, time.March, 5)}},
		&fakeLeaves{requests: []leave.LeaveRequest{
			approved("annual", day(2025, time.March, 3), day(2025, time.March, 7)),
		}},
		&fakeRates{rate: decimal.NewFromInt(40)},
	)

	resp, err := svc.Summarize(context.Background(), uuid.NewString(), summaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 1)
	assert.InDelta(t, 4*7.6, resp.Buckets[0].Taken, 1e-9)
}

func TestSummarize_PersonalBucketHasNoLiability(t *testing.T) {
	svc := NewService(
		&fakeEmployees{emp: fullTimer()},
		&fakePolicies{byBucket: map[engine.Bucket]*engine.PolicyParams{
			engine.BucketPersonal: {
				Bucket:      engine.BucketPersonal,
				AccrualRate: 2.0 / 52.0,
			},
		}},
		&fakeHolidays{},
		&fakeLeaves{},
		&fakeRates{rate: decimal.NewFromInt(40)},
	)

	resp, err := svc.Summarize(context.Background(), uuid.NewString(), summaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 1)
	assert.Equal(t, "personal", resp.Buckets[0].Bucket)
	assert.Nil(t, resp.Buckets[0].Liability)
}

func TestSummarize_NoRateSkipsLiability(t *testing.T) {
	svc := NewService(
		&fakeEmployees{emp: fullTimer()},
		&fakePolicies{byBucket: map[engine.Bucket]*engine.PolicyParams{engine.BucketAnnual: annualParams()}},
		&fakeHolidays{},
		&fakeLeaves{},
		&fakeRates{err: salaryerrors.ErrNoApplicableRate},
	)

	resp, err := svc.Summarize(context.Background(), uuid.NewString(), summaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 1)
	assert.Nil(t, resp.Buckets[0].Liability)
}

func TestSummarize_InvertedWindowRejected(t *testing.T) {
	svc := NewService(
		&fakeEmployees{emp: fullTimer()},
		&fakePolicies{byBucket: map[engine.Bucket]*engine.PolicyParams{engine.BucketAnnual: annualParams()}},
		&fakeHolidays{},
		&fakeLeaves{},
		&fakeRates{rate: decimal.NewFromInt(40)},
	)

	_, err := svc.Summarize(context.Background(), uuid.NewString(), PeriodSummaryRequest{
		EmployeeID:  uuid.NewString(),
		PeriodStart: "2025-03-31",
		PeriodEnd:   "2025-01-01",
	})
	assert.Error(t, err)
}
