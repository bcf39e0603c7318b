package report

import (
	"context"
	"errors"
	"time"

	"leavehr/internal/employee"
	"leavehr/internal/engine"
	"leavehr/internal/leave"
	salaryerrors "leavehr/internal/salary/errors"
	"leavehr/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EmploymentSource projects an employee record into its accrual inputs
// and exposes the record itself for location scoping.
type EmploymentSource interface {
	GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error)
	GetByID(ctx context.Context, entityID, id string) (employee.EmployeeResponse, error)
}

// PolicySource resolves the active policy for a bucket, nil when the
// entity has none.
type PolicySource interface {
	Resolve(ctx context.Context, entityID string, bucket engine.Bucket) (*engine.PolicyParams, error)
}

// HolidaySource lists the holiday dates applying to a location within a
// window.
type HolidaySource interface {
	ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error)
}

// ApprovedSource lists an employee's approved leave intersecting a window.
type ApprovedSource interface {
	FindApprovedInPeriod(ctx context.Context, entityID, employeeID string, periodStart, periodEnd time.Time) ([]leave.LeaveRequest, error)
}

// RateSource resolves the hourly rate in effect at a date.
type RateSource interface {
	HourlyRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (decimal.Decimal, error)
}

type Service interface {
	// Summarize builds the per-bucket opening/accrued/taken/closing
	// breakdown for a reporting window. The opening balance is derived
	// from the employment record: accrual through the period start minus
	// leave taken before it.
	Summarize(ctx context.Context, entityID string, req PeriodSummaryRequest) (PeriodSummaryResponse, error)
}

type service struct {
	employees EmploymentSource
	policies  PolicySource
	holidays  HolidaySource
	leaves    ApprovedSource
	rates     RateSource
	logger    *zap.Logger
}

func NewService(
	employees EmploymentSource,
	policies PolicySource,
	holidays HolidaySource,
	leaves ApprovedSource,
	rates RateSource,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		employees: employees,
		policies:  policies,
		holidays:  holidays,
		leaves:    leaves,
		rates:     rates,
		logger:    l,
	}
}

func (s *service) Summarize(ctx context.Context, entityID string, req PeriodSummaryRequest) (PeriodSummaryResponse, error) {
	periodStart, err := time.ParseInLocation(time.DateOnly, req.PeriodStart, time.UTC)
	if err != nil {
		return PeriodSummaryResponse{}, apperror.InvalidField("period_start")
	}
	periodEnd, err := time.ParseInLocation(time.DateOnly, req.PeriodEnd, time.UTC)
	if err != nil {
		return PeriodSummaryResponse{}, apperror.InvalidField("period_end")
	}
	if periodEnd.Before(periodStart) {
		return PeriodSummaryResponse{}, apperror.InvalidField("period_end")
	}

	record, err := s.employees.GetByID(ctx, entityID, req.EmployeeID)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}
	emp, err := s.employees.GetEmployment(ctx, entityID, req.EmployeeID)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	historyStart := emp.StartDate
	if historyStart.After(periodStart) {
		historyStart = periodStart
	}

	holidays, err := s.holidays.ListDates(ctx, entityID, record.Location, historyStart, periodEnd)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	approved, err := s.leaves.FindApprovedInPeriod(ctx, entityID, req.EmployeeID, historyStart, periodEnd)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	var rate float64
	haveRate := false
	if s.rates != nil {
		d, rateErr := s.rates.HourlyRate(ctx, entityID, req.EmployeeID, periodEnd)
		switch {
		case rateErr == nil:
			rate = d.InexactFloat64()
			haveRate = true
		case errors.Is(rateErr, salaryerrors.ErrNoApplicableRate):
			s.logger.Warn("no hourly rate for liability valuation",
				zap.String("employee_id", req.EmployeeID),
				zap.String("as_of", req.PeriodEnd))
		default:
			return PeriodSummaryResponse{}, rateErr
		}
	}

	resp := PeriodSummaryResponse{
		EmployeeID:  req.EmployeeID,
		PeriodStart: periodStart.Format(time.DateOnly),
		PeriodEnd:   periodEnd.Format(time.DateOnly),
	}

	for _, bucket := range engine.Buckets() {
		params, err := s.policies.Resolve(ctx, entityID, bucket)
		if err != nil {
			return PeriodSummaryResponse{}, err
		}
		if params == nil {
			continue
		}

		hoursPerDay := engine.HoursPerDay(params.StandardHoursPerDay, emp.HoursPerWeek)
		taken := bucketLeave(approved, bucket)

		opening := engine.AccruedTotal(emp, *params, periodStart) -
			engine.TakenWithin(historyStart, periodStart.AddDate(0, 0, -1), taken, holidays, hoursPerDay)
		accrued := engine.Accrue(emp, *params, periodStart, periodEnd)
		takenHours := engine.TakenWithin(periodStart, periodEnd, taken, holidays, hoursPerDay)

		summary := engine.Summarize(opening, accrued, takenHours)

		bs := BucketSummary{
			Bucket:        string(bucket),
			PeriodSummary: summary,
			HoursPerDay:   hoursPerDay,
		}
		if haveRate {
			if v := engine.Liability(summary.Closing, rate, bucket, params.PayableOnTermination); v != nil {
				formatted := v.StringFixed(2)
				bs.Liability = &formatted
			}
		}
		resp.Buckets = append(resp.Buckets, bs)
	}

	return resp, nil
}

// bucketLeave filters approved requests to one bucket and projects them
// into the shape the window calculator consumes.
func bucketLeave(requests []leave.LeaveRequest, bucket engine.Bucket) []engine.ApprovedLeave {
	var out []engine.ApprovedLeave
	for _, r := range requests {
		if engine.Bucket(r.Bucket) != bucket {
			continue
		}
		out = append(out, engine.ApprovedLeave{
			Start:   r.StartDate,
			End:     r.EndDate,
			Partial: engine.PartialDay(r.PartialDayType),
		})
	}
	return out
}
