package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavehr/internal/balance"
	"leavehr/internal/employee"
	"leavehr/internal/engine"
	"leavehr/internal/events"
	leaveerrors "leavehr/internal/leave/errors"
	"leavehr/internal/messaging/kafka"
	"leavehr/internal/shared/apperror"
	"leavehr/internal/shared/contextutil"
	"leavehr/internal/staffing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PolicyResolver maps a leave type to its canonical bucket and active
// policy parameters.
type PolicyResolver interface {
	ResolveForType(ctx context.Context, entityID, leaveTypeID string) (engine.Bucket, *engine.PolicyParams, error)
}

// HolidaySource lists the holiday dates applying to a location within a
// window.
type HolidaySource interface {
	ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error)
}

// EmployeeSource provides the requester's employment profile and record.
type EmployeeSource interface {
	GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error)
	GetByID(ctx context.Context, entityID, id string) (employee.EmployeeResponse, error)
}

type Service interface {
	Validate(ctx context.Context, entityID string, req ValidateLeaveRequest) (ValidationResponse, error)
	Create(ctx context.Context, entityID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, entityID, employeeID, status string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, entityID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, entityID, id string, req DecideLeaveRequest) (ApproveLeaveResponse, error)
	Decline(ctx context.Context, entityID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, entityID, id string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	policies  PolicyResolver
	holidays  HolidaySource
	employees EmployeeSource
	balances  balance.Service
	staffing  staffing.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	policies PolicyResolver,
	holidays HolidaySource,
	employees EmployeeSource,
	balances balance.Service,
	staffingService staffing.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		policies:  policies,
		holidays:  holidays,
		employees: employees,
		balances:  balances,
		staffing:  staffingService,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// assessment is the shared outcome of sizing a request: its bucket, the
// hours it charges, the validator verdict and the requester's record.
type assessment struct {
	bucket     engine.Bucket
	params     *engine.PolicyParams
	validation engine.Validation
	employee   employee.EmployeeResponse
}

func (s *service) assess(ctx context.Context, entityID, employeeID, leaveTypeID string, start, end time.Time, partial engine.PartialDay) (assessment, error) {
	bucket, params, err := s.policies.ResolveForType(ctx, entityID, leaveTypeID)
	if err != nil {
		return assessment{}, err
	}

	record, err := s.employees.GetByID(ctx, entityID, employeeID)
	if err != nil {
		return assessment{}, err
	}
	emp, err := s.employees.GetEmployment(ctx, entityID, employeeID)
	if err != nil {
		return assessment{}, err
	}

	holidays, err := s.holidays.ListDates(ctx, entityID, record.Location, start, end)
	if err != nil {
		return assessment{}, err
	}

	available, err := s.balances.AvailableHours(ctx, entityID, employeeID, bucket)
	if err != nil {
		return assessment{}, err
	}

	// Without a policy, fall back to the employee's weekly pattern for
	// the hours-per-day conversion; the validator still runs.
	var standardHours float64
	if params != nil {
		standardHours = params.StandardHoursPerDay
	}
	hoursPerDay := engine.HoursPerDay(standardHours, emp.HoursPerWeek)

	validation := engine.ValidateRequest(engine.RequestInput{
		Bucket:  bucket,
		Start:   start,
		End:     end,
		Partial: partial,
	}, available, hoursPerDay, holidays)

	return assessment{bucket: bucket, params: params, validation: validation, employee: record}, nil
}

func (s *service) Validate(ctx context.Context, entityID string, req ValidateLeaveRequest) (ValidationResponse, error) {
	start, end, partial, err := parseSpan(req.StartDate, req.EndDate, req.PartialDay)
	if err != nil {
		return ValidationResponse{}, err
	}

	a, err := s.assess(ctx, entityID, req.EmployeeID, req.LeaveTypeID, start, end, partial)
	if err != nil {
		return ValidationResponse{}, err
	}

	resp := ValidationResponse{Validation: a.validation}

	conflict, err := s.staffing.CheckConflict(ctx, entityID, a.employee.DepartmentID, start, end, req.EmployeeID)
	if err != nil {
		// The staffing check is advisory; a failure should not block the
		// validation response.
		s.logger.Warn("staffing check failed during validation", zap.Error(err))
	} else {
		resp.Staffing = conflict
	}

	return resp, nil
}

func (s *service) Create(ctx context.Context, entityID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("entity_id", entityID),
		zap.String("employee_id", req.EmployeeID),
	)

	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrInvalidInput
	}

	start, end, partial, err := parseSpan(req.StartDate, req.EndDate, req.PartialDay)
	if err != nil {
		return LeaveResponse{}, err
	}

	a, err := s.assess(ctx, entityID, req.EmployeeID, req.LeaveTypeID, start, end, partial)
	if err != nil {
		return LeaveResponse{}, err
	}
	if a.validation.ChargeableDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrNothingChargeable
	}

	request := &LeaveRequest{
		ID:             uuid.New(),
		EntityID:       entityUUID,
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		LeaveTypeID:    uuid.MustParse(req.LeaveTypeID),
		Bucket:         string(a.bucket),
		StartDate:      start,
		EndDate:        end,
		PartialDayType: string(partial),
		HoursCharged:   a.validation.NeededHours,
		Status:         StatusPending,
		Reason:         req.Reason,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if !a.validation.OK {
		s.logger.Info("leave request submitted with warning",
			zap.String("leave_id", request.ID.String()),
			zap.String("warning", a.validation.Warning),
		)
	}
	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", request.ID.String()),
		zap.String("bucket", request.Bucket),
	)
	return mapToResponse(*request), nil
}

func (s *service) GetAll(ctx context.Context, entityID, employeeID, status string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindByEntity(ctx, entityID, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, entityID, id string) (LeaveResponse, error) {
	request, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*request), nil
}

func (s *service) Approve(ctx context.Context, entityID, id string, req DecideLeaveRequest) (ApproveLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actorID := contextutil.GetActorID(ctx)

	request, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApproveLeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return ApproveLeaveResponse{}, err
	}
	if !CanTransition(request.Status, StatusApproved) {
		return ApproveLeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	// Charge from the calendar as it stands at approval time.
	a, err := s.assess(ctx, entityID, request.EmployeeID.String(), request.LeaveTypeID.String(), request.StartDate, request.EndDate, engine.PartialDay(request.PartialDayType))
	if err != nil {
		return ApproveLeaveResponse{}, err
	}
	hours := a.validation.NeededHours

	conflict, err := s.staffing.CheckConflict(ctx, entityID, a.employee.DepartmentID, request.StartDate, request.EndDate, request.EmployeeID.String())
	if err != nil {
		s.logger.Warn("staffing check failed during approval", zap.Error(err))
		conflict = nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return ApproveLeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	transitioned, err := qtx.TransitionStatus(ctx, id, StatusPending, StatusApproved, actorID, req.Note, hours)
	if err != nil {
		s.logger.Error("approve leave transition failed", zap.Error(err))
		return ApproveLeaveResponse{}, err
	}
	if !transitioned {
		// Another approver decided first.
		return ApproveLeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	if err := s.balances.ApplyConsumption(ctx, tx, entityID, request.EmployeeID.String(), a.bucket, hours); err != nil {
		s.logger.Error("approve leave apply consumption failed", zap.Error(err))
		return ApproveLeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveApprovedEvent{
			EventType:  "leave_approved",
			RequestID:  rid,
			LeaveID:    id,
			EmployeeID: request.EmployeeID.String(),
			EntityID:   entityID,
			Bucket:     request.Bucket,
			StartDate:  request.StartDate.Format(time.DateOnly),
			EndDate:    request.EndDate.Format(time.DateOnly),
			Hours:      hours,
			ApprovedBy: actorID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ApproveLeaveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   id,
			EventType:     event.EventType,
			Topic:         events.LeaveApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve leave outbox persist failed", zap.Error(err))
			return ApproveLeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return ApproveLeaveResponse{}, err
	}

	s.balances.Invalidate(ctx, request.EmployeeID.String())

	if conflict != nil && conflict.HasConflict {
		s.logger.Warn("leave approved despite staffing conflict",
			zap.String("leave_id", id),
			zap.Strings("warnings", conflict.Warnings),
		)
	}
	s.logger.Info("approve leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.Float64("hours_charged", hours),
	)

	updated, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		return ApproveLeaveResponse{}, err
	}
	return ApproveLeaveResponse{Request: mapToResponse(*updated), Staffing: conflict}, nil
}

func (s *service) Decline(ctx context.Context, entityID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	actorID := contextutil.GetActorID(ctx)

	request, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !CanTransition(request.Status, StatusDeclined) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	transitioned, err := s.repo.TransitionStatus(ctx, id, StatusPending, StatusDeclined, actorID, req.Note, request.HoursCharged)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !transitioned {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	s.logger.Info("decline leave success", zap.String("leave_id", id))
	return s.GetByID(ctx, entityID, id)
}

func (s *service) Cancel(ctx context.Context, entityID, id string) (LeaveResponse, error) {
	actorID := contextutil.GetActorID(ctx)

	request, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !CanTransition(request.Status, StatusCancelled) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	if request.Status == StatusPending {
		transitioned, err := s.repo.TransitionStatus(ctx, id, StatusPending, StatusCancelled, actorID, "", request.HoursCharged)
		if err != nil {
			return LeaveResponse{}, err
		}
		if !transitioned {
			return LeaveResponse{}, leaveerrors.ErrInvalidTransition
		}
		s.logger.Info("cancel pending leave success", zap.String("leave_id", id))
		return s.GetByID(ctx, entityID, id)
	}

	// Cancelling approved leave reverses exactly the hours charged at
	// approval, in the same transaction as the status flip.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	transitioned, err := qtx.TransitionStatus(ctx, id, StatusApproved, StatusCancelled, actorID, "", request.HoursCharged)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !transitioned {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	if err := s.balances.ReverseConsumption(ctx, tx, entityID, request.EmployeeID.String(), engine.Bucket(request.Bucket), request.HoursCharged); err != nil {
		s.logger.Error("cancel leave reverse consumption failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.balances.Invalidate(ctx, request.EmployeeID.String())

	s.logger.Info("cancel approved leave success",
		zap.String("leave_id", id),
		zap.Float64("hours_reversed", request.HoursCharged),
	)
	return s.GetByID(ctx, entityID, id)
}

func parseSpan(startStr, endStr, partialStr string) (time.Time, time.Time, engine.PartialDay, error) {
	start, err := time.ParseInLocation(time.DateOnly, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, "", apperror.InvalidField("Start Date")
	}
	end, err := time.ParseInLocation(time.DateOnly, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, "", apperror.InvalidField("End Date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateRange
	}

	partial := engine.PartialDay(partialStr)
	if partialStr == "" {
		partial = engine.PartialNone
	}
	if partial.IsHalfDay() && !start.Equal(end) {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrHalfDaySpansDays
	}
	return start, end, partial, nil
}
