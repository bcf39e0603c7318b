package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavehr/internal/balance"
	"leavehr/internal/employee"
	"leavehr/internal/engine"
	"leavehr/internal/events"
	leaveerrors "leavehr/internal/leave/errors"
	"leavehr/internal/messaging/kafka"
	"leavehr/internal/staffing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	requests map[string]*LeaveRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: map[string]*LeaveRequest{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, r *LeaveRequest) error {
	cp := *r
	f.requests[r.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindByEntity(ctx context.Context, entityID, employeeID, status string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndEntity(ctx context.Context, entityID, id string) (*LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus, decidedBy, note string, hoursCharged float64) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != fromStatus {
		return false, nil
	}
	r.Status = toStatus
	r.DecideNote = note
	r.HoursCharged = hoursCharged
	return true, nil
}

func (f *fakeRepo) FindApprovedOverlapping(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) ([]engine.OverlappingLeave, error) {
	return nil, nil
}

func (f *fakeRepo) FindApprovedInPeriod(ctx context.Context, entityID, employeeID string, periodStart, periodEnd time.Time) ([]LeaveRequest, error) {
	return nil, nil
}

func (f *fakeRepo) FindApprovedByEmployee(ctx context.Context, entityID, employeeID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID && r.Status == StatusApproved {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePolicies struct {
	bucket engine.Bucket
	params *engine.PolicyParams
}

func (f *fakePolicies) ResolveForType(ctx context.Context, entityID, leaveTypeID string) (engine.Bucket, *engine.PolicyParams, error) {
	return f.bucket, f.params, nil
}

type fakeHolidays struct {
	dates []time.Time
}

func (f *fakeHolidays) ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error) {
	return f.dates, nil
}

type fakeEmployees struct {
	emp  engine.Employment
	dept string
}

func (f *fakeEmployees) GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error) {
	return f.emp, nil
}

func (f *fakeEmployees) GetByID(ctx context.Context, entityID, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: id, DepartmentID: f.dept}, nil
}

type fakeBalances struct {
	available float64
	applied   []float64
	reversed  []float64
}

func (f *fakeBalances) AccrueUpTo(ctx context.Context, entityID, employeeID string, asOf time.Time) error {
	return nil
}
func (f *fakeBalances) RecalculateAll(ctx context.Context, entityID, employeeID string) error {
	return nil
}
func (f *fakeBalances) GetBalances(ctx context.Context, entityID, employeeID string) ([]balance.BalanceResponse, error) {
	return nil, nil
}
func (f *fakeBalances) AvailableHours(ctx context.Context, entityID, employeeID string, bucket engine.Bucket) (float64, error) {
	return f.available, nil
}
func (f *fakeBalances) ApplyConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error {
	f.applied = append(f.applied, hours)
	return nil
}
func (f *fakeBalances) ReverseConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error {
	f.reversed = append(f.reversed, hours)
	return nil
}
func (f *fakeBalances) Invalidate(ctx context.Context, employeeID string) {}

type fakeStaffing struct {
	result *engine.ConflictResult
}

func (f *fakeStaffing) Create(ctx context.Context, entityID string, req staffing.CreateRuleRequest) (staffing.RuleResponse, error) {
	return staffing.RuleResponse{}, nil
}
func (f *fakeStaffing) GetAll(ctx context.Context, entityID string) ([]staffing.RuleResponse, error) {
	return nil, nil
}
func (f *fakeStaffing) Update(ctx context.Context, entityID, id string, req staffing.UpdateRuleRequest) (staffing.RuleResponse, error) {
	return staffing.RuleResponse{}, nil
}
func (f *fakeStaffing) Delete(ctx context.Context, entityID, id string) error { return nil }
func (f *fakeStaffing) CheckConflict(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) (*engine.ConflictResult, error) {
	return f.result, nil
}

type fakeOutbox struct {
	staged []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.staged = append(f.staged, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.staged, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error      { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, r string) error { return nil }

type fixture struct {
	svc    Service
	repo   *fakeRepo
	bal    *fakeBalances
	outbox *fakeOutbox
	mock   sqlmock.Sqlmock
}

func newFixture(t *testing.T, available float64, conflict *engine.ConflictResult) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeRepo()
	bal := &fakeBalances{available: available}
	outbox := &fakeOutbox{}
	svc := NewService(
		db,
		repo,
		&fakePolicies{bucket: engine.BucketAnnual, params: &engine.PolicyParams{
			Bucket:      engine.BucketAnnual,
			AccrualRate: 4.0 / 52.0,
		}},
		&fakeHolidays{},
		&fakeEmployees{emp: engine.Employment{
			Type:         engine.FullTime,
			HoursPerWeek: 38,
			StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}},
		bal,
		&fakeStaffing{result: conflict},
		outbox,
	)
	return &fixture{svc: svc, repo: repo, bal: bal, outbox: outbox, mock: mock}
}

func TestValidate_InsufficientBalanceWarns(t *testing.T) {
	fx := newFixture(t, 20.0, nil)

	// Mon..Fri, 5 working days at 7.6h against 20 available.
	resp, err := fx.svc.Validate(context.Background(), uuid.NewString(), ValidateLeaveRequest{
		EmployeeID:  uuid.NewString(),
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-03-03",
		EndDate:     "2025-03-07",
	})

	require.NoError(t, err)
	assert.False(t, resp.Validation.OK)
	assert.InDelta(t, 38.0, resp.Validation.NeededHours, 1e-9)
	assert.Contains(t, resp.Validation.Warning, "insufficient balance")
}

func TestCreate_StoresPendingWithEstimatedHours(t *testing.T) {
	fx := newFixture(t, 100.0, nil)

	resp, err := fx.svc.Create(context.Background(), uuid.NewString(), CreateLeaveRequest{
		EmployeeID:  uuid.NewString(),
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-03-03",
		EndDate:     "2025-03-05",
		Reason:      "family trip",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.InDelta(t, 3*7.6, resp.HoursCharged, 1e-9)
	assert.Equal(t, "annual", resp.Bucket)
}

func TestCreate_RejectsWeekendOnlySpan(t *testing.T) {
	fx := newFixture(t, 100.0, nil)

	_, err := fx.svc.Create(context.Background(), uuid.NewString(), CreateLeaveRequest{
		EmployeeID:  uuid.NewString(),
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-03-08",
		EndDate:     "2025-03-09",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrNothingChargeable)
}

func TestCreate_RejectsMultiDayHalfDay(t *testing.T) {
	fx := newFixture(t, 100.0, nil)

	_, err := fx.svc.Create(context.Background(), uuid.NewString(), CreateLeaveRequest{
		EmployeeID:  uuid.NewString(),
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-03-03",
		EndDate:     "2025-03-05",
		PartialDay:  "half_am",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySpansDays)
}

func seedPending(fx *fixture, entityID uuid.UUID) *LeaveRequest {
	req := &LeaveRequest{
		ID:             uuid.New(),
		EntityID:       entityID,
		EmployeeID:     uuid.New(),
		LeaveTypeID:    uuid.New(),
		Bucket:         "annual",
		StartDate:      time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		PartialDayType: "full",
		HoursCharged:   38,
		Status:         StatusPending,
	}
	fx.repo.requests[req.ID.String()] = req
	return req
}

func TestApprove_ConsumesAndStagesEvent(t *testing.T) {
	conflict := &engine.ConflictResult{ScopeHeadcount: 5, ActiveAfterApproval: 4}
	fx := newFixture(t, 100.0, conflict)
	entityID := uuid.New()
	req := seedPending(fx, entityID)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	resp, err := fx.svc.Approve(context.Background(), entityID.String(), req.ID.String(), DecideLeaveRequest{Note: "enjoy"})

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Request.Status)
	assert.Equal(t, conflict, resp.Staffing)

	require.Len(t, fx.bal.applied, 1)
	assert.InDelta(t, 38.0, fx.bal.applied[0], 1e-9)

	require.Len(t, fx.outbox.staged, 1)
	staged := fx.outbox.staged[0]
	assert.Equal(t, events.LeaveApprovedTopic, staged.Topic)
	var event events.LeaveApprovedEvent
	require.NoError(t, json.Unmarshal(staged.Payload, &event))
	assert.Equal(t, req.ID.String(), event.LeaveID)
	assert.InDelta(t, 38.0, event.Hours, 1e-9)

	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestApprove_AlreadyDecided(t *testing.T) {
	fx := newFixture(t, 100.0, nil)
	entityID := uuid.New()
	req := seedPending(fx, entityID)
	req.Status = StatusDeclined

	_, err := fx.svc.Approve(context.Background(), entityID.String(), req.ID.String(), DecideLeaveRequest{})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	assert.Empty(t, fx.bal.applied)
}

func TestDecline_Pending(t *testing.T) {
	fx := newFixture(t, 100.0, nil)
	entityID := uuid.New()
	req := seedPending(fx, entityID)

	resp, err := fx.svc.Decline(context.Background(), entityID.String(), req.ID.String(), DecideLeaveRequest{Note: "short staffed"})

	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, resp.Status)
	assert.Empty(t, fx.bal.applied)
}

func TestCancel_ApprovedReversesCharge(t *testing.T) {
	fx := newFixture(t, 100.0, nil)
	entityID := uuid.New()
	req := seedPending(fx, entityID)
	req.Status = StatusApproved
	req.HoursCharged = 22.8

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	resp, err := fx.svc.Cancel(context.Background(), entityID.String(), req.ID.String())

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	require.Len(t, fx.bal.reversed, 1)
	assert.InDelta(t, 22.8, fx.bal.reversed[0], 1e-9)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestCancel_DeclinedIsTerminal(t *testing.T) {
	fx := newFixture(t, 100.0, nil)
	entityID := uuid.New()
	req := seedPending(fx, entityID)
	req.Status = StatusDeclined

	_, err := fx.svc.Cancel(context.Background(), entityID.String(), req.ID.String())

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
}
