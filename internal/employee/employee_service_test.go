package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	employeeerrors "leavehr/internal/employee/errors"
	"leavehr/internal/events"
	"leavehr/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	employees map[string]*Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: map[string]*Employee{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	cp := *empl
	f.employees[empl.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAllByEntity(ctx context.Context, entityID string) ([]Employee, error) {
	var out []Employee
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndEntity(ctx context.Context, entityID, id string) (*Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	cp := *empl
	f.employees[empl.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, entityID, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeRepo) CountActiveInScope(ctx context.Context, entityID, departmentID string) (int, error) {
	count := 0
	for _, e := range f.employees {
		if e.Status != StatusTerminated {
			count++
		}
	}
	return count, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, entityID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
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

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, r string) error { return nil }

func newTestService(t *testing.T, repo Repository, outbox kafka.OutboxRepository) (Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox), mock
}

func TestCreate_GeneratesEmployeeNumberAndStagesEvent(t *testing.T) {
	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeRequest{
		FullName:       "Maria Rossi",
		Email:          "maria.rossi@example.com",
		EmploymentType: "full_time",
		HoursPerWeek:   38,
		StartDate:      "2024-02-05",
	})

	require.NoError(t, err)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, StatusActive, resp.Status)

	require.Len(t, outbox.staged, 1)
	staged := outbox.staged[0]
	assert.Equal(t, events.EmployeeCreatedTopic, staged.Topic)
	assert.Equal(t, "employee_created", staged.EventType)

	var event events.EmployeeCreatedEvent
	require.NoError(t, json.Unmarshal(staged.Payload, &event))
	assert.Equal(t, resp.ID, event.EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsUnknownEmploymentType(t *testing.T) {
	svc, _ := newTestService(t, newFakeRepo(), &fakeOutbox{})

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeRequest{
		FullName:       "Sam Doe",
		Email:          "sam@example.com",
		EmploymentType: "intern",
		HoursPerWeek:   38,
		StartDate:      "2024-02-05",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmploymentType)
}

func TestUpdate_HoursChangeStagesEmploymentChanged(t *testing.T) {
	entityID := uuid.New()
	empl := &Employee{
		ID:             uuid.New(),
		EntityID:       entityID,
		EmployeeNumber: "EMP-000007",
		FullName:       "Kim Lee",
		Email:          "kim.lee@example.com",
		EmploymentType: "part_time",
		HoursPerWeek:   20,
		StartDate:      time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:         StatusActive,
	}
	repo := newFakeRepo()
	repo.employees[empl.ID.String()] = empl
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Update(context.Background(), entityID.String(), empl.ID.String(), UpdateEmployeeRequest{
		FullName:       "Kim Lee",
		Email:          "kim.lee@example.com",
		EmploymentType: "part_time",
		HoursPerWeek:   30,
		StartDate:      "2023-03-01",
	})

	require.NoError(t, err)
	require.Len(t, outbox.staged, 1)
	assert.Equal(t, events.EmploymentChangedTopic, outbox.staged[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_CosmeticChangeStagesNothing(t *testing.T) {
	entityID := uuid.New()
	empl := &Employee{
		ID:             uuid.New(),
		EntityID:       entityID,
		EmployeeNumber: "EMP-000008",
		FullName:       "Old Name",
		Email:          "old@example.com",
		EmploymentType: "full_time",
		HoursPerWeek:   38,
		StartDate:      time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:         StatusActive,
	}
	repo := newFakeRepo()
	repo.employees[empl.ID.String()] = empl
	outbox := &fakeOutbox{}
	svc, mock := newTestService(t, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Update(context.Background(), entityID.String(), empl.ID.String(), UpdateEmployeeRequest{
		FullName:       "New Name",
		Email:          "new@example.com",
		EmploymentType: "full_time",
		HoursPerWeek:   38,
		StartDate:      "2023-03-01",
	})

	require.NoError(t, err)
	assert.Empty(t, outbox.staged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccrualInputsChanged(t *testing.T) {
	base := Employee{
		EmploymentType: "full_time",
		HoursPerWeek:   38,
		StartDate:      time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	same := base
	assert.False(t, AccrualInputsChanged(base, same))

	hours := base
	hours.HoursPerWeek = 30.4
	assert.True(t, AccrualInputsChanged(base, hours))

	typ := base
	typ.EmploymentType = "casual"
	assert.True(t, AccrualInputsChanged(base, typ))

	svcStart := time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC)
	recognized := base
	recognized.ServiceStartDate = &svcStart
	assert.True(t, AccrualInputsChanged(base, recognized))

	moved := base
	moved.EntityID = uuid.New()
	assert.True(t, AccrualInputsChanged(base, moved))
}

func TestGetEmployment_ProjectsServiceStart(t *testing.T) {
	entityID := uuid.New()
	svcStart := time.Date(2019, time.May, 6, 0, 0, 0, 0, time.UTC)
	empl := &Employee{
		ID:               uuid.New(),
		EntityID:         entityID,
		EmploymentType:   "full_time",
		HoursPerWeek:     38,
		StartDate:        time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		ServiceStartDate: &svcStart,
		Status:           StatusActive,
	}
	repo := newFakeRepo()
	repo.employees[empl.ID.String()] = empl
	svc, _ := newTestService(t, repo, &fakeOutbox{})

	emp, err := svc.GetEmployment(context.Background(), entityID.String(), empl.ID.String())

	require.NoError(t, err)
	assert.Equal(t, svcStart, emp.ServiceStartDate)
	assert.Equal(t, 38.0, emp.HoursPerWeek)
}
