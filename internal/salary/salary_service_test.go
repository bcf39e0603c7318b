package salary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	salaryerrors "leavehr/internal/salary/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	records []EmployeeSalary
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, s *EmployeeSalary) error {
	f.records = append(f.records, *s)
	return nil
}

func (f *fakeRepo) FindAllByEntity(ctx context.Context, entityID string) ([]EmployeeSalary, error) {
	return f.records, nil
}

func (f *fakeRepo) FindByIDAndEntity(ctx context.Context, entityID, id string) (*EmployeeSalary, error) {
	for i := range f.records {
		if f.records[i].ID.String() == id {
			return &f.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindEffectiveRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (*EmployeeSalary, error) {
	var best *EmployeeSalary
	for i := range f.records {
		r := &f.records[i]
		if r.EmployeeID.String() != employeeID || r.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || r.EffectiveDate.After(best.EffectiveDate) {
			best = r
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeRepo) Delete(ctx context.Context, entityID, id string) error {
	for i := range f.records {
		if f.records[i].ID.String() == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHourlyRate_PicksLatestEffectiveRow(t *testing.T) {
	employeeID := uuid.New()
	repo := &fakeRepo{records: []EmployeeSalary{
		{ID: uuid.New(), EmployeeID: employeeID, HourlyRate: decimal.NewFromInt(40), EffectiveDate: day(2024, time.January, 1)},
		{ID: uuid.New(), EmployeeID: employeeID, HourlyRate: decimal.NewFromInt(45), EffectiveDate: day(2025, time.January, 1)},
		{ID: uuid.New(), EmployeeID: employeeID, HourlyRate: decimal.NewFromInt(50), EffectiveDate: day(2026, time.January, 1)},
	}}
	svc := NewService(repo)

	rate, err := svc.HourlyRate(context.Background(), uuid.NewString(), employeeID.String(), day(2025, time.June, 30))

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(45)), "got %s", rate)
}

func TestHourlyRate_NoApplicableRate(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.HourlyRate(context.Background(), uuid.NewString(), uuid.NewString(), day(2025, time.June, 30))

	assert.ErrorIs(t, err, salaryerrors.ErrNoApplicableRate)
}

func TestCreate_ParsesRateAndDate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateSalaryRequest{
		EmployeeID:    uuid.NewString(),
		HourlyRate:    43.27,
		EffectiveDate: "2025-07-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "43.27", resp.HourlyRate)
	assert.Equal(t, "2025-07-01", resp.EffectiveDate)
	require.Len(t, repo.records, 1)
}

func TestCreate_RejectsBadEffectiveDate(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateSalaryRequest{
		EmployeeID:    uuid.NewString(),
		HourlyRate:    10,
		EffectiveDate: "01-07-2025",
	})

	assert.Error(t, err)
}
