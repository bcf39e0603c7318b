package staffing

import (
	"context"
	"testing"
	"time"

	"leavehr/internal/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rules []StaffingRule
}

func (f *fakeRepo) Create(ctx context.Context, r *StaffingRule) error {
	f.rules = append(f.rules, *r)
	return nil
}

func (f *fakeRepo) FindByEntity(ctx context.Context, entityID string) ([]StaffingRule, error) {
	var out []StaffingRule
	for _, r := range f.rules {
		if r.EntityID != nil && r.EntityID.String() == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindApplicable(ctx context.Context, entityID string) ([]StaffingRule, error) {
	var out []StaffingRule
	for _, r := range f.rules {
		if r.EntityID == nil || r.EntityID.String() == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, entityID, id string) (*StaffingRule, error) {
	for i := range f.rules {
		if f.rules[i].ID.String() == id {
			return &f.rules[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, r *StaffingRule) error {
	for i := range f.rules {
		if f.rules[i].ID == r.ID {
			f.rules[i] = *r
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, entityID, id string) error {
	for i := range f.rules {
		if f.rules[i].ID.String() == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeHeadcount struct {
	count int
}

func (f *fakeHeadcount) CountActiveInScope(ctx context.Context, entityID, departmentID string) (int, error) {
	return f.count, nil
}

type fakeOverlaps struct {
	overlapping []engine.OverlappingLeave
}

func (f *fakeOverlaps) FindApprovedOverlapping(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) ([]engine.OverlappingLeave, error) {
	return f.overlapping, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckConflict_NoRuleReturnsNil(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeHeadcount{count: 10}, &fakeOverlaps{})

	result, err := svc.CheckConflict(context.Background(), uuid.NewString(), "", day(2025, time.July, 7), day(2025, time.July, 11), uuid.NewString())

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCheckConflict_MinHeadcountBreached(t *testing.T) {
	entityID := uuid.New()
	repo := &fakeRepo{rules: []StaffingRule{{
		ID:                 uuid.New(),
		EntityID:           &entityID,
		MinActiveHeadcount: 4,
		IsActive:           true,
	}}}
	overlaps := &fakeOverlaps{overlapping: []engine.OverlappingLeave{
		{EmployeeID: uuid.NewString(), EmployeeName: "Ana Silva", Start: day(2025, time.July, 7), End: day(2025, time.July, 9)},
	}}

	svc := NewService(repo, &fakeHeadcount{count: 5}, overlaps)

	result, err := svc.CheckConflict(context.Background(), entityID.String(), "", day(2025, time.July, 7), day(2025, time.July, 11), uuid.NewString())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.HasConflict)
	assert.Equal(t, 5, result.ScopeHeadcount)
	assert.Equal(t, 1, result.OnLeave)
	assert.Equal(t, 3, result.ActiveAfterApproval)
	require.Len(t, result.Warnings, 1)
}

func TestCheckConflict_DepartmentRuleWinsOverEntityRule(t *testing.T) {
	entityID := uuid.New()
	deptID := uuid.New()
	repo := &fakeRepo{rules: []StaffingRule{
		{ID: uuid.New(), EntityID: &entityID, MinActiveHeadcount: 2, IsActive: true},
		{ID: uuid.New(), EntityID: &entityID, DepartmentID: &deptID, MaxConcurrentLeave: 1, IsActive: true},
	}}
	overlaps := &fakeOverlaps{overlapping: []engine.OverlappingLeave{
		{EmployeeID: uuid.NewString(), EmployeeName: "Ben Carter", Start: day(2025, time.July, 8), End: day(2025, time.July, 8)},
	}}

	svc := NewService(repo, &fakeHeadcount{count: 8}, overlaps)

	result, err := svc.CheckConflict(context.Background(), entityID.String(), deptID.String(), day(2025, time.July, 7), day(2025, time.July, 11), uuid.NewString())

	require.NoError(t, err)
	require.NotNil(t, result)
	// The department rule caps concurrent leave at 1; two would be out.
	assert.True(t, result.HasConflict)
}

func TestCheckConflict_InactiveRuleIgnored(t *testing.T) {
	entityID := uuid.New()
	repo := &fakeRepo{rules: []StaffingRule{{
		ID:                 uuid.New(),
		EntityID:           &entityID,
		MinActiveHeadcount: 100,
		IsActive:           false,
	}}}

	svc := NewService(repo, &fakeHeadcount{count: 3}, &fakeOverlaps{})

	result, err := svc.CheckConflict(context.Background(), entityID.String(), "", day(2025, time.July, 7), day(2025, time.July, 11), uuid.NewString())

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeHeadcount{}, &fakeOverlaps{})

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateRuleRequest{MinActiveHeadcount: 1})

	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestCreate_ScopesRuleToTenant(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeHeadcount{}, &fakeOverlaps{})
	entityID := uuid.NewString()
	deptID := uuid.NewString()

	resp, err := svc.Create(context.Background(), entityID, CreateRuleRequest{
		DepartmentID:       &deptID,
		MinActiveHeadcount: 3,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.EntityID)
	assert.Equal(t, entityID, *resp.EntityID)
	require.NotNil(t, resp.DepartmentID)
	assert.Equal(t, deptID, *resp.DepartmentID)
	assert.True(t, resp.IsActive)
}

func TestCreate_GlobalRuleHasNoEntityScope(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeHeadcount{count: 3}, &fakeOverlaps{})

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateRuleRequest{
		Global:             true,
		MinActiveHeadcount: 5,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.EntityID)

	// The fallback applies to any entity without a rule of its own.
	result, err := svc.CheckConflict(context.Background(), uuid.NewString(), "", day(2025, time.July, 7), day(2025, time.July, 11), uuid.NewString())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.HasConflict)
}

func TestCreate_GlobalRuleRejectsDepartmentScope(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeHeadcount{}, &fakeOverlaps{})
	deptID := uuid.NewString()

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateRuleRequest{
		Global:       true,
		DepartmentID: &deptID,
	})

	assert.Error(t, err)
}
