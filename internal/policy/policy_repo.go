package policy

import (
	"context"
	"database/sql"

	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateLeaveType(ctx context.Context, t *LeaveType) error
	FindLeaveTypesByEntity(ctx context.Context, entityID string) ([]LeaveType, error)
	FindLeaveTypeByID(ctx context.Context, entityID, id string) (*LeaveType, error)

	CreatePolicy(ctx context.Context, p *LeavePolicy) error
	FindPoliciesByEntity(ctx context.Context, entityID string) ([]LeavePolicy, error)
	FindPolicyByID(ctx context.Context, entityID, id string) (*LeavePolicy, error)
	FindActivePolicy(ctx context.Context, entityID, bucket string) (*LeavePolicy, error)
	DeactivatePolicies(ctx context.Context, entityID, bucket string) error
	UpdatePolicy(ctx context.Context, p *LeavePolicy) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateLeaveType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindLeaveTypesByEntity(ctx context.Context, entityID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindLeaveTypeByID(ctx context.Context, entityID, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) CreatePolicy(ctx context.Context, p *LeavePolicy) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO leave_policies (
				id, entity_id, bucket, standard_hours_per_day, accrual_rate,
				min_service_years, accrue_before_eligibility,
				payable_on_termination, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		`, p.ID, p.EntityID, p.Bucket, p.StandardHoursPerDay, p.AccrualRate,
			p.MinServiceYears, p.AccrueBeforeEligibility,
			p.PayableOnTermination, p.IsActive)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPoliciesByEntity(ctx context.Context, entityID string) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Order("bucket ASC, created_at DESC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindPolicyByID(ctx context.Context, entityID, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindActivePolicy(ctx context.Context, entityID, bucket string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("bucket = ?", bucket).
		Where("is_active = true").
		First(&p).Error
	return &p, err
}

func (r *repository) DeactivatePolicies(ctx context.Context, entityID, bucket string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE leave_policies
			SET is_active = false, updated_at = now()
			WHERE entity_id = $1 AND bucket = $2 AND is_active = true AND deleted_at IS NULL
		`, entityID, bucket)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&LeavePolicy{}).
		Scopes(tenant.Scope(entityID)).
		Where("bucket = ?", bucket).
		Where("is_active = true").
		Update("is_active", false).Error
}

func (r *repository) UpdatePolicy(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}
