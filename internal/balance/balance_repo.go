package balance

import (
	"context"
	"database/sql"
	"time"

	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployee(ctx context.Context, entityID, employeeID string) ([]LeaveBalance, error)
	FindByEmployeeAndBucket(ctx context.Context, entityID, employeeID, bucket string) (*LeaveBalance, error)

	// AdvanceCheckpoint atomically adds delta hours and moves the
	// checkpoint, but only if the stored checkpoint still matches
	// expectedThrough. Returns false when another writer advanced first.
	AdvanceCheckpoint(ctx context.Context, employeeID, bucket string, expectedThrough time.Time, delta float64, newThrough time.Time) (bool, error)

	// ReplaceSnapshot overwrites both sides of the ledger with freshly
	// derived values, for full rebuilds after employment changes.
	ReplaceSnapshot(ctx context.Context, employeeID, bucket string, accrued, consumed float64, through time.Time) error

	// AddConsumption shifts consumed hours by delta (negative to
	// reverse). Returns false when no ledger row exists yet.
	AddConsumption(ctx context.Context, employeeID, bucket string, delta float64) (bool, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO leave_balances (
				id, entity_id, employee_id, bucket, accrued_hours,
				consumed_hours, accrued_through, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, b.ID, b.EntityID, b.EmployeeID, b.Bucket, b.AccruedHours,
			b.ConsumedHours, b.AccruedThrough)
		return err
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployee(ctx context.Context, entityID, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("employee_id = ?", employeeID).
		Order("bucket ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByEmployeeAndBucket(ctx context.Context, entityID, employeeID, bucket string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("employee_id = ?", employeeID).
		Where("bucket = ?", bucket).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) AdvanceCheckpoint(ctx context.Context, employeeID, bucket string, expectedThrough time.Time, delta float64, newThrough time.Time) (bool, error) {
	query := `
		UPDATE leave_balances
		SET accrued_hours = accrued_hours + $4, accrued_through = $5, updated_at = now()
		WHERE employee_id = $1 AND bucket = $2 AND accrued_through = $3
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, employeeID, bucket, expectedThrough, delta, newThrough)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	}

	res := r.db.WithContext(ctx).Exec(query, employeeID, bucket, expectedThrough, delta, newThrough)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ReplaceSnapshot(ctx context.Context, employeeID, bucket string, accrued, consumed float64, through time.Time) error {
	query := `
		UPDATE leave_balances
		SET accrued_hours = $3, consumed_hours = $4, accrued_through = $5, updated_at = now()
		WHERE employee_id = $1 AND bucket = $2
	`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, employeeID, bucket, accrued, consumed, through)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, employeeID, bucket, accrued, consumed, through).Error
}

func (r *repository) AddConsumption(ctx context.Context, employeeID, bucket string, delta float64) (bool, error) {
	query := `
		UPDATE leave_balances
		SET consumed_hours = consumed_hours + $3, updated_at = now()
		WHERE employee_id = $1 AND bucket = $2
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, employeeID, bucket, delta)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	}

	res := r.db.WithContext(ctx).Exec(query, employeeID, bucket, delta)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
