package leave

import (
	"context"
	"database/sql"
	"time"

	"leavehr/internal/engine"
	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LeaveRequest) error
	FindByEntity(ctx context.Context, entityID string, employeeID, status string) ([]LeaveRequest, error)
	FindByIDAndEntity(ctx context.Context, entityID, id string) (*LeaveRequest, error)

	// TransitionStatus moves a request between lifecycle states only if it
	// is still in fromStatus, so two approvers cannot both win.
	TransitionStatus(ctx context.Context, id, fromStatus, toStatus, decidedBy, note string, hoursCharged float64) (bool, error)

	// FindApprovedOverlapping lists approved requests of other employees
	// intersecting [start, end], optionally narrowed to a department.
	FindApprovedOverlapping(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) ([]engine.OverlappingLeave, error)

	// FindApprovedInPeriod lists an employee's approved leave intersecting
	// a reporting window.
	FindApprovedInPeriod(ctx context.Context, entityID, employeeID string, periodStart, periodEnd time.Time) ([]LeaveRequest, error)

	// FindApprovedByEmployee lists every approved request the employee
	// holds, regardless of date. Balance rebuilds replay these.
	FindApprovedByEmployee(ctx context.Context, entityID, employeeID string) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO leave_requests (
				id, entity_id, employee_id, leave_type_id, bucket,
				start_date, end_date, partial_day_type, hours_charged,
				status, reason, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		`, req.ID, req.EntityID, req.EmployeeID, req.LeaveTypeID, req.Bucket,
			req.StartDate, req.EndDate, req.PartialDayType, req.HoursCharged,
			req.Status, req.Reason)
		return err
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByEntity(ctx context.Context, entityID string, employeeID, status string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("leave_requests.entity_id = ?", entityID).
		Where("leave_requests.deleted_at IS NULL")
	if employeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", employeeID)
	}
	if status != "" {
		q = q.Where("leave_requests.status = ?", status)
	}
	err := q.Order("leave_requests.start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndEntity(ctx context.Context, entityID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id, fromStatus, toStatus, decidedBy, note string, hoursCharged float64) (bool, error) {
	query := `
		UPDATE leave_requests
		SET status = $3,
			decided_by = NULLIF($4, '')::uuid,
			decided_at = now(),
			decide_note = $5,
			hours_charged = $6,
			updated_at = now()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
	`
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, id, fromStatus, toStatus, decidedBy, note, hoursCharged)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	}

	res := r.db.WithContext(ctx).Exec(query, id, fromStatus, toStatus, decidedBy, note, hoursCharged)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindApprovedOverlapping(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) ([]engine.OverlappingLeave, error) {
	type row struct {
		EmployeeID   string
		EmployeeName string
		StartDate    time.Time
		EndDate      time.Time
	}
	var rows []row

	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Select(`leave_requests.employee_id::text AS employee_id,
			employees.full_name AS employee_name,
			leave_requests.start_date,
			leave_requests.end_date`).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("leave_requests.entity_id = ?", entityID).
		Where("leave_requests.status = ?", StatusApproved).
		Where("leave_requests.deleted_at IS NULL").
		Where("leave_requests.start_date <= ? AND leave_requests.end_date >= ?", end, start)
	if departmentID != "" {
		q = q.Where("employees.department_id = ?", departmentID)
	}
	if excludeEmployeeID != "" {
		q = q.Where("leave_requests.employee_id <> ?", excludeEmployeeID)
	}

	if err := q.Order("leave_requests.start_date ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	overlapping := make([]engine.OverlappingLeave, len(rows))
	for i, row := range rows {
		overlapping[i] = engine.OverlappingLeave{
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			Start:        row.StartDate,
			End:          row.EndDate,
		}
	}
	return overlapping, nil
}

func (r *repository) FindApprovedInPeriod(ctx context.Context, entityID, employeeID string, periodStart, periodEnd time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", periodEnd, periodStart).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindApprovedByEmployee(ctx context.Context, entityID, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}
