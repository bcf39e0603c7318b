package employee

import (
	"context"
	"database/sql"

	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByEntity(ctx context.Context, entityID string) ([]Employee, error)
	FindByIDAndEntity(ctx context.Context, entityID, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, entityID, id string) error
	// CountActiveInScope counts non-terminated employees in the entity,
	// narrowed to a department when departmentID is non-empty.
	CountActiveInScope(ctx context.Context, entityID, departmentID string) (int, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO employees (
				id, entity_id, department_id, manager_id, employee_number,
				full_name, email, location, employment_type, hours_per_week,
				start_date, service_start_date, status, termination_date,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		`, empl.ID, empl.EntityID, empl.DepartmentID, empl.ManagerID, empl.EmployeeNumber,
			empl.FullName, empl.Email, empl.Location, empl.EmploymentType, empl.HoursPerWeek,
			empl.StartDate, empl.ServiceStartDate, empl.Status, empl.TerminationDate)
		return err
	}
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByEntity(ctx context.Context, entityID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Order("employee_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndEntity(ctx context.Context, entityID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE employees
			SET department_id = $2, manager_id = $3, full_name = $4, email = $5,
				location = $6, employment_type = $7, hours_per_week = $8,
				start_date = $9, service_start_date = $10, status = $11,
				termination_date = $12, updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL
		`, empl.ID, empl.DepartmentID, empl.ManagerID, empl.FullName, empl.Email,
			empl.Location, empl.EmploymentType, empl.HoursPerWeek, empl.StartDate,
			empl.ServiceStartDate, empl.Status, empl.TerminationDate)
		return err
	}
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, entityID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) CountActiveInScope(ctx context.Context, entityID, departmentID string) (int, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(entityID)).
		Where("status <> ?", StatusTerminated)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Count(&count).Error
	return int(count), err
}
