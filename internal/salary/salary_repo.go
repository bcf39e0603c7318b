package salary

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByEntity(ctx context.Context, entityID string) ([]EmployeeSalary, error)
	FindByIDAndEntity(ctx context.Context, entityID, id string) (*EmployeeSalary, error)
	// FindEffectiveRate returns the latest salary row for the employee
	// whose effective date is on or before asOf.
	FindEffectiveRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (*EmployeeSalary, error)
	Delete(ctx context.Context, entityID, id string) error
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

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO employee_salaries (
				id, employee_id, hourly_rate, effective_date, created_at, updated_at
			) VALUES ($1, $2, $3, $4, now(), now())
		`, salary.ID, salary.EmployeeID, salary.HourlyRate, salary.EffectiveDate)
		return err
	}
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) FindAllByEntity(ctx context.Context, entityID string) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	query := `
SELECT
	employee_salaries.*,
	employees.full_name AS employee_name
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
WHERE employees.entity_id = ?
ORDER BY
	employees.full_name ASC,
	employee_salaries.effective_date DESC,
	employee_salaries.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, entityID).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndEntity(ctx context.Context, entityID, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Where("employees.entity_id = ?", entityID).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) FindEffectiveRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.employee_id = ?", employeeID).
		Where("employees.entity_id = ?", entityID).
		Where("employee_salaries.effective_date <= ?", asOf).
		Order("employee_salaries.effective_date DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) Delete(ctx context.Context, entityID, id string) error {
	return r.db.WithContext(ctx).
		Table("employee_salaries").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Where("employees.entity_id = ?", entityID).
		Delete(&EmployeeSalary{}).Error
}
