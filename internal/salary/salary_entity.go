package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is one row of rate history. The applicable rate at a
// point in time is the latest row whose effective date is not in the
// future.
type EmployeeSalary struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:uq_employee_salary_effective"`
	HourlyRate    decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective"`

	EmployeeName string `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
