package employee

import (
	"time"

	"leavehr/internal/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EntityID     uuid.UUID  `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`

	EmployeeNumber string `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	FullName       string `gorm:"type:varchar(255);not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	// Location selects which regional public holidays apply to the
	// employee. Empty means only entity-wide holidays apply.
	Location string `gorm:"type:varchar(100)"`

	EmploymentType string    `gorm:"type:varchar(20);not null"`
	HoursPerWeek   float64   `gorm:"type:numeric(5,2);not null"`
	StartDate      time.Time `gorm:"type:date;not null"`
	// ServiceStartDate recognizes prior service (rehires, transfers) for
	// eligibility gates. Nil means service starts at StartDate.
	ServiceStartDate *time.Time `gorm:"type:date"`
	Status           string     `gorm:"type:varchar(20);not null;default:'active'"`
	TerminationDate  *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// Employment projects the row into the shape the accrual arithmetic
// consumes.
func (e Employee) Employment() engine.Employment {
	emp := engine.Employment{
		Type:         engine.EmploymentType(e.EmploymentType),
		HoursPerWeek: e.HoursPerWeek,
		StartDate:    e.StartDate,
	}
	if e.ServiceStartDate != nil {
		emp.ServiceStartDate = *e.ServiceStartDate
	}
	return emp
}

// AccrualInputsChanged reports whether an update moved any field the
// accrual arithmetic depends on, which obsoletes every stored balance
// checkpoint for the employee.
func AccrualInputsChanged(before, after Employee) bool {
	// Moving an employee across entities changes which policies resolve,
	// even though the current API never rewrites entity_id in place.
	if before.EntityID != after.EntityID {
		return true
	}
	if before.EmploymentType != after.EmploymentType {
		return true
	}
	if before.HoursPerWeek != after.HoursPerWeek {
		return true
	}
	if !before.StartDate.Equal(after.StartDate) {
		return true
	}
	return !equalDatePtr(before.ServiceStartDate, after.ServiceStartDate)
}

func equalDatePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
