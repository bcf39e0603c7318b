package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is a per-bucket running ledger with an accrual checkpoint.
// AccruedHours covers employment start through AccruedThrough; advancing
// the checkpoint adds exactly the accrual of the new window, so replays
// and concurrent writers cannot double-count.
type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID   uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_balance_employee_bucket"`
	Bucket     string    `gorm:"type:varchar(20);uniqueIndex:uq_balance_employee_bucket"`

	AccruedHours   float64   `gorm:"type:numeric(12,4);not null;default:0"`
	ConsumedHours  float64   `gorm:"type:numeric(12,4);not null;default:0"`
	AccruedThrough time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) AvailableHours() float64 {
	return b.AccruedHours - b.ConsumedHours
}
