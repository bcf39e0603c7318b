package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusCancelled = "cancelled"
)

// LeaveRequest is one employee request moving through the
// pending → approved/declined → cancelled state machine. HoursCharged is
// fixed at approval time from the then-current calendar and policy, so a
// later holiday edit cannot desynchronize the ledger reversal.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID    uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;index"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid"`
	Bucket      string    `gorm:"type:varchar(20);not null"`

	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	PartialDayType string    `gorm:"type:varchar(10);not null;default:'full'"`
	HoursCharged   float64   `gorm:"type:numeric(10,4);not null;default:0"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Reason     string     `gorm:"type:text"`
	DecidedBy  *uuid.UUID `gorm:"type:uuid"`
	DecidedAt  *time.Time
	DecideNote string `gorm:"type:text"`

	EmployeeName string `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// CanTransition encodes the request lifecycle: pending requests can be
// decided or withdrawn, approved requests can still be cancelled (with a
// ledger reversal), and terminal states stay terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusDeclined || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled
	default:
		return false
	}
}
