package policy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType is a display-facing leave category. Its canonical bucket is a
// required, validated field: balance and policy lookup never infer the
// bucket from the name or code.
type LeaveType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_types_entity"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Code     string    `gorm:"type:varchar(30);not null"`
	Bucket   string    `gorm:"type:varchar(20);not null"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// LeavePolicy holds the accrual parameters for one canonical bucket
// within a legal entity. At most one active policy may exist per
// (entity_id, bucket); a partial unique index backs the service check.
type LeavePolicy struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_policies_entity_bucket"`
	Bucket   string    `gorm:"type:varchar(20);not null;index:idx_leave_policies_entity_bucket"`

	StandardHoursPerDay float64 `gorm:"type:numeric(5,2);not null;default:0"`
	// AccrualRate is hours of leave accrued per ordinary hour worked.
	AccrualRate             float64 `gorm:"type:numeric(10,6);not null"`
	MinServiceYears         int     `gorm:"not null;default:0"`
	AccrueBeforeEligibility bool    `gorm:"not null;default:true"`
	PayableOnTermination    bool    `gorm:"not null"`
	IsActive                bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
