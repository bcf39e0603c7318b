package staffing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffingRule configures minimum-coverage constraints for conflict
// checks. A nil EntityID makes the rule global; a nil DepartmentID applies
// it entity-wide.
type StaffingRule struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EntityID           *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentID       *uuid.UUID `gorm:"type:uuid;index"`
	MinActiveHeadcount int        `gorm:"not null;default:0"`
	MaxConcurrentLeave int        `gorm:"not null;default:0"`
	IsActive           bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (StaffingRule) TableName() string {
	return "staffing_rules"
}
