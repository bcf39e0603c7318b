package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is the org-structure unit that staffing rules may be scoped
// to. Headcount for coverage checks is counted per department.
type Department struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EntityID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"size:255;not null"`
	ManagerID *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
