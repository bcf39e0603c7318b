package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LegalEntity is the tenant scope: every policy, holiday calendar,
// staffing rule and employee record belongs to exactly one legal entity.
type LegalEntity struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Email    string    `gorm:"type:varchar(255);index"`
	Location string    `gorm:"type:varchar(100);not null;default:''"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LegalEntity) TableName() string {
	return "legal_entities"
}
