package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicHoliday is a single non-working day in an entity's calendar.
// Dates are stored date-only; the time component is always midnight UTC.
type PublicHoliday struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID uuid.UUID `gorm:"type:uuid;not null;index:idx_holidays_entity_date"`
	Name     string    `gorm:"type:varchar(255);not null"`
	// Location narrows a regional holiday to employees at that location.
	// Empty means the holiday applies entity-wide.
	Location string    `gorm:"type:varchar(100)"`
	Date     time.Time `gorm:"type:date;not null;index:idx_holidays_entity_date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PublicHoliday) TableName() string {
	return "public_holidays"
}
