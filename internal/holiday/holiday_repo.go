package holiday

import (
	"context"
	"time"

	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, h *PublicHoliday) error
	FindByEntity(ctx context.Context, entityID string) ([]PublicHoliday, error)
	FindByEntityAndRange(ctx context.Context, entityID string, from, to time.Time) ([]PublicHoliday, error)
	Delete(ctx context.Context, entityID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *PublicHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByEntity(ctx context.Context, entityID string) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByEntityAndRange(ctx context.Context, entityID string, from, to time.Time) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Delete(ctx context.Context, entityID, id string) error {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Where("id = ?", id).
		Delete(&PublicHoliday{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
