package staffing

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, r *StaffingRule) error
	FindByEntity(ctx context.Context, entityID string) ([]StaffingRule, error)
	// FindApplicable returns entity-scoped rules plus the global ones, the
	// full candidate set for scope resolution.
	FindApplicable(ctx context.Context, entityID string) ([]StaffingRule, error)
	FindByID(ctx context.Context, entityID, id string) (*StaffingRule, error)
	Update(ctx context.Context, r *StaffingRule) error
	Delete(ctx context.Context, entityID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *StaffingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindByEntity(ctx context.Context, entityID string) ([]StaffingRule, error) {
	var rules []StaffingRule
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindApplicable(ctx context.Context, entityID string) ([]StaffingRule, error) {
	var rules []StaffingRule
	err := r.db.WithContext(ctx).
		Where("entity_id = ? OR entity_id IS NULL", entityID).
		Order("created_at ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindByID(ctx context.Context, entityID, id string) (*StaffingRule, error) {
	var rule StaffingRule
	err := r.db.WithContext(ctx).
		Where("entity_id = ? AND id = ?", entityID, id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) Update(ctx context.Context, rule *StaffingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, entityID, id string) error {
	result := r.db.WithContext(ctx).
		Where("entity_id = ? AND id = ?", entityID, id).
		Delete(&StaffingRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
