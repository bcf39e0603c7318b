package department

import (
	"context"

	"leavehr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Department) error
	FindAllByEntity(ctx context.Context, entityID string) ([]Department, error)
	FindByIDAndEntity(ctx context.Context, entityID, id string) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, entityID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByEntity(ctx context.Context, entityID string) ([]Department, error) {
	var departments []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *repository) FindByIDAndEntity(ctx context.Context, entityID, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, entityID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(entityID)).
		Delete(&Department{}, "id = ?", id).Error
}
