package entity

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, e *LegalEntity) error
	FindAll(ctx context.Context) ([]LegalEntity, error)
	FindByID(ctx context.Context, id string) (*LegalEntity, error)
	Update(ctx context.Context, e *LegalEntity) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *LegalEntity) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LegalEntity, error) {
	var entities []LegalEntity
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&entities).Error
	return entities, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LegalEntity, error) {
	var e LegalEntity
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *LegalEntity) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LegalEntity{}, "id = ?", id).Error
}
