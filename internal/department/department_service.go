package department

import (
	"context"
	"errors"
	"net/http"

	"leavehr/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrDepartmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"department not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, entityID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, entityID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, entityID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, entityID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, entityID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, entityID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return DepartmentResponse{}, apperror.ErrInvalidInput
	}

	d := &Department{
		ID:       uuid.New(),
		EntityID: entityUUID,
		Name:     req.Name,
	}
	if req.ManagerID != nil {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("Manager Id")
		}
		d.ManagerID = &mid
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success",
		zap.String("department_id", d.ID.String()),
		zap.String("entity_id", entityID),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, entityID string) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindAllByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(departments), nil
}

func (s *service) GetByID(ctx context.Context, entityID, id string) (DepartmentResponse, error) {
	d, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, entityID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	d, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	d.Name = req.Name
	d.ManagerID = nil
	if req.ManagerID != nil {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("Manager Id")
		}
		d.ManagerID = &mid
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("update department persist failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, entityID, id string) error {
	return s.repo.Delete(ctx, entityID, id)
}
