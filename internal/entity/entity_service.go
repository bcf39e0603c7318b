package entity

import (
	"context"
	"errors"

	entityerrors "leavehr/internal/entity/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEntityRequest) (EntityResponse, error)
	GetAll(ctx context.Context) ([]EntityResponse, error)
	GetByID(ctx context.Context, id string) (EntityResponse, error)
	Update(ctx context.Context, id string, req UpdateEntityRequest) (EntityResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("entity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entity.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEntityRequest) (EntityResponse, error) {
	s.logger.Debug("create entity requested", zap.String("name", req.Name))

	e := &LegalEntity{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create entity persist failed", zap.Error(err))
		return EntityResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create entity success", zap.String("entity_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EntityResponse, error) {
	entities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entities), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EntityResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EntityResponse{}, entityerrors.ErrInvalidEntityID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntityResponse{}, entityerrors.ErrEntityNotFound
		}
		return EntityResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEntityRequest) (EntityResponse, error) {
	s.logger.Debug("update entity requested", zap.String("entity_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EntityResponse{}, entityerrors.ErrInvalidEntityID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntityResponse{}, entityerrors.ErrEntityNotFound
		}
		return EntityResponse{}, err
	}

	e.Name = req.Name
	e.Email = req.Email
	e.Location = req.Location
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update entity persist failed", zap.String("entity_id", id), zap.Error(err))
		return EntityResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update entity success", zap.String("entity_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entityerrors.ErrInvalidEntityID
	}
	return s.repo.Delete(ctx, id)
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entityerrors.ErrDuplicateEntityName
	}
	return err
}
