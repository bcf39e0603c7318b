package salary

import (
	"context"
	"errors"
	"time"

	salaryerrors "leavehr/internal/salary/errors"
	"leavehr/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, entityID string, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, entityID string) ([]SalaryResponse, error)
	GetByID(ctx context.Context, entityID, id string) (SalaryResponse, error)
	Delete(ctx context.Context, entityID, id string) error

	// HourlyRate resolves the rate in effect for the employee at asOf,
	// for leave-liability valuation.
	HourlyRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (decimal.Decimal, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, entityID string, req CreateSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("create salary requested",
		zap.String("entity_id", entityID),
		zap.String("employee_id", req.EmployeeID),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, apperror.InvalidField("Employee Id")
	}
	effectiveDate, err := time.ParseInLocation(time.DateOnly, req.EffectiveDate, time.UTC)
	if err != nil {
		return SalaryResponse{}, apperror.InvalidField("Effective Date")
	}

	record := &EmployeeSalary{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		HourlyRate:    decimal.NewFromFloat(req.HourlyRate),
		EffectiveDate: effectiveDate,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create salary success",
		zap.String("salary_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, entityID string) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindAllByEntity(ctx, entityID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, entityID, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, entityID, id string) error {
	if err := s.repo.Delete(ctx, entityID, id); err != nil {
		s.logger.Error("delete salary failed", zap.String("salary_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.logger.Info("delete salary success", zap.String("salary_id", id))
	return nil
}

func (s *service) HourlyRate(ctx context.Context, entityID, employeeID string, asOf time.Time) (decimal.Decimal, error) {
	record, err := s.repo.FindEffectiveRate(ctx, entityID, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, salaryerrors.ErrNoApplicableRate
		}
		return decimal.Zero, err
	}
	return record.HourlyRate, nil
}
