package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "leavehr/internal/employee/errors"
	"leavehr/internal/engine"
	"leavehr/internal/events"
	"leavehr/internal/messaging/kafka"
	"leavehr/internal/shared/apperror"
	"leavehr/internal/shared/contextutil"
	"leavehr/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, entityID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, entityID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, entityID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, entityID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, entityID, id string) error

	// GetEmployment loads the accrual-relevant projection of an employee.
	GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, entityID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("entity_id", entityID),
		zap.String("email", req.Email),
		zap.String("employment_type", req.EmploymentType),
	)

	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return EmployeeResponse{}, apperror.ErrInvalidInput
	}
	if !validEmploymentType(req.EmploymentType) {
		s.logger.Warn("create employee invalid employment type",
			zap.String("employment_type", req.EmploymentType),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentType
	}

	startDate, err := time.ParseInLocation(time.DateOnly, req.StartDate, time.UTC)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Start Date")
	}
	serviceStart, err := parseOptionalDate(req.ServiceStartDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Service Start Date")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, entityID, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:               uuid.New(),
		EntityID:         entityUUID,
		DepartmentID:     uuidPtr(req.DepartmentID),
		ManagerID:        uuidPtr(req.ManagerID),
		EmployeeNumber:   req.EmployeeNumber,
		FullName:         req.FullName,
		Email:            req.Email,
		Location:         req.Location,
		EmploymentType:   req.EmploymentType,
		HoursPerWeek:     req.HoursPerWeek,
		StartDate:        startDate,
		ServiceStartDate: serviceStart,
		Status:           StatusActive,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			EntityID:   entityID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.stageEvent(ctx, tx, empl.ID.String(), event.EventType, events.EmployeeCreatedTopic, rid, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, entityID string) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("entity_id", entityID))
	empls, err := s.repo.FindAllByEntity(ctx, entityID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, entityID, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, entityID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("entity_id", entityID),
		zap.String("employee_id", id),
	)

	if !validEmploymentType(req.EmploymentType) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentType
	}

	startDate, err := time.ParseInLocation(time.DateOnly, req.StartDate, time.UTC)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Start Date")
	}
	serviceStart, err := parseOptionalDate(req.ServiceStartDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Service Start Date")
	}
	terminationDate, err := parseOptionalDate(req.TerminationDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Termination Date")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	before := *empl

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Location = req.Location
	empl.DepartmentID = uuidPtr(req.DepartmentID)
	empl.ManagerID = uuidPtr(req.ManagerID)
	empl.EmploymentType = req.EmploymentType
	empl.HoursPerWeek = req.HoursPerWeek
	empl.StartDate = startDate
	empl.ServiceStartDate = serviceStart
	empl.TerminationDate = terminationDate
	if req.Status != "" {
		empl.Status = req.Status
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil && AccrualInputsChanged(before, *empl) {
		event := events.EmploymentChangedEvent{
			EventType:  "employment_changed",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			EntityID:   entityID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.stageEvent(ctx, tx, empl.ID.String(), event.EventType, events.EmploymentChangedTopic, rid, event); err != nil {
			s.logger.Error("update employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, entityID, id string) error {
	s.logger.Debug("delete employee requested",
		zap.String("entity_id", entityID),
		zap.String("employee_id", id),
	)

	if err := s.repo.Delete(ctx, entityID, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error) {
	empl, err := s.repo.FindByIDAndEntity(ctx, entityID, id)
	if err != nil {
		return engine.Employment{}, mapRepositoryError(err)
	}
	return empl.Employment(), nil
}

func (s *service) stageEvent(ctx context.Context, tx *sql.Tx, aggregateID, eventType, topic, rid string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func validEmploymentType(v string) bool {
	switch engine.EmploymentType(v) {
	case engine.FullTime, engine.PartTime, engine.Casual, engine.Contractor:
		return true
	}
	return false
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, *v, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		EntityID:       empl.EntityID.String(),
		DepartmentID:   uuidToString(empl.DepartmentID),
		ManagerID:      uuidToString(empl.ManagerID),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		Location:       empl.Location,
		EmploymentType: empl.EmploymentType,
		HoursPerWeek:   empl.HoursPerWeek,
		StartDate:      empl.StartDate.Format(time.DateOnly),
		Status:         empl.Status,
	}
	if empl.ServiceStartDate != nil {
		resp.ServiceStartDate = empl.ServiceStartDate.Format(time.DateOnly)
	}
	if empl.TerminationDate != nil {
		resp.TerminationDate = empl.TerminationDate.Format(time.DateOnly)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v *string) *uuid.UUID {
	if v == nil {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
