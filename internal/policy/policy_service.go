package policy

import (
	"context"
	"database/sql"
	"errors"

	"leavehr/internal/engine"
	policyerrors "leavehr/internal/policy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateLeaveType(ctx context.Context, entityID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetLeaveTypes(ctx context.Context, entityID string) ([]LeaveTypeResponse, error)

	CreatePolicy(ctx context.Context, entityID string, req CreatePolicyRequest) (PolicyResponse, error)
	GetPolicies(ctx context.Context, entityID string) ([]PolicyResponse, error)
	UpdatePolicy(ctx context.Context, entityID, id string, req UpdatePolicyRequest) (PolicyResponse, error)

	// Resolve returns the effective parameters of the single active policy
	// for the bucket, or nil when no policy governs it. Absence is a data
	// inconsistency handled with conservative defaults upstream, so it is
	// logged rather than returned as an error.
	Resolve(ctx context.Context, entityID string, bucket engine.Bucket) (*engine.PolicyParams, error)

	// ResolveForType maps a leave-type id to its canonical bucket and
	// resolved policy parameters.
	ResolveForType(ctx context.Context, entityID, leaveTypeID string) (engine.Bucket, *engine.PolicyParams, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateLeaveType(ctx context.Context, entityID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return LeaveTypeResponse{}, policyerrors.ErrInvalidEntityID
	}

	bucket, err := engine.ParseBucket(req.Bucket)
	if err != nil {
		s.logger.Warn("create leave type invalid bucket",
			zap.String("bucket", req.Bucket), zap.Error(err))
		return LeaveTypeResponse{}, policyerrors.ErrInvalidBucket
	}

	t := &LeaveType{
		ID:       uuid.New(),
		EntityID: entityUUID,
		Name:     req.Name,
		Code:     req.Code,
		Bucket:   string(bucket),
		IsActive: true,
	}

	if err := s.repo.CreateLeaveType(ctx, t); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", t.ID.String()),
		zap.String("bucket", t.Bucket),
	)
	return mapTypeToResponse(*t), nil
}

func (s *service) GetLeaveTypes(ctx context.Context, entityID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindLeaveTypesByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapTypeToResponse(t)
	}
	return resp, nil
}

func (s *service) CreatePolicy(ctx context.Context, entityID string, req CreatePolicyRequest) (PolicyResponse, error) {
	s.logger.Debug("create policy requested",
		zap.String("entity_id", entityID),
		zap.String("bucket", req.Bucket),
	)

	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidEntityID
	}
	bucket, err := engine.ParseBucket(req.Bucket)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidBucket
	}

	p := &LeavePolicy{
		ID:                      uuid.New(),
		EntityID:                entityUUID,
		Bucket:                  string(bucket),
		StandardHoursPerDay:     req.StandardHoursPerDay,
		AccrualRate:             req.AccrualRate,
		MinServiceYears:         req.MinServiceYears,
		AccrueBeforeEligibility: true,
		PayableOnTermination:    bucket == engine.BucketAnnual,
		IsActive:                true,
	}
	if req.AccrueBeforeEligibility != nil {
		p.AccrueBeforeEligibility = *req.AccrueBeforeEligibility
	}
	if req.PayableOnTermination != nil {
		p.PayableOnTermination = *req.PayableOnTermination
	}

	// Supersede any currently active policy for the bucket in the same
	// transaction so the one-active-policy invariant holds at every point
	// in time.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create policy begin tx failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeactivatePolicies(ctx, entityID, string(bucket)); err != nil {
		s.logger.Error("create policy deactivate failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	if err := qtx.CreatePolicy(ctx, p); err != nil {
		s.logger.Error("create policy persist failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create policy commit failed", zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("create policy success",
		zap.String("policy_id", p.ID.String()),
		zap.String("entity_id", entityID),
		zap.String("bucket", p.Bucket),
	)
	return mapPolicyToResponse(*p), nil
}

func (s *service) GetPolicies(ctx context.Context, entityID string) ([]PolicyResponse, error) {
	policies, err := s.repo.FindPoliciesByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapPolicyToResponse(p)
	}
	return resp, nil
}

func (s *service) UpdatePolicy(ctx context.Context, entityID, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	p, err := s.repo.FindPolicyByID(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyResponse{}, policyerrors.ErrPolicyNotFound
		}
		return PolicyResponse{}, err
	}

	p.StandardHoursPerDay = req.StandardHoursPerDay
	p.AccrualRate = req.AccrualRate
	p.MinServiceYears = req.MinServiceYears
	if req.AccrueBeforeEligibility != nil {
		p.AccrueBeforeEligibility = *req.AccrueBeforeEligibility
	}
	if req.PayableOnTermination != nil {
		p.PayableOnTermination = *req.PayableOnTermination
	}
	if req.IsActive != nil {
		if *req.IsActive && !p.IsActive {
			existing, err := s.repo.FindActivePolicy(ctx, entityID, p.Bucket)
			if err == nil && existing.ID != p.ID {
				return PolicyResponse{}, policyerrors.ErrActivePolicyExists
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return PolicyResponse{}, err
			}
		}
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdatePolicy(ctx, p); err != nil {
		s.logger.Error("update policy persist failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("update policy success", zap.String("policy_id", id))
	return mapPolicyToResponse(*p), nil
}

func (s *service) Resolve(ctx context.Context, entityID string, bucket engine.Bucket) (*engine.PolicyParams, error) {
	p, err := s.repo.FindActivePolicy(ctx, entityID, string(bucket))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("no active policy for bucket",
				zap.String("entity_id", entityID),
				zap.String("bucket", string(bucket)),
			)
			return nil, nil
		}
		return nil, err
	}

	return &engine.PolicyParams{
		Bucket:                  bucket,
		StandardHoursPerDay:     p.StandardHoursPerDay,
		AccrualRate:             p.AccrualRate,
		MinServiceYears:         p.MinServiceYears,
		AccrueBeforeEligibility: p.AccrueBeforeEligibility,
		PayableOnTermination:    p.PayableOnTermination,
	}, nil
}

func (s *service) ResolveForType(ctx context.Context, entityID, leaveTypeID string) (engine.Bucket, *engine.PolicyParams, error) {
	t, err := s.repo.FindLeaveTypeByID(ctx, entityID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, policyerrors.ErrLeaveTypeNotFound
		}
		return "", nil, err
	}

	bucket := engine.Bucket(t.Bucket)
	params, err := s.Resolve(ctx, entityID, bucket)
	if err != nil {
		return "", nil, err
	}
	return bucket, params, nil
}
