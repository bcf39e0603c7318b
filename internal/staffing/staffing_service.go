package staffing

import (
	"context"
	"errors"
	"net/http"
	"time"

	"leavehr/internal/engine"
	"leavehr/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrRuleNotFound = apperror.New(
	apperror.CodeNotFound,
	"staffing rule not found",
	http.StatusNotFound,
)

// HeadcountSource counts active employees in a scope. Implemented by the
// employee repository.
type HeadcountSource interface {
	CountActiveInScope(ctx context.Context, entityID, departmentID string) (int, error)
}

// OverlapSource lists colleagues with approved leave intersecting a
// window. Implemented by the leave repository.
type OverlapSource interface {
	FindApprovedOverlapping(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) ([]engine.OverlappingLeave, error)
}

type Service interface {
	Create(ctx context.Context, entityID string, req CreateRuleRequest) (RuleResponse, error)
	GetAll(ctx context.Context, entityID string) ([]RuleResponse, error)
	Update(ctx context.Context, entityID, id string, req UpdateRuleRequest) (RuleResponse, error)
	Delete(ctx context.Context, entityID, id string) error

	// CheckConflict runs the advisory staffing check for a hypothetical
	// approval. Returns nil when no rule applies to the scope.
	CheckConflict(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) (*engine.ConflictResult, error)
}

type service struct {
	repo      Repository
	headcount HeadcountSource
	overlaps  OverlapSource
	logger    *zap.Logger
}

func NewService(repo Repository, headcount HeadcountSource, overlaps OverlapSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("staffing.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staffing.service")
	}
	return &service{repo: repo, headcount: headcount, overlaps: overlaps, logger: l}
}

func (s *service) Create(ctx context.Context, entityID string, req CreateRuleRequest) (RuleResponse, error) {
	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return RuleResponse{}, apperror.ErrInvalidInput
	}

	rule := &StaffingRule{
		ID:                 uuid.New(),
		EntityID:           &entityUUID,
		MinActiveHeadcount: req.MinActiveHeadcount,
		MaxConcurrentLeave: req.MaxConcurrentLeave,
		IsActive:           true,
	}
	if req.Global {
		// Global rules carry no scope at all; a department only narrows
		// an entity-scoped rule.
		if req.DepartmentID != nil {
			return RuleResponse{}, apperror.InvalidField("Department Id")
		}
		rule.EntityID = nil
	}
	if req.DepartmentID != nil {
		did, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return RuleResponse{}, apperror.InvalidField("Department Id")
		}
		rule.DepartmentID = &did
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		s.logger.Error("create staffing rule persist failed", zap.Error(err))
		return RuleResponse{}, err
	}

	s.logger.Info("create staffing rule success",
		zap.String("rule_id", rule.ID.String()),
		zap.String("entity_id", entityID),
	)
	return mapToResponse(*rule), nil
}

func (s *service) GetAll(ctx context.Context, entityID string) ([]RuleResponse, error) {
	rules, err := s.repo.FindByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rules), nil
}

func (s *service) Update(ctx context.Context, entityID, id string, req UpdateRuleRequest) (RuleResponse, error) {
	rule, err := s.repo.FindByID(ctx, entityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RuleResponse{}, ErrRuleNotFound
		}
		return RuleResponse{}, err
	}

	rule.MinActiveHeadcount = req.MinActiveHeadcount
	rule.MaxConcurrentLeave = req.MaxConcurrentLeave
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		s.logger.Error("update staffing rule persist failed", zap.String("rule_id", id), zap.Error(err))
		return RuleResponse{}, err
	}

	s.logger.Info("update staffing rule success", zap.String("rule_id", id))
	return mapToResponse(*rule), nil
}

func (s *service) Delete(ctx context.Context, entityID, id string) error {
	if err := s.repo.Delete(ctx, entityID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	s.logger.Info("delete staffing rule success", zap.String("rule_id", id))
	return nil
}

func (s *service) CheckConflict(ctx context.Context, entityID, departmentID string, start, end time.Time, excludeEmployeeID string) (*engine.ConflictResult, error) {
	stored, err := s.repo.FindApplicable(ctx, entityID)
	if err != nil {
		return nil, err
	}

	rule := engine.ResolveRule(toEngineRules(stored), entityID, departmentID)
	if rule == nil {
		return nil, nil
	}

	count, err := s.headcount.CountActiveInScope(ctx, entityID, departmentID)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.overlaps.FindApprovedOverlapping(ctx, entityID, departmentID, start, end, excludeEmployeeID)
	if err != nil {
		return nil, err
	}

	result := engine.CheckConflict(count, rule, overlapping)
	if result != nil && result.HasConflict {
		s.logger.Debug("staffing conflict detected",
			zap.String("entity_id", entityID),
			zap.String("department_id", departmentID),
			zap.Int("active_after_approval", result.ActiveAfterApproval),
		)
	}
	return result, nil
}

func toEngineRules(stored []StaffingRule) []engine.StaffingRule {
	rules := make([]engine.StaffingRule, len(stored))
	for i, r := range stored {
		er := engine.StaffingRule{
			MinActiveHeadcount: r.MinActiveHeadcount,
			MaxConcurrentLeave: r.MaxConcurrentLeave,
			Active:             r.IsActive,
		}
		if r.EntityID != nil {
			er.EntityID = r.EntityID.String()
		}
		if r.DepartmentID != nil {
			er.DepartmentID = r.DepartmentID.String()
		}
		rules[i] = er
	}
	return rules
}
