package balance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavehr/internal/employee"
	"leavehr/internal/engine"
	"leavehr/internal/events"
	"leavehr/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	balanceKeyPrefix = "balances:employee:"
	// InvalidationChannel carries employee ids whose cached balances are
	// stale, so every API replica can react, not just the writer.
	InvalidationChannel = "leavehr:balance:invalidate"
)

func balanceKey(employeeID string) string {
	return balanceKeyPrefix + employeeID
}

// EmploymentSource loads the accrual-relevant projection of an employee
// along with the full record, whose location scopes the holiday calendar.
type EmploymentSource interface {
	GetEmployment(ctx context.Context, entityID, id string) (engine.Employment, error)
	GetByID(ctx context.Context, entityID, id string) (employee.EmployeeResponse, error)
}

// HolidaySource lists the holiday dates applying to a location within a
// window.
type HolidaySource interface {
	ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error)
}

// ApprovedLeave is an approved request as the rebuild needs it: the
// bucket it charged and the span to re-price.
type ApprovedLeave struct {
	Bucket  engine.Bucket
	Start   time.Time
	End     time.Time
	Partial engine.PartialDay
}

// ApprovedSource lists every approved request an employee holds, so a
// rebuild can re-derive consumed hours instead of trusting the stored
// ledger column.
type ApprovedSource interface {
	ListApproved(ctx context.Context, entityID, employeeID string) ([]ApprovedLeave, error)
}

// PolicySource resolves the active policy parameters for a bucket; nil
// params means no policy governs the bucket.
type PolicySource interface {
	Resolve(ctx context.Context, entityID string, bucket engine.Bucket) (*engine.PolicyParams, error)
}

type Service interface {
	// AccrueUpTo advances each bucket's checkpoint to asOf. Idempotent:
	// re-running for the same asOf adds nothing, and a lost checkpoint
	// race means another writer already advanced.
	AccrueUpTo(ctx context.Context, entityID, employeeID string, asOf time.Time) error

	// RecalculateAll rebuilds every bucket from scratch: accrued hours
	// replayed from the employment record and consumed hours re-priced
	// from the approved requests, discarding whatever the ledger held.
	// Used after employment changes and as the recovery path when a
	// ledger row is suspect. Concurrent calls for one employee collapse
	// to one rebuild.
	RecalculateAll(ctx context.Context, entityID, employeeID string) error

	// GetBalances returns the employee's balances, accrued through today.
	GetBalances(ctx context.Context, entityID, employeeID string) ([]BalanceResponse, error)

	// AvailableHours returns the hours available in one bucket, accrued
	// through today.
	AvailableHours(ctx context.Context, entityID, employeeID string, bucket engine.Bucket) (float64, error)

	// ApplyConsumption records approved leave hours against a bucket
	// inside the caller's transaction, creating the ledger row if the
	// bucket has never accrued.
	ApplyConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error

	// ReverseConsumption gives hours back after a cancellation.
	ReverseConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error

	// Invalidate drops the cached snapshot and notifies other replicas.
	Invalidate(ctx context.Context, employeeID string)
}

type service struct {
	repo       Repository
	employment EmploymentSource
	policies   PolicySource
	holidays   HolidaySource
	approved   ApprovedSource
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	repo Repository,
	employment EmploymentSource,
	policies PolicySource,
	holidays HolidaySource,
	approved ApprovedSource,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:       repo,
		employment: employment,
		policies:   policies,
		holidays:   holidays,
		approved:   approved,
		outbox:     outboxRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) AccrueUpTo(ctx context.Context, entityID, employeeID string, asOf time.Time) error {
	emp, err := s.employment.GetEmployment(ctx, entityID, employeeID)
	if err != nil {
		return err
	}
	asOf = dateOnly(asOf)

	for _, bucket := range engine.Buckets() {
		params, err := s.policies.Resolve(ctx, entityID, bucket)
		if err != nil {
			return err
		}
		if params == nil {
			continue
		}

		if err := s.accrueBucket(ctx, entityID, employeeID, emp, *params, asOf); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) accrueBucket(ctx context.Context, entityID, employeeID string, emp engine.Employment, params engine.PolicyParams, asOf time.Time) error {
	bucket := string(params.Bucket)

	bal, err := s.repo.FindByEmployeeAndBucket(ctx, entityID, employeeID, bucket)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := &LeaveBalance{
			ID:             uuid.New(),
			EntityID:       uuid.MustParse(entityID),
			EmployeeID:     uuid.MustParse(employeeID),
			Bucket:         bucket,
			AccruedHours:   engine.AccruedTotal(emp, params, asOf),
			AccruedThrough: asOf,
		}
		if err := s.repo.Create(ctx, row); err != nil {
			// A concurrent writer may have created the row; the next
			// accrual pass picks it up.
			s.logger.Warn("create balance row failed",
				zap.String("employee_id", employeeID),
				zap.String("bucket", bucket),
				zap.Error(err),
			)
		}
		return nil
	}
	if err != nil {
		return err
	}

	checkpoint := dateOnly(bal.AccruedThrough)
	if !asOf.After(checkpoint) {
		return nil
	}

	delta := engine.Accrue(emp, params, checkpoint, asOf)
	advanced, err := s.repo.AdvanceCheckpoint(ctx, employeeID, bucket, bal.AccruedThrough, delta, asOf)
	if err != nil {
		return err
	}
	if !advanced {
		s.logger.Debug("balance checkpoint already advanced",
			zap.String("employee_id", employeeID),
			zap.String("bucket", bucket),
		)
	}
	return nil
}

func (s *service) RecalculateAll(ctx context.Context, entityID, employeeID string) error {
	_, err, _ := s.sf.Do("recalc:"+employeeID, func() (interface{}, error) {
		record, err := s.employment.GetByID(ctx, entityID, employeeID)
		if err != nil {
			return nil, err
		}
		emp, err := s.employment.GetEmployment(ctx, entityID, employeeID)
		if err != nil {
			return nil, err
		}
		now := dateOnly(time.Now().UTC())

		var requests []ApprovedLeave
		if s.approved != nil {
			requests, err = s.approved.ListApproved(ctx, entityID, employeeID)
			if err != nil {
				return nil, err
			}
		}

		// The replay window runs from hire to today, widened when
		// approved leave was booked ahead of today or predates the
		// recorded start date.
		historyStart := dateOnly(emp.StartDate)
		horizon := now
		for _, r := range requests {
			if start := dateOnly(r.Start); start.Before(historyStart) {
				historyStart = start
			}
			if end := dateOnly(r.End); end.After(horizon) {
				horizon = end
			}
		}

		var holidays []time.Time
		if s.holidays != nil {
			holidays, err = s.holidays.ListDates(ctx, entityID, record.Location, historyStart, horizon)
			if err != nil {
				return nil, err
			}
		}

		for _, bucket := range engine.Buckets() {
			params, err := s.policies.Resolve(ctx, entityID, bucket)
			if err != nil {
				return nil, err
			}
			if params == nil {
				continue
			}

			accrued := engine.AccruedTotal(emp, *params, now)
			hoursPerDay := engine.HoursPerDay(params.StandardHoursPerDay, emp.HoursPerWeek)
			consumed := engine.TakenWithin(historyStart, horizon, bucketSpans(requests, bucket), holidays, hoursPerDay)

			_, findErr := s.repo.FindByEmployeeAndBucket(ctx, entityID, employeeID, string(bucket))
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				row := &LeaveBalance{
					ID:             uuid.New(),
					EntityID:       uuid.MustParse(entityID),
					EmployeeID:     uuid.MustParse(employeeID),
					Bucket:         string(bucket),
					AccruedHours:   accrued,
					ConsumedHours:  consumed,
					AccruedThrough: now,
				}
				if err := s.repo.Create(ctx, row); err != nil {
					return nil, err
				}
				continue
			}
			if findErr != nil {
				return nil, findErr
			}

			if err := s.repo.ReplaceSnapshot(ctx, employeeID, string(bucket), accrued, consumed, now); err != nil {
				return nil, err
			}
		}

		s.Invalidate(ctx, employeeID)
		s.stageInvalidatedEvent(ctx, entityID, employeeID)

		s.logger.Info("balances recalculated",
			zap.String("entity_id", entityID),
			zap.String("employee_id", employeeID),
		)
		return nil, nil
	})
	return err
}

func (s *service) GetBalances(ctx context.Context, entityID, employeeID string) ([]BalanceResponse, error) {
	cacheKey := balanceKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		if err := s.AccrueUpTo(ctx, entityID, employeeID, time.Now().UTC()); err != nil {
			return nil, err
		}

		balances, err := s.repo.FindByEmployee(ctx, entityID, employeeID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(balances)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]BalanceResponse), nil
}

func (s *service) AvailableHours(ctx context.Context, entityID, employeeID string, bucket engine.Bucket) (float64, error) {
	if err := s.AccrueUpTo(ctx, entityID, employeeID, time.Now().UTC()); err != nil {
		return 0, err
	}

	bal, err := s.repo.FindByEmployeeAndBucket(ctx, entityID, employeeID, string(bucket))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return bal.AvailableHours(), nil
}

func (s *service) ApplyConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error {
	qtx := s.repo.WithTx(tx)

	applied, err := qtx.AddConsumption(ctx, employeeID, string(bucket), hours)
	if err != nil {
		return err
	}
	if !applied {
		row := &LeaveBalance{
			ID:             uuid.New(),
			EntityID:       uuid.MustParse(entityID),
			EmployeeID:     uuid.MustParse(employeeID),
			Bucket:         string(bucket),
			ConsumedHours:  hours,
			AccruedThrough: dateOnly(time.Now().UTC()),
		}
		if err := qtx.Create(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ReverseConsumption(ctx context.Context, tx *sql.Tx, entityID, employeeID string, bucket engine.Bucket, hours float64) error {
	qtx := s.repo.WithTx(tx)
	reversed, err := qtx.AddConsumption(ctx, employeeID, string(bucket), -hours)
	if err != nil {
		return err
	}
	if !reversed {
		s.logger.Warn("reverse consumption found no ledger row",
			zap.String("employee_id", employeeID),
			zap.String("bucket", string(bucket)),
		)
	}
	return nil
}

func (s *service) Invalidate(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := balanceKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("balance cache invalidation failed",
			zap.String("key", cacheKey), zap.Error(err))
	}
	if err := s.rdb.Publish(ctx, InvalidationChannel, employeeID).Err(); err != nil {
		s.logger.Error("balance invalidation publish failed",
			zap.String("employee_id", employeeID), zap.Error(err))
	}
}

func (s *service) stageInvalidatedEvent(ctx context.Context, entityID, employeeID string) {
	if s.outbox == nil {
		return
	}
	event := events.BalanceInvalidatedEvent{
		EventType:  "balance_invalidated",
		EmployeeID: employeeID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "leave_balance",
		AggregateID:   employeeID,
		EventType:     event.EventType,
		Topic:         events.BalanceInvalidatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("stage balance invalidated event failed",
			zap.String("employee_id", employeeID), zap.Error(err))
	}
}

// ListenInvalidations evicts cached balance snapshots announced on the
// invalidation channel by other replicas, closing the window where a
// replica re-populates the cache from a read raced against a writer's
// Del. Blocks until ctx is cancelled.
func ListenInvalidations(ctx context.Context, rdb *redis.Client, logger *zap.Logger) {
	sub := rdb.Subscribe(ctx, InvalidationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := rdb.Del(ctx, balanceKey(msg.Payload)).Err(); err != nil {
				logger.Warn("balance cache eviction failed",
					zap.String("employee_id", msg.Payload), zap.Error(err))
			}
		}
	}
}

func bucketSpans(requests []ApprovedLeave, bucket engine.Bucket) []engine.ApprovedLeave {
	var spans []engine.ApprovedLeave
	for _, r := range requests {
		if r.Bucket != bucket {
			continue
		}
		spans = append(spans, engine.ApprovedLeave{
			Start:   r.Start,
			End:     r.End,
			Partial: r.Partial,
		})
	}
	return spans
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
