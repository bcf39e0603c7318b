package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"leavehr/internal/balance"
	"leavehr/internal/events"
	"leavehr/internal/salary"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle seeds a zero-rate salary row for each newly
// created employee so liability valuation has a record to update later.
// Replays are absorbed by the salary table's uniqueness on
// (employee_id, effective_date).
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	salaryService salary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		effectiveDate := time.Now().UTC().Format(time.DateOnly)
		_, err = salaryService.Create(ctx, event.EntityID, salary.CreateSalaryRequest{
			EmployeeID:    event.EmployeeID,
			HourlyRate:    0,
			EffectiveDate: effectiveDate,
		})
		if err != nil {
			if isUniqueSalaryViolation(err) {
				log.Warn("salary record already exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("entity_id", event.EntityID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create default salary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default salary created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("entity_id", event.EntityID),
		)
	}
}

// ConsumeEmploymentChanged rebuilds an employee's leave balances whenever
// the accrual inputs on their employment record change. RecalculateAll is
// idempotent, so redelivery is harmless.
func ConsumeEmploymentChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	balanceService balance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employment_changed")
	log.Info("employment changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employment changed consumer stopped")
				return
			}
			log.Error("fetch employment changed message failed", zap.Error(err))
			continue
		}

		var event events.EmploymentChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employment_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := balanceService.RecalculateAll(ctx, event.EntityID, event.EmployeeID); err != nil {
			log.Error("recalculate balances failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employment changed message failed", zap.Error(err))
			continue
		}

		log.Info("balances recalculated from employment_changed event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("entity_id", event.EntityID),
		)
	}
}

func isUniqueSalaryViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_salary_effective"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_salary_effective")
}
