package holiday

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"leavehr/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var ErrHolidayNotFound = apperror.New(
	apperror.CodeNotFound,
	"public holiday not found",
	http.StatusNotFound,
)

const holidayAllKeyPrefix = "holidays:all:"

func holidayAllKey(entityID string) string {
	return holidayAllKeyPrefix + entityID
}

type Service interface {
	Create(ctx context.Context, entityID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context, entityID string) ([]HolidayResponse, error)
	Delete(ctx context.Context, entityID, id string) error

	// ListDates returns the holiday dates within [from, to] inclusive,
	// normalized to midnight UTC, for day-count arithmetic. Entity-wide
	// holidays always apply; location-scoped holidays apply only when
	// location matches.
	ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, entityID string, req CreateHolidayRequest) (HolidayResponse, error) {
	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return HolidayResponse{}, apperror.ErrInvalidInput
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)
	if err != nil {
		return HolidayResponse{}, apperror.InvalidField("Date")
	}

	h := &PublicHoliday{
		ID:       uuid.New(),
		EntityID: entityUUID,
		Name:     req.Name,
		Location: req.Location,
		Date:     date,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidate(ctx, entityID)

	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context, entityID string) ([]HolidayResponse, error) {
	cacheKey := holidayAllKey(entityID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []HolidayResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		holidays, err := s.repo.FindByEntity(ctx, entityID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(holidays)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]HolidayResponse), nil
}

func (s *service) Delete(ctx context.Context, entityID, id string) error {
	if err := s.repo.Delete(ctx, entityID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrHolidayNotFound
		}
		return err
	}

	s.invalidate(ctx, entityID)

	s.logger.Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

func (s *service) ListDates(ctx context.Context, entityID, location string, from, to time.Time) ([]time.Time, error) {
	// Calendars are small; reuse the cached full list and filter in memory
	// rather than caching per range.
	all, err := s.GetAll(ctx, entityID)
	if err != nil {
		return nil, err
	}

	fromDay := dateOnly(from)
	toDay := dateOnly(to)

	dates := make([]time.Time, 0, len(all))
	for _, h := range all {
		if h.Location != "" && h.Location != location {
			continue
		}
		d, err := time.ParseInLocation(time.DateOnly, h.Date, time.UTC)
		if err != nil {
			continue
		}
		if d.Before(fromDay) || d.After(toDay) {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (s *service) invalidate(ctx context.Context, entityID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := holidayAllKey(entityID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("holiday cache invalidation failed",
			zap.String("key", cacheKey), zap.Error(err))
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
