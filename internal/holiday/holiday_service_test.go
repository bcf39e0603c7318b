package holiday

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	holidays  []PublicHoliday
	findCalls int
}

func (f *fakeRepo) Create(ctx context.Context, h *PublicHoliday) error {
	f.holidays = append(f.holidays, *h)
	return nil
}

func (f *fakeRepo) FindByEntity(ctx context.Context, entityID string) ([]PublicHoliday, error) {
	f.findCalls++
	return f.holidays, nil
}

func (f *fakeRepo) FindByEntityAndRange(ctx context.Context, entityID string, from, to time.Time) ([]PublicHoliday, error) {
	var out []PublicHoliday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, entityID, id string) error {
	for i, h := range f.holidays {
		if h.ID.String() == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetAll_CacheMissQueriesAndStores(t *testing.T) {
	entityID := uuid.New()
	repo := &fakeRepo{holidays: []PublicHoliday{{
		ID:       uuid.New(),
		EntityID: entityID,
		Name:     "New Year's Day",
		Date:     day(2025, time.January, 1),
	}}}

	rdb, mock := redismock.NewClientMock()
	svc := NewService(repo, rdb)

	key := holidayAllKey(entityID.String())
	expected := mapToListResponse(repo.holidays)
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, time.Hour).SetVal("OK")

	resp, err := svc.GetAll(context.Background(), entityID.String())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "2025-01-01", resp[0].Date)
	assert.Equal(t, 1, repo.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_CacheHitSkipsRepository(t *testing.T) {
	entityID := uuid.NewString()
	repo := &fakeRepo{}

	cached := []HolidayResponse{{
		ID:       uuid.NewString(),
		EntityID: entityID,
		Name:     "Australia Day",
		Date:     "2025-01-26",
	}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(holidayAllKey(entityID)).SetVal(string(payload))

	svc := NewService(repo, rdb)
	resp, err := svc.GetAll(context.Background(), entityID)

	require.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Equal(t, 0, repo.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidatesCache(t *testing.T) {
	entityID := uuid.NewString()
	repo := &fakeRepo{}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(holidayAllKey(entityID)).SetVal(1)

	svc := NewService(repo, rdb)
	resp, err := svc.Create(context.Background(), entityID, CreateHolidayRequest{
		Name: "Anzac Day",
		Date: "2025-04-25",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-04-25", resp.Date)
	require.Len(t, repo.holidays, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsBadDate(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateHolidayRequest{
		Name: "Broken",
		Date: "25/04/2025",
	})

	assert.Error(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	err := svc.Delete(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, ErrHolidayNotFound)
}

func TestListDates_FiltersRange(t *testing.T) {
	entityID := uuid.New()
	repo := &fakeRepo{holidays: []PublicHoliday{
		{ID: uuid.New(), EntityID: entityID, Name: "New Year's Day", Date: day(2025, time.January, 1)},
		{ID: uuid.New(), EntityID: entityID, Name: "Anzac Day", Date: day(2025, time.April, 25)},
		{ID: uuid.New(), EntityID: entityID, Name: "Christmas Day", Date: day(2025, time.December, 25)},
	}}

	svc := NewService(repo, nil)

	dates, err := svc.ListDates(context.Background(), entityID.String(), "", day(2025, time.April, 1), day(2025, time.June, 30))

	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, day(2025, time.April, 25), dates[0])
}

func TestListDates_LocationScoping(t *testing.T) {
	entityID := uuid.New()
	repo := &fakeRepo{holidays: []PublicHoliday{
		{ID: uuid.New(), EntityID: entityID, Name: "Australia Day", Date: day(2025, time.January, 27)},
		{ID: uuid.New(), EntityID: entityID, Name: "Melbourne Cup", Location: "VIC", Date: day(2025, time.November, 4)},
		{ID: uuid.New(), EntityID: entityID, Name: "Royal Queensland Show", Location: "QLD", Date: day(2025, time.August, 13)},
	}}

	svc := NewService(repo, nil)

	vic, err := svc.ListDates(context.Background(), entityID.String(), "VIC", day(2025, time.January, 1), day(2025, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2025, time.January, 27), day(2025, time.November, 4)}, vic)

	unscoped, err := svc.ListDates(context.Background(), entityID.String(), "", day(2025, time.January, 1), day(2025, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2025, time.January, 27)}, unscoped)
}
