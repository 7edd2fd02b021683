package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

var slotCols = []string{"id", "room_id", "slot_date", "start_time", "end_time", "reason", "created_at"}

func newSlot(t *testing.T, start, end string) model.UnavailableSlot {
	t.Helper()
	s, err := model.NewUnavailableSlot(1, schedule.NewDate(2026, time.November, 2),
		schedule.MustClock(start), schedule.MustClock(end), "")
	require.NoError(t, err)
	return s
}

func TestSlotRepo_CreateStoresWhenFree(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSlotRepo(db)
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT start_time, end_time FROM unavailable_slots").
		WithArgs(int64(1), "2026-11-02", "14:00", "12:00").
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}))
	mock.ExpectExec("INSERT INTO unavailable_slots").
		WithArgs(int64(1), "2026-11-02", "12:00", "14:00", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT id, room_id, slot_date").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(slotCols).AddRow(7, 1, day, "12:00", "14:00", nil, day))
	mock.ExpectCommit()

	got, err := repo.Create(context.Background(), newSlot(t, "12:00", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.ID)
	assert.Equal(t, "2026-11-02", got.Date.String())
	assert.Equal(t, schedule.MustClock("12:00"), got.Start)
	assert.Nil(t, got.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepo_CreateRejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSlotRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM rooms WHERE id = ? FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT start_time, end_time FROM unavailable_slots").
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).AddRow("10:00", "12:00"))
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), newSlot(t, "11:00", "13:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrConflict)
	var ce *schedule.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "10:00-12:00", ce.With[0].String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepo_CreateUnknownRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM rooms WHERE id = ? FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = NewSlotRepo(db).Create(context.Background(), newSlot(t, "08:00", "09:00"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepo_ListByRangeOrdersByDayThenStart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	d1 := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	d3 := d1.AddDate(0, 0, 2)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY slot_date, start_time, id")).
		WithArgs(int64(1), "2026-11-02", "2026-11-06").
		WillReturnRows(sqlmock.NewRows(slotCols).
			AddRow(1, 1, d1, "08:00", "10:00", "maintenance", d1).
			AddRow(2, 1, d3, "12:00", "13:00", nil, d1))

	from := schedule.NewDate(2026, time.November, 2)
	got, err := NewSlotRepo(db).ListByRange(context.Background(), 1, from, from.AddDays(4))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Reason)
	assert.Equal(t, "maintenance", *got[0].Reason)
	assert.Equal(t, "2026-11-04", got[1].Date.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepo_ListByRangeInvertedIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := schedule.NewDate(2026, time.November, 2)
	got, err := NewSlotRepo(db).ListByRange(context.Background(), 1, d, d.AddDays(-1))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepo_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM unavailable_slots WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM unavailable_slots WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSlotRepo(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepo_GetByIDDecodesFacilities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, capacity").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "price_per_hour", "facilities", "is_active", "created_at", "updated_at"}).
			AddRow(2, "Podcast Room", 4, 200000, []byte(`["Mic Pro","Mixer"]`), true, now, now))
	mock.ExpectQuery("SELECT id, name, capacity").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewRoomRepo(db)
	rm, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mic Pro", "Mixer"}, rm.Facilities)
	assert.Equal(t, int64(200000), rm.PricePerHour)

	_, err = repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
