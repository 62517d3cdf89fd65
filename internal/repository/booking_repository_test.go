package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jagadha/event-booking/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	return db
}

func seedBooking(t *testing.T, repo *GormBookingRepository) *model.Booking {
	t.Helper()
	b := &model.Booking{
		Name:      "Priya",
		Location:  "Salem",
		Phone:     "9659796217",
		EventDate: datatypes.Date(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		Service:   "Wedding Decoration",
		Extras:    "Lighting, Catering",
		Status:    model.BookingStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	require.NotZero(t, b.ID)
	return b
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewGormBookingRepository(testDB(t))
	b := seedBooking(t, repo)

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya", got.Name)
	assert.Equal(t, model.BookingStatusPending, got.Status)
	assert.Equal(t, "Lighting, Catering", got.Extras)
}

func TestGetByID_Unknown(t *testing.T) {
	repo := NewGormBookingRepository(testDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatusIfPending_Guard(t *testing.T) {
	repo := NewGormBookingRepository(testDB(t))
	b := seedBooking(t, repo)

	rows, err := repo.UpdateStatusIfPending(context.Background(), b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// второй переход — ноль строк, статус не трогается
	rows, err = repo.UpdateStatusIfPending(context.Background(), b.ID, model.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestUpdateStatusIfPending_UnknownID(t *testing.T) {
	repo := NewGormBookingRepository(testDB(t))

	rows, err := repo.UpdateStatusIfPending(context.Background(), 424242, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestList_NewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewGormBookingRepository(db)

	older := seedBooking(t, repo)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)
	newer := seedBooking(t, repo)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestCountByStatusForDate_FiltersByDay(t *testing.T) {
	db := testDB(t)
	repo := NewGormBookingRepository(db)

	// сегодня: 3 Pending + 1 Confirmed; раньше: 1 Pending
	for i := 0; i < 3; i++ {
		seedBooking(t, repo)
	}
	confirmedToday := seedBooking(t, repo)
	_, err := repo.UpdateStatusIfPending(context.Background(), confirmedToday.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	yesterday := seedBooking(t, repo)
	require.NoError(t, db.Model(yesterday).
		Update("created_at", time.Now().UTC().Add(-26*time.Hour)).Error)

	counts, err := repo.CountByStatusForDate(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, int64(3), counts[model.BookingStatusPending])
	assert.Equal(t, int64(1), counts[model.BookingStatusConfirmed])
	assert.Zero(t, counts[model.BookingStatusRejected])
}

func TestDelete(t *testing.T) {
	repo := NewGormBookingRepository(testDB(t))
	b := seedBooking(t, repo)

	require.NoError(t, repo.Delete(context.Background(), b.ID))

	_, err := repo.GetByID(context.Background(), b.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
