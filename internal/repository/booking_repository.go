package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jagadha/event-booking/internal/model"
)

type BookingRepository interface {
	// Создать новое бронирование (id присваивает база).
	Create(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uint) (*model.Booking, error)
	// Перевести бронирование из Pending в новый статус. Возвращает
	// количество затронутых строк: 0 означает, что запись либо не найдена,
	// либо уже не в Pending, — различает это вызывающий код.
	UpdateStatusIfPending(ctx context.Context, id uint, status model.BookingStatus) (int64, error)
	// Все бронирования, новые сверху.
	List(ctx context.Context) ([]model.Booking, error)
	// Количество бронирований по статусам за календарный день создания.
	CountByStatusForDate(ctx context.Context, day time.Time) (map[model.BookingStatus]int64, error)
	// Удалить бронирование (деструктивная админская операция).
	Delete(ctx context.Context, id uint) error
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Условный UPDATE — единственный механизм защиты от гонки двух
// одновременных переходов: оба увидят Pending в памяти, но строку
// изменит ровно один.
func (r *GormBookingRepository) UpdateStatusIfPending(
	ctx context.Context,
	id uint,
	status model.BookingStatus,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.BookingStatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *GormBookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) CountByStatusForDate(
	ctx context.Context,
	day time.Time,
) (map[model.BookingStatus]int64, error) {
	// границы суток считаем в зоне переданного времени,
	// created_at в базе хранится в UTC
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).UTC()
	to := from.Add(24 * time.Hour)

	var rows []struct {
		Status model.BookingStatus
		Cnt    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("status, COUNT(*) as cnt").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Cnt
	}
	return counts, nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, id).Error
}
