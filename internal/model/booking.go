package model

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusRejected  BookingStatus = "Rejected"
)

// IsTerminal: Confirmed и Rejected — конечные статусы, переходов из них нет.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusRejected
}

// bookings
type Booking struct {
	ID            uint          `gorm:"primaryKey;autoIncrement"`
	Name          string        `gorm:"type:text;not null"`
	Location      string        `gorm:"type:text;not null"`
	Phone         string        `gorm:"type:text;not null"`
	CustomerEmail string        `gorm:"type:text"`
	// Чистая дата без времени — datatypes.Date
	EventDate datatypes.Date `gorm:"type:date;not null"`
	Service   string         `gorm:"type:text;not null"`
	// Выбранные доп. услуги одной строкой через запятую; после создания
	// не перенормализуются — поле только для отображения.
	Extras    string        `gorm:"type:text;not null"`
	Notes     string        `gorm:"type:text"`
	Status    BookingStatus `gorm:"type:varchar(32);not null;default:'Pending';index"`
	CreatedAt time.Time     `gorm:"not null;index"`
}
