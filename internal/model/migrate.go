package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей сервиса бронирований.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Booking{},
	)
}
