package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Prevent double booking of a seat within the same showtime
	err := db.Exec(`
		ALTER TABLE tickets
		ADD CONSTRAINT IF NOT EXISTS unique_seat_per_showtime
		UNIQUE (seat_id, showtime_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability queries
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_tickets_showtime_seat
		ON tickets (showtime_id, seat_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for booking lookups by showtime
	err = db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_showtime_id
		ON bookings (showtime_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
