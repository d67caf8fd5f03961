package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/catalog"
	"cinebook/internal/cinemas"
	"cinebook/internal/genres"
	"cinebook/internal/loyalty"
	"cinebook/internal/movies"
	"cinebook/internal/promotions"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
	"cinebook/internal/vouchers"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&genres.Genre{},
		&movies.Movie{},
		&cinemas.Cinema{},
		&cinemas.Room{},
		&cinemas.Seat{},
		&showtimes.Showtime{},
		&catalog.Item{},
		&promotions.Promotion{},
		&vouchers.Voucher{},
		&loyalty.Account{},
		&loyalty.Transaction{},
		&bookings.Booking{},
		&bookings.Ticket{},
		&bookings.OrderLine{},
	)
}
