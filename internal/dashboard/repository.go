package dashboard

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetSummary(ctx context.Context) (*Summary, error)
	GetDailyStats(ctx context.Context, days int) ([]DailyStat, error)
	GetTopMovies(ctx context.Context, limit int) ([]MoviePerformance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{GeneratedAt: time.Now()}
	db := r.db.WithContext(ctx)

	var confirmed int64
	if err := db.Table("bookings").Where("status = ?", "CONFIRMED").Count(&confirmed).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	summary.TotalBookings = int(confirmed)

	var cancelled int64
	if err := db.Table("bookings").Where("status = ?", "CANCELLED").Count(&cancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to count cancelled bookings: %w", err)
	}
	summary.CancelledBookings = int(cancelled)

	var tickets int64
	err := db.Table("tickets").
		Joins("JOIN bookings ON bookings.id = tickets.booking_id").
		Where("bookings.status = ?", "CONFIRMED").
		Count(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	summary.TicketsSold = int(tickets)

	err = db.Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(final_total), 0)").
		Scan(&summary.GrossRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate gross revenue: %w", err)
	}

	err = db.Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(total_discount), 0)").
		Scan(&summary.TotalDiscounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total discounts: %w", err)
	}

	err = db.Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select(`
			COALESCE(SUM(points_discount), 0) as points,
			COALESCE(SUM(voucher_discount), 0) as voucher,
			COALESCE(SUM(promotion_discount), 0) as promotion
		`).
		Scan(&summary.DiscountBySource).Error
	if err != nil {
		return nil, fmt.Errorf("failed to split discounts by source: %w", err)
	}

	var voucherBookings int64
	err = db.Table("bookings").
		Where("status = ? AND voucher_code IS NOT NULL", "CONFIRMED").
		Count(&voucherBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count voucher bookings: %w", err)
	}
	summary.VoucherBookings = int(voucherBookings)

	err = db.Table("bookings").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(points_redeemed), 0)").
		Scan(&summary.PointsRedeemed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum redeemed points: %w", err)
	}

	var openShowtimes int64
	err = db.Table("showtimes").
		Where("status = ? AND start_time > ?", "OPEN", time.Now()).
		Count(&openShowtimes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count open showtimes: %w", err)
	}
	summary.OpenShowtimes = int(openShowtimes)

	var movies int64
	if err := db.Table("movies").Count(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	summary.TotalMovies = int(movies)

	var customers int64
	if err := db.Table("users").Where("role = ?", "CUSTOMER").Count(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	summary.TotalCustomers = int(customers)

	return summary, nil
}

func (r *repository) GetDailyStats(ctx context.Context, days int) ([]DailyStat, error) {
	var stats []DailyStat

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(b.created_at) as date,
			COUNT(*) as bookings,
			COALESCE(SUM((SELECT COUNT(*) FROM tickets t WHERE t.booking_id = b.id)), 0) as tickets,
			COALESCE(SUM(b.final_total), 0) as revenue
		FROM bookings b
		WHERE b.status = 'CONFIRMED'
		  AND b.created_at >= ?
		GROUP BY DATE(b.created_at)
		ORDER BY date DESC
	`, time.Now().AddDate(0, 0, -days)).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	return stats, nil
}

func (r *repository) GetTopMovies(ctx context.Context, limit int) ([]MoviePerformance, error) {
	var performances []MoviePerformance

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			m.id as movie_id,
			m.title,
			COUNT(DISTINCT b.id) as bookings,
			COUNT(t.id) as tickets,
			COALESCE(SUM(t.price), 0) as revenue
		FROM movies m
		JOIN showtimes s ON s.movie_id = m.id
		JOIN bookings b ON b.showtime_id = s.id AND b.status = 'CONFIRMED'
		JOIN tickets t ON t.booking_id = b.id
		GROUP BY m.id, m.title
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&performances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	return performances, nil
}
