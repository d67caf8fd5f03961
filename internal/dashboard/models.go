package dashboard

import (
	"time"

	"cinebook/internal/pricing"
)

// Summary is the headline figures block of the back-office dashboard.
type Summary struct {
	TotalBookings     int           `json:"total_bookings"`
	CancelledBookings int           `json:"cancelled_bookings"`
	TicketsSold       int           `json:"tickets_sold"`
	GrossRevenue      pricing.Money `json:"gross_revenue"`
	TotalDiscounts    pricing.Money `json:"total_discounts"`
	DiscountBySource  DiscountSplit `json:"discount_by_source"`
	VoucherBookings   int           `json:"voucher_bookings"`
	PointsRedeemed    int           `json:"points_redeemed"`
	OpenShowtimes     int           `json:"open_showtimes"`
	TotalMovies       int           `json:"total_movies"`
	TotalCustomers    int           `json:"total_customers"`
	GeneratedAt       time.Time     `json:"generated_at"`
}

// DiscountSplit breaks the granted discounts down by source.
type DiscountSplit struct {
	Points    pricing.Money `json:"points"`
	Voucher   pricing.Money `json:"voucher"`
	Promotion pricing.Money `json:"promotion"`
}

// DailyStat is one day of booking volume for the trend chart.
type DailyStat struct {
	Date     time.Time     `json:"date"`
	Bookings int           `json:"bookings"`
	Tickets  int           `json:"tickets"`
	Revenue  pricing.Money `json:"revenue"`
}

// MoviePerformance ranks a movie by confirmed revenue.
type MoviePerformance struct {
	MovieID  string        `json:"movie_id"`
	Title    string        `json:"title"`
	Bookings int           `json:"bookings"`
	Tickets  int           `json:"tickets"`
	Revenue  pricing.Money `json:"revenue"`
}

// Dashboard bundles everything the back-office landing page renders.
type Dashboard struct {
	Summary   Summary            `json:"summary"`
	Daily     []DailyStat        `json:"daily"`
	TopMovies []MoviePerformance `json:"top_movies"`
}
