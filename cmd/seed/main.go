package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/catalog"
	"cinebook/internal/cinemas"
	"cinebook/internal/genres"
	"cinebook/internal/loyalty"
	"cinebook/internal/movies"
	"cinebook/internal/pricing"
	"cinebook/internal/promotions"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
	"cinebook/internal/vouchers"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.PostgreSQL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"order_lines",
		"tickets",
		"bookings",
		"loyalty_transactions",
		"loyalty_accounts",
		"vouchers",
		"promotions",
		"items",
		"showtimes",
		"seats",
		"rooms",
		"cinemas",
		"movie_genres",
		"movies",
		"genres",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	manager, customer, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	seededGenres, err := s.SeedGenres()
	if err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	seededMovies, err := s.SeedMovies(manager, seededGenres)
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	rooms, err := s.SeedCinemas()
	if err != nil {
		return fmt.Errorf("failed to seed cinemas: %w", err)
	}

	if err := s.SeedShowtimes(seededMovies, rooms); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	if err := s.SeedCatalog(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	if err := s.SeedPromotions(); err != nil {
		return fmt.Errorf("failed to seed promotions: %w", err)
	}

	if err := s.SeedVouchers(); err != nil {
		return fmt.Errorf("failed to seed vouchers: %w", err)
	}

	if err := s.SeedLoyalty(customer); err != nil {
		return fmt.Errorf("failed to seed loyalty accounts: %w", err)
	}

	return nil
}

func (s *Seeder) SeedUsers() (manager uuid.UUID, customer uuid.UUID, err error) {
	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	seedUsers := []users.User{
		{FullName: "Minh Tran", Email: "manager@cinebook.local", Phone: "+84901000001", Password: hash("Manager@123"), Role: users.RoleManager},
		{FullName: "Lan Pham", Email: "staff@cinebook.local", Phone: "+84901000002", Password: hash("Staff@123"), Role: users.RoleStaff},
		{FullName: "An Nguyen", Email: "an@example.com", Phone: "+84901000003", Password: hash("Customer@123"), Role: users.RoleCustomer},
		{FullName: "Binh Le", Email: "binh@example.com", Phone: "+84901000004", Password: hash("Customer@123"), Role: users.RoleCustomer},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return uuid.Nil, uuid.Nil, err
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}

	return seedUsers[0].ID, seedUsers[2].ID, nil
}

func (s *Seeder) SeedGenres() ([]genres.Genre, error) {
	seedGenres := []genres.Genre{
		{Name: "Action", Slug: "action", Description: "High-octane thrills", IsActive: true},
		{Name: "Comedy", Slug: "comedy", Description: "Laughs for everyone", IsActive: true},
		{Name: "Drama", Slug: "drama", Description: "Stories that stay with you", IsActive: true},
		{Name: "Horror", Slug: "horror", Description: "Sleep with the lights on", IsActive: true},
		{Name: "Animation", Slug: "animation", Description: "For kids and grown-ups alike", IsActive: true},
	}

	for i := range seedGenres {
		if err := s.db.PostgreSQL.Create(&seedGenres[i]).Error; err != nil {
			return nil, err
		}
	}
	fmt.Printf("  Created %d genres\n", len(seedGenres))
	return seedGenres, nil
}

func (s *Seeder) SeedMovies(createdBy uuid.UUID, seedGenres []genres.Genre) ([]movies.Movie, error) {
	byName := make(map[string]genres.Genre, len(seedGenres))
	for _, g := range seedGenres {
		byName[g.Name] = g
	}

	seedMovies := []movies.Movie{
		{
			Title:       "Steel Horizon",
			Description: "A retired pilot is pulled back for one last rescue mission.",
			Director:    "Kim Anh Dao",
			Cast:        "Hai Dang, Thu Trang",
			DurationMin: 128,
			Rating:      "C16",
			Language:    "English",
			ReleaseDate: time.Now().AddDate(0, -1, 0),
			Status:      movies.StatusNowShowing,
			Genres:      []genres.Genre{byName["Action"], byName["Drama"]},
			CreatedBy:   createdBy,
		},
		{
			Title:       "The Last Laugh",
			Description: "Two rival stand-up comics are forced to share one stage.",
			Director:    "Bao Chau",
			Cast:        "Quang Vinh, Mai Phuong",
			DurationMin: 102,
			Rating:      "P",
			Language:    "Vietnamese",
			ReleaseDate: time.Now().AddDate(0, 0, -14),
			Status:      movies.StatusNowShowing,
			Genres:      []genres.Genre{byName["Comedy"]},
			CreatedBy:   createdBy,
		},
		{
			Title:       "Whisper House",
			Description: "A family inherits a house that remembers its previous owners.",
			Director:    "Linh Vu",
			Cast:        "Ngoc Han, Tuan Kiet",
			DurationMin: 95,
			Rating:      "C18",
			Language:    "English",
			ReleaseDate: time.Now().AddDate(0, 1, 0),
			Status:      movies.StatusComingSoon,
			Genres:      []genres.Genre{byName["Horror"]},
			CreatedBy:   createdBy,
		},
		{
			Title:       "Paper Dragons",
			Description: "A young kite maker dreams of flying beyond her village.",
			Director:    "Duc Thinh",
			Cast:        "Voice cast",
			DurationMin: 88,
			Rating:      "P",
			Language:    "Vietnamese",
			ReleaseDate: time.Now().AddDate(0, 0, -7),
			Status:      movies.StatusNowShowing,
			Genres:      []genres.Genre{byName["Animation"], byName["Comedy"]},
			CreatedBy:   createdBy,
		},
	}

	for i := range seedMovies {
		if err := s.db.PostgreSQL.Create(&seedMovies[i]).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created movie: %s\n", seedMovies[i].Title)
	}
	return seedMovies, nil
}

func (s *Seeder) SeedCinemas() ([]cinemas.Room, error) {
	cinema := cinemas.Cinema{
		Name:     "CineBook Landmark",
		City:     "Ho Chi Minh City",
		Address:  "208 Nguyen Hue, District 1",
		IsActive: true,
	}
	if err := s.db.PostgreSQL.Create(&cinema).Error; err != nil {
		return nil, err
	}
	fmt.Printf("  Created cinema: %s\n", cinema.Name)

	roomSpecs := []struct {
		name        string
		fee         pricing.Money
		rows        int
		seatsPerRow int
		vipRows     int
		vipFee      pricing.Money
	}{
		{"Screen 1", 20000, 8, 10, 2, 50000},
		{"Screen 2 IMAX", 40000, 10, 12, 3, 80000},
	}

	var rooms []cinemas.Room
	for _, spec := range roomSpecs {
		room := cinemas.Room{
			CinemaID:    cinema.ID,
			Name:        spec.name,
			RoomFee:     spec.fee,
			Rows:        spec.rows,
			SeatsPerRow: spec.seatsPerRow,
		}
		if err := s.db.PostgreSQL.Create(&room).Error; err != nil {
			return nil, err
		}

		var seats []cinemas.Seat
		for row := 0; row < spec.rows; row++ {
			label := string(rune('A' + row))
			seatType := cinemas.SeatStandard
			surcharge := pricing.Money(0)
			if row >= spec.rows-spec.vipRows {
				seatType = cinemas.SeatVIP
				surcharge = spec.vipFee
			}
			for pos := 1; pos <= spec.seatsPerRow; pos++ {
				seats = append(seats, cinemas.Seat{
					RoomID:    room.ID,
					Row:       label,
					Position:  pos,
					Type:      seatType,
					Surcharge: surcharge,
				})
			}
		}
		if err := s.db.PostgreSQL.CreateInBatches(seats, 200).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created room: %s (%d seats)\n", room.Name, len(seats))
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func (s *Seeder) SeedShowtimes(seedMovies []movies.Movie, rooms []cinemas.Room) error {
	count := 0
	slotHours := []int{10, 14, 19}

	for day := 0; day < 3; day++ {
		for i, movie := range seedMovies {
			if movie.Status != movies.StatusNowShowing {
				continue
			}
			room := rooms[i%len(rooms)]
			hour := slotHours[i%len(slotHours)]

			start := time.Now().AddDate(0, 0, day+1).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
			showtime := showtimes.Showtime{
				MovieID:   movie.ID,
				RoomID:    room.ID,
				StartTime: start,
				EndTime:   start.Add(time.Duration(movie.DurationMin+15) * time.Minute),
				BasePrice: 90000,
				Status:    showtimes.StatusOpen,
			}
			if err := s.db.PostgreSQL.Create(&showtime).Error; err != nil {
				return err
			}
			count++
		}
	}

	fmt.Printf("  Created %d showtimes\n", count)
	return nil
}

func (s *Seeder) SeedCatalog() error {
	items := []catalog.Item{
		{Name: "Family Combo", Description: "2 large popcorn + 4 drinks", Kind: catalog.KindCombo, Price: 189000, Status: catalog.StatusAvailable},
		{Name: "Date Night Combo", Description: "1 large popcorn + 2 drinks", Kind: catalog.KindCombo, Price: 109000, Status: catalog.StatusAvailable},
		{Name: "Caramel Popcorn", Description: "Large caramel popcorn", Kind: catalog.KindSnack, Price: 65000, Status: catalog.StatusAvailable},
		{Name: "Nachos", Description: "Cheese nachos", Kind: catalog.KindSnack, Price: 55000, Status: catalog.StatusAvailable},
		{Name: "Seasonal Special", Description: "Limited edition snack box", Kind: catalog.KindSnack, Price: 75000, Status: catalog.StatusUnavailable},
	}

	for i := range items {
		if err := s.db.PostgreSQL.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Created %d catalog items\n", len(items))
	return nil
}

func (s *Seeder) SeedPromotions() error {
	promos := []promotions.Promotion{
		{
			Name:        "Midweek Madness",
			Description: "Flat discount on any midweek order",
			Type:        pricing.DiscountFixed,
			Value:       20000,
			MinPurchase: 150000,
			StartTime:   time.Now().AddDate(0, 0, -1),
			EndTime:     time.Now().AddDate(0, 1, 0),
			Status:      promotions.StatusActive,
		},
		{
			Name:        "Grand Opening",
			Description: "5% off everything",
			Type:        pricing.DiscountPercentage,
			Value:       5,
			StartTime:   time.Now().AddDate(0, 0, -7),
			EndTime:     time.Now().AddDate(0, 0, 7),
			Status:      promotions.StatusActive,
		},
	}

	for i := range promos {
		if err := s.db.PostgreSQL.Create(&promos[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Created %d promotions\n", len(promos))
	return nil
}

func (s *Seeder) SeedVouchers() error {
	maxDiscount := pricing.Money(50000)
	seedVouchers := []vouchers.Voucher{
		{
			Code:        "WELCOME10",
			Description: "10% off your first order",
			Type:        pricing.DiscountPercentage,
			Value:       10,
			MinOrder:    100000,
			MaxDiscount: &maxDiscount,
			ValidFrom:   time.Now().AddDate(0, 0, -1),
			ValidTo:     time.Now().AddDate(0, 3, 0),
			UsageLimit:  1000,
		},
		{
			Code:        "MOVIE50K",
			Description: "50000 off big orders",
			Type:        pricing.DiscountFixed,
			Value:       50000,
			MinOrder:    300000,
			ValidFrom:   time.Now().AddDate(0, 0, -1),
			ValidTo:     time.Now().AddDate(0, 1, 0),
			UsageLimit:  200,
		},
	}

	for i := range seedVouchers {
		if err := s.db.PostgreSQL.Create(&seedVouchers[i]).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Created %d vouchers\n", len(seedVouchers))
	return nil
}

func (s *Seeder) SeedLoyalty(customer uuid.UUID) error {
	account := loyalty.Account{UserID: customer, Balance: 250}
	if err := s.db.PostgreSQL.Create(&account).Error; err != nil {
		return err
	}

	tx := loyalty.Transaction{
		AccountID: account.ID,
		Type:      loyalty.TxBonus,
		Points:    250,
		Note:      "seed balance",
	}
	if err := s.db.PostgreSQL.Create(&tx).Error; err != nil {
		return err
	}

	fmt.Println("  Created loyalty account for demo customer")
	return nil
}
