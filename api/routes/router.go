package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/catalog"
	"cinebook/internal/cinemas"
	"cinebook/internal/dashboard"
	"cinebook/internal/genres"
	"cinebook/internal/loyalty"
	"cinebook/internal/movies"
	"cinebook/internal/notifications"
	"cinebook/internal/promotions"
	"cinebook/internal/seats"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/vouchers"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	log      *logger.Logger
	notifier notifications.Service

	cacheService cache.Service

	// Services shared across feature wiring
	genreService    genres.Service
	movieService    movies.Service
	cinemaService   cinemas.Service
	showtimeService showtimes.Service
	catalogService  catalog.Service
	promoService    promotions.Service
	voucherService  vouchers.Service
	loyaltyService  loyalty.Service
	seatService     seats.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, notifier notifications.Service) *Router {
	r := &Router{
		config:   cfg,
		db:       db,
		log:      log,
		notifier: notifier,
	}
	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupGenreRoutes(api)
		r.setupMovieRoutes(api)
		r.setupCinemaRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupPromotionRoutes(api)
		r.setupVoucherRoutes(api)
		r.setupLoyaltyRoutes(api)
		r.setupSeatRoutes(api)
		r.setupBookingRoutes(api)
		r.setupDashboardRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	// Loyalty comes first: registration opens the member's account
	loyaltyRepo := loyalty.NewRepository(r.db.GetPostgreSQL())
	r.loyaltyService = loyalty.NewService(loyaltyRepo, r.config.Loyalty)

	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.loyaltyService, r.config, r.log)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupGenreRoutes(rg *gin.RouterGroup) {
	genreRepo := genres.NewRepository(r.db.GetPostgreSQL())
	r.genreService = genres.NewService(genreRepo)
	if r.cacheService != nil {
		r.genreService.SetCacheService(r.cacheService)
	}
	genreController := genres.NewController(r.genreService)

	genres.SetupGenreRoutes(rg, genreController)
}

func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	r.movieService = movies.NewService(movieRepo, r.genreService)
	if r.cacheService != nil {
		r.movieService.SetCacheService(r.cacheService)
	}
	movieController := movies.NewController(r.movieService)

	movies.SetupMovieRoutes(rg, movieController)
}

func (r *Router) setupCinemaRoutes(rg *gin.RouterGroup) {
	cinemaRepo := cinemas.NewRepository(r.db.GetPostgreSQL())
	r.cinemaService = cinemas.NewService(cinemaRepo)
	if r.cacheService != nil {
		r.cinemaService.SetCacheService(r.cacheService)
	}
	cinemaController := cinemas.NewController(r.cinemaService)

	cinemas.SetupCinemaRoutes(rg, cinemaController)
}

func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	r.showtimeService = showtimes.NewService(showtimeRepo, r.movieService, r.cinemaService)
	if r.cacheService != nil {
		r.showtimeService.SetCacheService(r.cacheService)
	}
	showtimeController := showtimes.NewController(r.showtimeService)

	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo)
	if r.cacheService != nil {
		r.catalogService.SetCacheService(r.cacheService)
	}
	catalogController := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

func (r *Router) setupPromotionRoutes(rg *gin.RouterGroup) {
	promoRepo := promotions.NewRepository(r.db.GetPostgreSQL())
	r.promoService = promotions.NewService(promoRepo)
	if r.cacheService != nil {
		r.promoService.SetCacheService(r.cacheService)
	}
	promoController := promotions.NewController(r.promoService)

	promotions.SetupPromotionRoutes(rg, promoController)
}

func (r *Router) setupVoucherRoutes(rg *gin.RouterGroup) {
	voucherRepo := vouchers.NewRepository(r.db.GetPostgreSQL())
	r.voucherService = vouchers.NewService(voucherRepo)
	voucherController := vouchers.NewController(r.voucherService)

	vouchers.SetupVoucherRoutes(rg, voucherController)
}

func (r *Router) setupLoyaltyRoutes(rg *gin.RouterGroup) {
	loyaltyController := loyalty.NewController(r.loyaltyService)

	loyalty.SetupLoyaltyRoutes(rg, loyaltyController)
}

func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	atomicOps := seats.NewAtomicRedisOperations(r.db.GetRedis())
	r.seatService = seats.NewService(seatRepo, atomicOps, r.showtimeService, r.cinemaService, r.config.Redis.SeatHoldTTL)
	seatController := seats.NewController(r.seatService)

	seats.SetupSeatRoutes(rg, seatController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(
		bookingRepo,
		r.showtimeService,
		r.cinemaService,
		r.seatService,
		r.catalogService,
		r.voucherService,
		r.promoService,
		r.loyaltyService,
		r.notifier,
		r.log,
	)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupDashboardRoutes(rg *gin.RouterGroup) {
	dashboardRepo := dashboard.NewRepository(r.db.GetPostgreSQL())
	dashboardService := dashboard.NewService(dashboardRepo)
	if r.cacheService != nil {
		dashboardService.SetCacheService(r.cacheService)
	}
	dashboardController := dashboard.NewController(dashboardService)

	dashboard.SetupDashboardRoutes(rg, dashboardController)
}
