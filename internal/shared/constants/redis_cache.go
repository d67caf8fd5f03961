package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the cinebook application.
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
	TTL_STATIC_SHORT  = 6 * time.Hour
)

// Semi-static data (medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // room layouts
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // movie details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // movie listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // showtime listings
)

// Dynamic data (short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // dashboard figures
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // catalog availability
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // active promotions
)

// Highly dynamic (micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// Movies
const (
	CACHE_KEY_MOVIES_LIST        = CACHE_PREFIX + ":movies:list"        // + :page:X:limit:Y:status:Z
	CACHE_KEY_MOVIES_NOW_SHOWING = CACHE_PREFIX + ":movies:now_showing" // + :limit:X
	CACHE_KEY_MOVIE_DETAIL       = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
)

const (
	TTL_MOVIE_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_MOVIE_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// Genres
const (
	CACHE_KEY_GENRES_ACTIVE = CACHE_PREFIX + ":genres:active:all"
)

const (
	TTL_GENRES_ACTIVE = TTL_STATIC_LONG
)

// Showtimes
const (
	CACHE_KEY_SHOWTIMES_BY_MOVIE = CACHE_PREFIX + ":showtimes:movie:uuid:" // + movie-id:date:YYYY-MM-DD
	CACHE_KEY_SHOWTIME_DETAIL    = CACHE_PREFIX + ":showtimes:detail:uuid:" // + showtime-id
)

const (
	TTL_SHOWTIME_LIST   = TTL_SEMI_STATIC_QUICK
	TTL_SHOWTIME_DETAIL = TTL_SEMI_STATIC_QUICK
)

// Rooms
const (
	CACHE_KEY_ROOM_LAYOUT = CACHE_PREFIX + ":rooms:layout:uuid:" // + room-id
)

const (
	TTL_ROOM_LAYOUT = TTL_SEMI_STATIC_LONG
)

// Seats
const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":seats:map:showtime:" // + showtime-id
)

const (
	TTL_SEAT_MAP = TTL_REALTIME_SHORT
)

// Catalog (combos and snacks)
const (
	CACHE_KEY_CATALOG_AVAILABLE = CACHE_PREFIX + ":catalog:available" // + :kind:X
)

const (
	TTL_CATALOG_AVAILABLE = TTL_DYNAMIC_SHORT
)

// Promotions
const (
	CACHE_KEY_PROMOTIONS_ACTIVE = CACHE_PREFIX + ":promotions:active"
)

const (
	TTL_PROMOTIONS_ACTIVE = TTL_DYNAMIC_QUICK
)

// Dashboard
const (
	CACHE_KEY_DASHBOARD_SUMMARY = CACHE_PREFIX + ":dashboard:summary"
	CACHE_KEY_DASHBOARD_DAILY   = CACHE_PREFIX + ":dashboard:daily" // + :days:X
)

const (
	TTL_DASHBOARD = TTL_DYNAMIC_MEDIUM
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_MOVIES_ALL     = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_ROOMS_ALL      = CACHE_PREFIX + ":rooms:*"
	PATTERN_INVALIDATE_GENRES_ALL     = CACHE_PREFIX + ":genres:*"
	PATTERN_INVALIDATE_SHOWTIMES_ALL  = CACHE_PREFIX + ":showtimes:*"
	PATTERN_INVALIDATE_CATALOG_ALL    = CACHE_PREFIX + ":catalog:*"
	PATTERN_INVALIDATE_PROMOTIONS_ALL = CACHE_PREFIX + ":promotions:*"
	PATTERN_INVALIDATE_DASHBOARD      = CACHE_PREFIX + ":dashboard:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildMovieListKey(page, limit int, status string) string {
	if status != "" {
		return fmt.Sprintf("%s:page:%d:limit:%d:status:%s", CACHE_KEY_MOVIES_LIST, page, limit, status)
	}
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_MOVIES_LIST, page, limit)
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildShowtimesByMovieKey(movieID, date string) string {
	return CACHE_KEY_SHOWTIMES_BY_MOVIE + movieID + ":date:" + date
}

func BuildRoomLayoutKey(roomID string) string {
	return CACHE_KEY_ROOM_LAYOUT + roomID
}

func BuildSeatMapKey(showtimeID string) string {
	return CACHE_KEY_SEAT_MAP + showtimeID
}

func BuildCatalogAvailableKey(kind string) string {
	if kind == "" {
		return CACHE_KEY_CATALOG_AVAILABLE
	}
	return CACHE_KEY_CATALOG_AVAILABLE + ":kind:" + kind
}

func BuildDashboardDailyKey(days int) string {
	return fmt.Sprintf("%s:days:%d", CACHE_KEY_DASHBOARD_DAILY, days)
}
