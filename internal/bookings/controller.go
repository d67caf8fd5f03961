package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/catalog"
	"cinebook/internal/seats"
	"cinebook/internal/shared/middleware"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showtimes"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// PreviewPrice handles POST /api/v1/bookings/price-preview
func (ctl *Controller) PreviewPrice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req PricePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	breakdown, err := ctl.service.PreviewPrice(c.Request.Context(), userID, req)
	if err != nil {
		ctl.respondCheckoutError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Price computed successfully", breakdown)
}

// ConfirmBooking handles POST /api/v1/bookings
func (ctl *Controller) ConfirmBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := ctl.service.ConfirmBooking(c.Request.Context(), userID, req)
	if err != nil {
		ctl.respondCheckoutError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Booking confirmed successfully", result)
}

// ListMyBookings handles GET /api/v1/bookings
func (ctl *Controller) ListMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	bookings, err := ctl.service.ListMyBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBooking handles GET /api/v1/bookings/:id
func (ctl *Controller) GetBooking(c *gin.Context) {
	ctl.getBooking(c, false)
}

// GetBookingManage handles GET /api/v1/manage/bookings/:id
func (ctl *Controller) GetBookingManage(c *gin.Context) {
	ctl.getBooking(c, true)
}

func (ctl *Controller) getBooking(c *gin.Context, backOffice bool) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	booking, err := ctl.service.GetBooking(c.Request.Context(), userID, bookingID, backOffice)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrBookingNotOwned):
			response.Error(c, http.StatusForbidden, "Access denied", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to fetch booking", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// ListBookings handles GET /api/v1/manage/bookings
func (ctl *Controller) ListBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	bookings, total, err := ctl.service.ListBookings(c.Request.Context(), query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     query.Page,
		"limit":    query.Limit,
	})
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (ctl *Controller) CancelBooking(c *gin.Context) {
	ctl.cancelBooking(c, false)
}

// CancelBookingManage handles DELETE /api/v1/manage/bookings/:id
func (ctl *Controller) CancelBookingManage(c *gin.Context) {
	ctl.cancelBooking(c, true)
}

func (ctl *Controller) cancelBooking(c *gin.Context, backOffice bool) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	booking, err := ctl.service.CancelBooking(c.Request.Context(), userID, bookingID, backOffice)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrBookingNotOwned):
			response.Error(c, http.StatusForbidden, "Access denied", nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.Error(c, http.StatusConflict, "Booking is already cancelled", nil)
		case errors.Is(err, ErrShowtimeStarted):
			response.Error(c, http.StatusConflict, "Showtime has already started", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to cancel booking", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Booking cancelled successfully", booking)
}

func (ctl *Controller) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, showtimes.ErrShowtimeNotFound):
		response.Error(c, http.StatusNotFound, "Showtime not found", nil)
	case errors.Is(err, showtimes.ErrShowtimeNotBookable):
		response.Error(c, http.StatusConflict, "Showtime is not open for booking", nil)
	case errors.Is(err, seats.ErrHoldNotFound):
		response.Error(c, http.StatusConflict, "Seat hold not found or expired", nil)
	case errors.Is(err, seats.ErrHoldMismatch):
		response.Error(c, http.StatusConflict, "Seat hold does not match this request", nil)
	case errors.Is(err, seats.ErrSeatNotInRoom):
		response.BadRequest(c, "One or more seats do not belong to this showtime", nil)
	case errors.Is(err, catalog.ErrItemNotFound):
		response.BadRequest(c, "One or more catalog items do not exist", nil)
	case errors.Is(err, ErrNoSeatsSelected):
		response.BadRequest(c, "At least one seat must be selected", nil)
	case errors.Is(err, ErrSeatTaken):
		response.Error(c, http.StatusConflict, "One or more seats were just booked by someone else", nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Checkout failed", err.Error())
	}
}
