package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gctu-smartcampus/smartride-backend/booking"
	"github.com/gctu-smartcampus/smartride-backend/internal/middleware"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
)

type createBookingRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Campus        string `json:"campus" binding:"required"`
	PickupCode    string `json:"pickup_code" binding:"required"`
	DropoffCode   string `json:"dropoff_code" binding:"required"`
	ScheduledTime string `json:"scheduled_time"`
	Seats         int    `json:"seats" binding:"omitempty,gte=1,lte=6"`
}

type createBookingResponse struct {
	ID              uuid.UUID             `json:"id"`
	ETAMinutes      int                   `json:"eta_minutes"`
	Status          booking.BookingStatus `json:"status"`
	QRToken         string                `json:"qr_token,omitempty"`
	AssignedShuttle string                `json:"assigned_shuttle,omitempty"`
}

type bookingResponse struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Campus          string                `json:"campus"`
	PickupCode      string                `json:"pickup_code"`
	DropoffCode     string                `json:"dropoff_code"`
	ScheduledTime   *time.Time            `json:"scheduled_time,omitempty"`
	Status          booking.BookingStatus `json:"status"`
	ETAMinutes      int                   `json:"eta_minutes"`
	Seats           int                   `json:"seats"`
	AssignedShuttle string                `json:"assigned_shuttle,omitempty"`
	QRToken         string                `json:"qr_token,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

func toBookingResponse(b booking.Booking) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID,
		Name:        b.RiderName,
		Email:       b.Email,
		Campus:      b.Campus,
		PickupCode:  b.PickupCode,
		DropoffCode: b.DropoffCode,
		Status:      b.Status,
		ETAMinutes:  b.ETAMinutes,
		Seats:       b.Seats,
		CreatedAt:   b.CreatedAt,
	}
	if b.ScheduledTime.Valid {
		resp.ScheduledTime = &b.ScheduledTime.Time
	}
	if b.ShuttleIdentifier.Valid {
		resp.AssignedShuttle = b.ShuttleIdentifier.String
	}
	if b.QRToken.Valid {
		resp.QRToken = b.QRToken.String
	}
	return resp
}

func (a *API) createBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	var scheduled *time.Time
	if req.ScheduledTime != "" {
		ts, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid scheduled_time format"})
			return
		}
		scheduled = &ts
	}

	b, err := a.alloc.Book(c, booking.Request{
		RiderName:     req.Name,
		Email:         req.Email,
		Campus:        req.Campus,
		PickupCode:    req.PickupCode,
		DropoffCode:   req.DropoffCode,
		ScheduledTime: scheduled,
		Seats:         req.Seats,
	})
	if err != nil {
		if errors.Is(err, booking.ErrSameStop) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Pickup and dropoff cannot be the same stop"})
			return
		}
		if errors.Is(err, shuttle.ErrNoneAvailable) {
			c.JSON(http.StatusConflict, gin.H{"code": "NO_SHUTTLE_AVAILABLE", "message": "No shuttle available in this campus"})
			return
		}
		if errors.Is(err, shuttle.ErrCapacityExceeded) {
			c.JSON(http.StatusConflict, gin.H{"code": "CAPACITY_EXCEEDED", "message": "Not enough seats available"})
			return
		}
		logger.ErrorContext(c, "failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, createBookingResponse{
		ID:              b.ID,
		ETAMinutes:      b.ETAMinutes,
		Status:          b.Status,
		QRToken:         b.QRToken.String,
		AssignedShuttle: b.ShuttleIdentifier.String,
	})
}

func (a *API) bookingsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var email, campus *string
	if q := c.Query("email"); q != "" {
		email = &q
	}
	if q := c.Query("campus"); q != "" {
		campus = &q
	}

	bookings, err := a.bkr.GetBookings(c, email, campus)
	if err != nil {
		logger.ErrorContext(c, "failed to get bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) cancelBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid bookingId"})
		return
	}

	res, err := a.alloc.Cancel(c, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "BOOKING_NOT_FOUND", "message": "Booking not found"})
			return
		}
		if errors.Is(err, booking.ErrWindowClosed) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "CANNOT_CANCEL", "message": "Cannot cancel within 5 minutes of the scheduled pickup"})
			return
		}
		logger.ErrorContext(c, "failed to cancel booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{"status": res.Status}
	if res.AlreadyCanceled {
		resp["detail"] = "already canceled"
	}
	c.JSON(http.StatusOK, resp)
}
