package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gctu-smartcampus/smartride-backend/internal/middleware"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
)

type createShuttleRequest struct {
	Identifier   string   `json:"identifier" binding:"required"`
	Campus       string   `json:"campus" binding:"required"`
	RouteName    *string  `json:"route_name"`
	BatteryLevel *int     `json:"battery_level" binding:"omitempty,gte=0,lte=100"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Status       string   `json:"status"`
	Capacity     *int     `json:"capacity" binding:"omitempty,gte=1,lte=60"`
	Occupancy    *int     `json:"occupancy" binding:"omitempty,gte=0"`
}

type shuttleResponse struct {
	ID           uuid.UUID      `json:"id"`
	Identifier   string         `json:"identifier"`
	Campus       string         `json:"campus"`
	RouteName    *string        `json:"route_name,omitempty"`
	BatteryLevel int            `json:"battery_level"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Status       shuttle.Status `json:"status"`
	Capacity     int            `json:"capacity"`
	Occupancy    int            `json:"occupancy"`
}

func toShuttleResponse(s shuttle.Shuttle) shuttleResponse {
	resp := shuttleResponse{
		ID:           s.ID,
		Identifier:   s.Identifier,
		Campus:       s.Campus,
		BatteryLevel: s.BatteryLevel,
		Status:       s.Status,
		Capacity:     s.Capacity,
		Occupancy:    s.Occupancy,
	}
	if s.RouteName.Valid {
		resp.RouteName = &s.RouteName.String
	}
	if s.Location.Valid {
		lat, lng := s.Location.P.X, s.Location.P.Y
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	return resp
}

func (a *API) createShuttleHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createShuttleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	s := shuttle.Shuttle{
		ID:           uuid.New(),
		Identifier:   req.Identifier,
		Campus:       req.Campus,
		BatteryLevel: 100,
		Status:       shuttle.StatusIdle,
		Capacity:     12,
	}
	if req.RouteName != nil {
		s.RouteName.String = *req.RouteName
		s.RouteName.Valid = true
	}
	if req.BatteryLevel != nil {
		s.BatteryLevel = *req.BatteryLevel
	}
	if req.Latitude != nil && req.Longitude != nil {
		s.Location = pgtype.Point{P: pgtype.Vec2{X: *req.Latitude, Y: *req.Longitude}, Valid: true}
	}
	if req.Status != "" {
		s.Status = shuttle.Status(req.Status)
	}
	if req.Capacity != nil {
		s.Capacity = *req.Capacity
	}
	if req.Occupancy != nil {
		s.Occupancy = *req.Occupancy
	}

	if err := a.shr.Create(c, &s); err != nil {
		logger.ErrorContext(c, "failed to create shuttle", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

func (a *API) shuttlesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var campus, status *string
	if q := c.Query("campus"); q != "" {
		campus = &q
	}
	if q := c.Query("status"); q != "" {
		status = &q
	}

	shuttles, err := a.shr.GetShuttles(c, campus, status)
	if err != nil {
		logger.ErrorContext(c, "failed to get shuttles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]shuttleResponse, 0, len(shuttles))
	for _, s := range shuttles {
		responses = append(responses, toShuttleResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}
