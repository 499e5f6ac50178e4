package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gctu-smartcampus/smartride-backend/internal/middleware"
	"github.com/gctu-smartcampus/smartride-backend/stop"
)

type createStopRequest struct {
	Campus    string   `json:"campus" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Code      string   `json:"code" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	IsActive  *bool    `json:"is_active"`
}

type stopResponse struct {
	ID        uuid.UUID `json:"id"`
	Campus    string    `json:"campus"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsActive  bool      `json:"is_active"`
}

func toStopResponse(s stop.Stop) stopResponse {
	return stopResponse{
		ID:        s.ID,
		Campus:    s.Campus,
		Name:      s.Name,
		Code:      s.Code,
		Latitude:  s.Location.P.X,
		Longitude: s.Location.P.Y,
		IsActive:  s.Active,
	}
}

func (a *API) createStopHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	s := stop.Stop{
		ID:       uuid.New(),
		Campus:   req.Campus,
		Name:     req.Name,
		Code:     req.Code,
		Location: pgtype.Point{P: pgtype.Vec2{X: *req.Latitude, Y: *req.Longitude}, Valid: true},
		Active:   active,
	}
	if err := a.sr.Create(c, &s); err != nil {
		logger.ErrorContext(c, "failed to create stop", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

func (a *API) stopsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var campus *string
	if q := c.Query("campus"); q != "" {
		campus = &q
	}

	stops, err := a.sr.GetStops(c, campus)
	if err != nil {
		logger.ErrorContext(c, "failed to get stops", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]stopResponse, 0, len(stops))
	for _, s := range stops {
		responses = append(responses, toStopResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}
