package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gctu-smartcampus/smartride-backend/internal/middleware"
	"github.com/gctu-smartcampus/smartride-backend/route"
)

type createRouteRequest struct {
	Campus    string   `json:"campus" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	StopCodes []string `json:"stop_codes" binding:"required,min=1"`
	IsActive  *bool    `json:"is_active"`
}

type routeResponse struct {
	ID        uuid.UUID `json:"id"`
	Campus    string    `json:"campus"`
	Name      string    `json:"name"`
	StopCodes []string  `json:"stop_codes"`
	IsActive  bool      `json:"is_active"`
}

func toRouteResponse(r route.Route) routeResponse {
	return routeResponse{
		ID:        r.ID,
		Campus:    r.Campus,
		Name:      r.Name,
		StopCodes: r.StopCodes,
		IsActive:  r.Active,
	}
}

func (a *API) createRouteHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rt := route.Route{
		ID:        uuid.New(),
		Campus:    req.Campus,
		Name:      req.Name,
		StopCodes: route.StopCodes(req.StopCodes),
		Active:    active,
	}
	if err := a.rr.Create(c, &rt); err != nil {
		logger.ErrorContext(c, "failed to create route", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": rt.ID})
}

func (a *API) routesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var campus *string
	if q := c.Query("campus"); q != "" {
		campus = &q
	}

	routes, err := a.rr.GetRoutes(c, campus)
	if err != nil {
		logger.ErrorContext(c, "failed to get routes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		responses = append(responses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}
