package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gctu-smartcampus/smartride-backend/booking"
	"github.com/gctu-smartcampus/smartride-backend/internal/middleware"
	"github.com/gctu-smartcampus/smartride-backend/internal/o11y"
	"github.com/gctu-smartcampus/smartride-backend/route"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
	"github.com/gctu-smartcampus/smartride-backend/stop"
)

type API struct {
	r     *gin.Engine
	db    *sqlx.DB
	sr    *stop.Repository
	rr    *route.Repository
	shr   *shuttle.Repository
	bkr   *booking.Repository
	alloc *booking.Allocator
}

func New(db *sqlx.DB, sr *stop.Repository, rr *route.Repository, shr *shuttle.Repository,
	bkr *booking.Repository, alloc *booking.Allocator, obs *o11y.Observability,
	metricsUsername, metricsPassword string) *API {
	a := &API{
		r:     gin.New(),
		db:    db,
		sr:    sr,
		rr:    rr,
		shr:   shr,
		bkr:   bkr,
		alloc: alloc,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))
	a.r.Use(cors.Default())

	a.r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "SmartRide API running"})
	})
	a.r.GET("/health", a.healthHandler)
	a.r.GET("/schema", a.schemaHandler)

	a.r.POST("/stops", a.createStopHandler)
	a.r.GET("/stops", a.stopsHandler)
	a.r.POST("/routes", a.createRouteHandler)
	a.r.GET("/routes", a.routesHandler)
	a.r.POST("/shuttles", a.createShuttleHandler)
	a.r.GET("/shuttles", a.shuttlesHandler)

	a.r.POST("/bookings", a.createBookingHandler)
	a.r.GET("/bookings", a.bookingsHandler)
	a.r.POST("/bookings/:bookingId/cancel", a.cancelBookingHandler)

	metrics := promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})
	if metricsUsername != "" {
		authed := a.r.Group("/", gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword}))
		authed.GET("/metrics", gin.WrapH(metrics))
	} else {
		a.r.GET("/metrics", gin.WrapH(metrics))
	}

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}

// healthHandler reports backend and database health. It always answers 200
// so the campus status page can render the body even when the database is
// down.
func (a *API) healthHandler(c *gin.Context) {
	resp := gin.H{
		"status":   "ok",
		"database": "unavailable",
		"tables":   []string{},
	}

	if err := a.db.PingContext(c); err == nil {
		resp["database"] = "connected"
		var tables []string
		if err := a.db.SelectContext(c, &tables, listTables); err == nil {
			resp["tables"] = tables
		}
	}

	c.JSON(http.StatusOK, resp)
}

const listTables = `
SELECT table_name FROM information_schema.tables
WHERE table_schema = 'public'
ORDER BY table_name
LIMIT 10
`
