package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// schemaHandler describes the stored collections for the schema viewer in
// the admin frontend.
func (a *API) schemaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"collections": []string{"campusstop", "route", "shuttle", "booking"},
		"models": gin.H{
			"CampusStop": gin.H{
				"campus":    "Campus name, e.g., Tesano, Abokobi, Main Campus",
				"name":      "Stop name, e.g., Library, Lecture Block A",
				"code":      "Short unique code for the stop",
				"latitude":  "Latitude coordinate",
				"longitude": "Longitude coordinate",
				"is_active": "Whether the stop is active",
			},
			"Route": gin.H{
				"campus":     "Campus this route belongs to (or 'Inter-Campus')",
				"name":       "Route name",
				"stop_codes": "Ordered list of stop codes",
				"is_active":  "Whether the route is active",
			},
			"Shuttle": gin.H{
				"identifier":    "Vehicle identifier",
				"campus":        "Assigned campus",
				"route_name":    "Assigned route name",
				"battery_level": "Battery percentage",
				"latitude":      "Current latitude",
				"longitude":     "Current longitude",
				"status":        "idle|enroute|charging|maintenance",
				"capacity":      "Total seats",
				"occupancy":     "Seats currently occupied",
			},
			"Booking": gin.H{
				"name":             "Full name of rider",
				"email":            "Email of rider",
				"campus":           "Campus for the ride",
				"pickup_code":      "Pickup stop code",
				"dropoff_code":     "Dropoff stop code",
				"scheduled_time":   "Planned pickup time; null means ASAP",
				"status":           "confirmed|completed|canceled",
				"eta_minutes":      "Estimated minutes until pickup",
				"seats":            "Seats requested",
				"assigned_shuttle": "Identifier of the assigned shuttle",
				"qr_token":         "Signed token for boarding QR",
			},
		},
	})
}
