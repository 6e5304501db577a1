// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/handlers"
	"shuttle/internal/http/middleware"
	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/dispatch"
	"shuttle/internal/modules/driver"
	"shuttle/internal/modules/fare"
)

type RouterDeps struct {
	Fare     *fare.Service
	Booking  *booking.Service
	Dispatch *dispatch.Service
	Driver   *driver.Service
	OpsKey   string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	quoteHandler := handlers.NewQuoteHandler(deps.Fare)
	r.POST("/api/quotes", quoteHandler.Create)

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	r.POST("/api/bookings", bookingHandler.Create)
	r.GET("/api/bookings/:id", bookingHandler.Get)
	r.POST("/api/bookings/:id/cancel", bookingHandler.Cancel)

	ops := r.Group("/api", middleware.OpsKey(deps.OpsKey))
	ops.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	ops.POST("/bookings/:id/assign", bookingHandler.Assign)
	ops.POST("/bookings/:id/unassign", bookingHandler.Unassign)
	ops.POST("/bookings/:id/complete", bookingHandler.Complete)

	dispatchHandler := handlers.NewDispatchHandler(deps.Dispatch)
	ops.GET("/dispatch/returns", dispatchHandler.Queue)
	ops.GET("/dispatch/returns/urgent", dispatchHandler.Urgent)

	driverHandler := handlers.NewDriverHandler(deps.Driver)
	ops.GET("/drivers", driverHandler.List)
	ops.POST("/drivers", driverHandler.Create)
	ops.POST("/drivers/:id/active", driverHandler.SetActive)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
