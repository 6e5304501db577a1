// README: Booking handlers for the booking lifecycle.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/fare"
	"shuttle/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	CustomerName      string   `json:"customer_name"`
	CustomerPhone     string   `json:"customer_phone"`
	CustomerEmail     string   `json:"customer_email"`
	ServiceType       string   `json:"service_type"`
	PickupAddress     string   `json:"pickup_address"`
	AdditionalPickups []string `json:"additional_pickups"`
	DropoffAddress    string   `json:"dropoff_address"`
	Passengers        int      `json:"passengers"`
	VIPAirportPickup  bool     `json:"vip_airport_pickup"`
	OversizedLuggage  bool     `json:"oversized_luggage"`
	ReturnTrip        bool     `json:"return_trip"`
	PickupDate        string   `json:"pickup_date"`
	PickupTime        string   `json:"pickup_time"`
	ReturnDate        string   `json:"return_date"`
	ReturnTime        string   `json:"return_time"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerEmail:     req.CustomerEmail,
		ServiceType:       fare.ServiceType(req.ServiceType),
		PickupAddress:     req.PickupAddress,
		AdditionalPickups: req.AdditionalPickups,
		DropoffAddress:    req.DropoffAddress,
		Passengers:        req.Passengers,
		VIPAirportPickup:  req.VIPAirportPickup,
		OversizedLuggage:  req.OversizedLuggage,
		IsReturnTrip:      req.ReturnTrip,
		PickupDate:        req.PickupDate,
		PickupTime:        req.PickupTime,
		ReturnDate:        req.ReturnDate,
		ReturnTime:        req.ReturnTime,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"booking_id": b.ID,
		"ref":        b.Ref,
		"status":     b.Status,
		"fare":       b.Fare,
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, bookingResponse(b))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Confirm(c.Request.Context(), booking.ConfirmCommand{BookingID: id})
	}, booking.StatusConfirmed)
}

type assignReq struct {
	DriverID string `json:"driver_id"`
}

func (h *BookingHandler) Assign(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DriverID == "" {
		writeError(c, http.StatusBadRequest, "missing driver_id")
		return
	}
	err := h.booking.AssignDriver(c.Request.Context(), booking.AssignCommand{
		BookingID: types.ID(id),
		DriverID:  types.ID(req.DriverID),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusAssigned})
}

func (h *BookingHandler) Unassign(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Unassign(c.Request.Context(), booking.UnassignCommand{BookingID: id})
	}, booking.StatusConfirmed)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Complete(c.Request.Context(), booking.CompleteCommand{BookingID: id})
	}, booking.StatusCompleted)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req cancelReq
	_ = c.ShouldBindJSON(&req) // reason is optional
	err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(id),
		ActorType: "customer",
		Reason:    req.Reason,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusCancelled})
}

func (h *BookingHandler) simpleTransition(c *gin.Context, fn func(types.ID) error, result booking.Status) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	if err := fn(types.ID(id)); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": result})
}

func bookingResponse(b *booking.Booking) gin.H {
	resp := gin.H{
		"booking_id":         b.ID,
		"ref":                b.Ref,
		"status":             b.Status,
		"customer_name":      b.CustomerName,
		"customer_phone":     b.CustomerPhone,
		"service_type":       b.ServiceType,
		"pickup_address":     b.PickupAddress,
		"additional_pickups": b.AdditionalPickups,
		"dropoff_address":    b.DropoffAddress,
		"passengers":         b.Passengers,
		"return_trip":        b.IsReturnTrip,
		"pickup_date":        b.PickupDate,
		"pickup_time":        b.PickupTime,
		"fare":               b.Fare,
	}
	if b.IsReturnTrip {
		resp["return_date"] = b.ReturnDate
		resp["return_time"] = b.ReturnTime
	}
	if b.DriverID != nil {
		resp["driver_id"] = *b.DriverID
	}
	return resp
}
