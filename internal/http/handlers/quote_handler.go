// README: Quote handler prices a trip without creating a booking.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/fare"
)

type QuoteHandler struct {
	fare *fare.Service
}

func NewQuoteHandler(svc *fare.Service) *QuoteHandler {
	return &QuoteHandler{fare: svc}
}

type quoteReq struct {
	ServiceType       string   `json:"service_type"`
	PickupAddress     string   `json:"pickup_address"`
	AdditionalPickups []string `json:"additional_pickups"`
	DropoffAddress    string   `json:"dropoff_address"`
	Passengers        int      `json:"passengers"`
	VIPAirportPickup  bool     `json:"vip_airport_pickup"`
	OversizedLuggage  bool     `json:"oversized_luggage"`
	ReturnTrip        bool     `json:"return_trip"`
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	breakdown, err := h.fare.Quote(c.Request.Context(), fare.Request{
		ServiceType:       fare.ServiceType(req.ServiceType),
		PickupAddress:     req.PickupAddress,
		AdditionalPickups: req.AdditionalPickups,
		DropoffAddress:    req.DropoffAddress,
		Passengers:        req.Passengers,
		VIPAirportPickup:  req.VIPAirportPickup,
		OversizedLuggage:  req.OversizedLuggage,
		IsReturnTrip:      req.ReturnTrip,
	})
	if err != nil {
		writeFareError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, breakdown)
}
