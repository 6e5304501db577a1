// README: Driver roster handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/driver"
	"shuttle/internal/types"
)

type DriverHandler struct {
	drivers *driver.Service
}

func NewDriverHandler(svc *driver.Service) *DriverHandler {
	return &DriverHandler{drivers: svc}
}

type createDriverReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req createDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.drivers.Create(c.Request.Context(), driver.CreateCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Vehicle: req.Vehicle,
	})
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"driver_id": id})
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.drivers.List(c.Request.Context())
	if err != nil {
		writeDriverError(c, err)
		return
	}
	if drivers == nil {
		drivers = []driver.Driver{}
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": drivers})
}

type setActiveReq struct {
	Active *bool `json:"active"`
}

func (h *DriverHandler) SetActive(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}
	var req setActiveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		writeError(c, http.StatusBadRequest, "missing active flag")
		return
	}
	if err := h.drivers.SetActive(c.Request.Context(), types.ID(id), *req.Active); err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"active": *req.Active})
}
