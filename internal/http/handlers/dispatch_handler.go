// README: Dispatch handlers expose the ranked return queue to the ops dashboard.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/dispatch"
)

type DispatchHandler struct {
	dispatch *dispatch.Service
}

func NewDispatchHandler(svc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{dispatch: svc}
}

func (h *DispatchHandler) Queue(c *gin.Context) {
	results, diags, err := h.dispatch.Queue(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, queueResponse(results, diags))
}

func (h *DispatchHandler) Urgent(c *gin.Context) {
	results, diags, err := h.dispatch.Urgent(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, queueResponse(results, diags))
}

func queueResponse(results []dispatch.Result, diags []dispatch.Diagnostic) gin.H {
	// empty slices, not null, so the dashboard can iterate blindly
	if results == nil {
		results = []dispatch.Result{}
	}
	if diags == nil {
		diags = []dispatch.Diagnostic{}
	}
	return gin.H{"results": results, "diagnostics": diags}
}
