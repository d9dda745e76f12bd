package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/washmart/washmart/internal/server/http/dto"
)

// SweepHandler exposes the expiry sweep to the external scheduler.
type SweepHandler struct {
	facade SweepFacade
}

// NewSweepHandler constructs SweepHandler.
func NewSweepHandler(facade SweepFacade) *SweepHandler {
	return &SweepHandler{facade: facade}
}

// Sweep handles POST /api/internal/orders/sweep.
func (h *SweepHandler) Sweep(c *gin.Context) {
	expired, err := h.facade.ExpireStaleOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{Expired: expired})
}
