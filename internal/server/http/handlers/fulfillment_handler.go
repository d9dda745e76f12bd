package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/server/http/dto"
)

// FulfillmentHandler lets store staff move orders through the wash pipeline.
type FulfillmentHandler struct {
	facade FulfillmentFacade
}

// NewFulfillmentHandler constructs FulfillmentHandler.
func NewFulfillmentHandler(facade FulfillmentFacade) *FulfillmentHandler {
	return &FulfillmentHandler{facade: facade}
}

// Advance handles PATCH /api/staff/orders/:number/laundry-status.
func (h *FulfillmentHandler) Advance(c *gin.Context) {
	staffID := CurrentUserID(c)
	number := c.Param("number")

	var req dto.LaundryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdvanceLaundry(c.Request.Context(), staffID, number, model.LaundryStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrUnauthorized):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
