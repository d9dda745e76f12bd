package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/server/http/dto"
)

// CheckoutHandler turns carts into orders with payment sessions.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/user/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]model.CartLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	orders, err := h.facade.Checkout(c.Request.Context(), userID, lines)
	if err != nil {
		// Orders built before a gateway failure are still returned so the
		// shopper can retry payment for them instead of checking out twice.
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, toCheckoutResponse(orders))
		// A rejection will not succeed on retry, so it maps to a client
		// error rather than 502.
		case errors.Is(err, domainErrors.ErrGatewayRejected):
			c.JSON(http.StatusUnprocessableEntity, toCheckoutResponse(orders))
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toCheckoutResponse(orders))
}

func toCheckoutResponse(orders []model.Order) dto.CheckoutResponse {
	resp := dto.CheckoutResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	return resp
}
