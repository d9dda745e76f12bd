package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/server/http/dto"
)

// PaymentHandler reconciles gateway notifications and manual refreshes.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Notify handles POST /api/payment/notifications.
func (h *PaymentHandler) Notify(c *gin.Context) {
	var req dto.PaymentNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	update := model.PaymentUpdate{
		OrderRef:      req.OrderID,
		Status:        model.GatewayStatus(req.TransactionStatus),
		PaymentMethod: req.PaymentType,
	}

	_, _, err := h.facade.ReconcilePayment(c.Request.Context(), update)
	if err != nil {
		switch {
		// A conflicting terminal report is logged and discarded inside the
		// reconciler; the gateway still gets an ack so it stops retrying.
		case errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusOK)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Refresh handles POST /api/user/orders/:number/payment/refresh.
func (h *PaymentHandler) Refresh(c *gin.Context) {
	userID := CurrentUserID(c)
	number := c.Param("number")

	order, applied, err := h.facade.RefreshPaymentStatus(c.Request.Context(), userID, number)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrConflict):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.Status(http.StatusBadGateway)
		case errors.Is(err, domainErrors.ErrGatewayRejected):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentRefreshResponse{
		Order:   toOrderResponse(*order),
		Applied: applied,
	})
}
