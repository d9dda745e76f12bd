package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/server/http/dto"
	"github.com/washmart/washmart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Number:        order.Number,
		StoreID:       order.StoreID,
		Status:        string(order.Status),
		LaundryStatus: string(order.LaundryStatus),
		TotalPrice:    order.TotalPrice,
		PaymentToken:  order.PaymentToken,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}
	return resp
}
